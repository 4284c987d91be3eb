package book

import (
	stack "github.com/emirpasic/gods/v2/stacks/arraystack"
)

// nodeBlockSize is the number of orderNode slots per block. Matches the
// block size original_source/memory_pool.h defaults to.
const nodeBlockSize = 4096

// Handle addresses a live orderNode inside the pool. It stays valid for
// the node's entire lifetime and never moves — the pool never relocates a
// live slot — which is what lets a level and the order index both hold
// onto it safely.
type Handle int32

// NullHandle is the address of no node.
const NullHandle Handle = -1

// orderNode is the engine-internal record: the caller-visible Order plus
// the doubly-linked-list handles that let it live inside a price level's
// FIFO queue, and a back-pointer to the level currently holding it.
// Ownership belongs to the pool; a level only ever holds node handles, not
// the storage itself.
type orderNode struct {
	order Order
	prev  Handle
	next  Handle
	level *PriceLevel
}

// orderPool is a slab-style allocator for orderNode: a growable chain of
// fixed-size blocks plus a free list of previously-destroyed slots.
// Allocation prefers the free list, then bumps the current block's offset,
// then grows a new block — amortized O(1), bounded-time in the cold case.
// Addresses are stable for a slot's lifetime: append-only block growth
// never invalidates a Handle obtained earlier.
type orderPool struct {
	blocks    [][]orderNode
	nextBlock int // offset within the current (last) block
	free      *stack.Stack[Handle]
}

func newOrderPool() *orderPool {
	p := &orderPool{
		free: stack.New[Handle](),
	}
	p.addBlock()
	return p
}

func (p *orderPool) addBlock() {
	p.blocks = append(p.blocks, make([]orderNode, nodeBlockSize))
	p.nextBlock = 0
	logger.Debug("order pool grew", "blocks", len(p.blocks), "block_size", nodeBlockSize)
}

func (p *orderPool) handle(block, offset int) Handle {
	return Handle(block*nodeBlockSize + offset)
}

func (p *orderPool) split(h Handle) (block, offset int) {
	block = int(h) / nodeBlockSize
	offset = int(h) % nodeBlockSize
	return
}

// construct allocates a slot and initializes it to hold order. It never
// fails in practice — slice growth is the only way to run out of memory,
// and an OS-level allocation failure is fatal per the pool's contract,
// not something construct recovers from.
func (p *orderPool) construct(order Order) Handle {
	if !p.free.Empty() {
		h, _ := p.free.Pop()
		block, offset := p.split(h)
		p.blocks[block][offset] = orderNode{order: order, prev: NullHandle, next: NullHandle}
		return h
	}

	lastBlock := len(p.blocks) - 1
	if p.nextBlock >= nodeBlockSize {
		p.addBlock()
		lastBlock = len(p.blocks) - 1
	}

	h := p.handle(lastBlock, p.nextBlock)
	p.blocks[lastBlock][p.nextBlock] = orderNode{order: order, prev: NullHandle, next: NullHandle}
	p.nextBlock++
	return h
}

// at returns a pointer to the live node addressed by h. Calling this with
// a handle that has already been destroyed is a programming error — the
// pool does not track liveness, per its contract.
func (p *orderPool) at(h Handle) *orderNode {
	block, offset := p.split(h)
	return &p.blocks[block][offset]
}

// destroy pushes h's slot back onto the free list. The slot is not
// zeroed; callers must treat a freed, not-yet-reconstructed slot's fields
// as garbage.
func (p *orderPool) destroy(h Handle) {
	p.free.Push(h)
}
