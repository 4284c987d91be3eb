// Package structure holds the arena-backed ordered container used as the
// default price-index backend for a book's side. It keeps its
// nodes in a pre-allocated, growable slab and address them by int32 index
// rather than by pointer, so that bid/ask price discovery never triggers a
// heap allocation once the arena has warmed up.
package structure

import (
	"errors"
	"math/rand"

	"github.com/shopspring/decimal"
)

// PooledSkiplist implements a fixed-level skiplist with arena-based memory
// management, carrying an arbitrary payload V per price (the order book's
// PriceLevel). It provides O(log N) operations with zero allocations on the
// hot path.
//
// Design:
// - All nodes have fixed MaxLevel pointers (wastes some memory but enables pooling)
// - Node arena is pre-allocated with automatic expansion when exhausted
// - Uses random level generation for probabilistic balancing
const (
	SkiplistMaxLevel    = 16 // Maximum level height
	SkiplistP           = 4  // 1/P probability of level increase
	DefaultGrowthFactor = 2  // Default expansion factor
)

// NullIndex marks the absence of a node in the arena.
const NullIndex int32 = -1

var ErrMaxCapacityReached = errors.New("skiplist: max capacity reached")

// SkiplistNode represents a node in the pooled skiplist.
type SkiplistNode[V any] struct {
	Forward [SkiplistMaxLevel]int32 // Forward pointers (fixed size for pooling)
	Price   decimal.Decimal         // Key
	Value   V                       // Payload (e.g. *PriceLevel)
	Level   int32                   // Actual level of this node (1 to MaxLevel)
}

// SkiplistOptions configures the pooled skiplist behavior.
type SkiplistOptions struct {
	// MaxCapacity sets the maximum number of nodes allowed.
	// If 0 (default), there is no limit and the skiplist will grow indefinitely.
	MaxCapacity int32

	// OnGrow is called when the skiplist expands.
	OnGrow func(oldCap, newCap int32)

	// Descending orders the skiplist from highest to lowest price (bid side).
	// The default (false) orders ascending (ask side).
	Descending bool
}

// PooledSkiplist is an arena-backed skiplist for price levels.
type PooledSkiplist[V any] struct {
	nodes       []SkiplistNode[V]
	head        int32
	freeHead    int32
	count       int32
	level       int32
	rng         *rand.Rand
	maxCapacity int32
	onGrow      func(int32, int32)
	descending  bool
}

// NewPooledSkiplist creates a new pooled skiplist with pre-allocated capacity.
func NewPooledSkiplist[V any](capacity int32, seed int64) *PooledSkiplist[V] {
	return NewPooledSkiplistWithOptions[V](capacity, seed, SkiplistOptions{})
}

// NewPooledSkiplistWithOptions creates a new pooled skiplist with custom options.
func NewPooledSkiplistWithOptions[V any](capacity int32, seed int64, opts SkiplistOptions) *PooledSkiplist[V] {
	totalCap := capacity + 1 // +1 for head sentinel
	sl := &PooledSkiplist[V]{
		nodes:       make([]SkiplistNode[V], totalCap),
		freeHead:    1, // 0 is reserved for head
		count:       0,
		level:       1,
		rng:         rand.New(rand.NewSource(seed)),
		maxCapacity: opts.MaxCapacity,
		onGrow:      opts.OnGrow,
		descending:  opts.Descending,
	}

	sl.head = 0
	sl.nodes[0].Level = SkiplistMaxLevel
	for i := 0; i < SkiplistMaxLevel; i++ {
		sl.nodes[0].Forward[i] = NullIndex
	}

	for i := int32(1); i < totalCap-1; i++ {
		sl.nodes[i].Forward[0] = i + 1
	}
	sl.nodes[totalCap-1].Forward[0] = NullIndex

	return sl
}

// less reports whether a sorts before b given the skiplist's direction.
func (sl *PooledSkiplist[V]) less(a, b decimal.Decimal) bool {
	if sl.descending {
		return a.GreaterThan(b)
	}
	return a.LessThan(b)
}

func (sl *PooledSkiplist[V]) grow() error {
	oldCap := int32(len(sl.nodes))
	newCap := oldCap * DefaultGrowthFactor

	if sl.maxCapacity > 0 && newCap > sl.maxCapacity {
		if oldCap >= sl.maxCapacity {
			return ErrMaxCapacityReached
		}
		newCap = sl.maxCapacity
	}

	if sl.onGrow != nil {
		sl.onGrow(oldCap, newCap)
	}

	newNodes := make([]SkiplistNode[V], newCap)
	copy(newNodes, sl.nodes)

	for i := oldCap; i < newCap-1; i++ {
		newNodes[i].Forward[0] = i + 1
	}
	newNodes[newCap-1].Forward[0] = sl.freeHead
	sl.freeHead = oldCap

	sl.nodes = newNodes
	return nil
}

func (sl *PooledSkiplist[V]) alloc() (int32, error) {
	if sl.freeHead == NullIndex {
		if err := sl.grow(); err != nil {
			return NullIndex, err
		}
	}
	idx := sl.freeHead
	sl.freeHead = sl.nodes[idx].Forward[0]

	for i := 0; i < SkiplistMaxLevel; i++ {
		sl.nodes[idx].Forward[i] = NullIndex
	}
	var zero V
	sl.nodes[idx].Value = zero
	return idx, nil
}

func (sl *PooledSkiplist[V]) free(idx int32) {
	var zero V
	sl.nodes[idx].Value = zero
	sl.nodes[idx].Forward[0] = sl.freeHead
	sl.freeHead = idx
}

func (sl *PooledSkiplist[V]) randomLevel() int32 {
	level := int32(1)
	for level < SkiplistMaxLevel && sl.rng.Intn(SkiplistP) == 0 {
		level++
	}
	return level
}

// Upsert inserts a price/value pair, or overwrites the value if the price
// already exists. Returns true if a new node was inserted.
func (sl *PooledSkiplist[V]) Upsert(price decimal.Decimal, value V) (bool, error) {
	var update [SkiplistMaxLevel]int32
	x := sl.head

	for i := sl.level - 1; i >= 0; i-- {
		for sl.nodes[x].Forward[i] != NullIndex && sl.less(sl.nodes[sl.nodes[x].Forward[i]].Price, price) {
			x = sl.nodes[x].Forward[i]
		}
		update[i] = x
	}

	x = sl.nodes[x].Forward[0]

	if x != NullIndex && sl.nodes[x].Price.Equal(price) {
		sl.nodes[x].Value = value
		return false, nil
	}

	newLevel := sl.randomLevel()
	if newLevel > sl.level {
		for i := sl.level; i < newLevel; i++ {
			update[i] = sl.head
		}
		sl.level = newLevel
	}

	newNode, err := sl.alloc()
	if err != nil {
		return false, err
	}
	sl.nodes[newNode].Price = price
	sl.nodes[newNode].Value = value
	sl.nodes[newNode].Level = newLevel

	for i := int32(0); i < newLevel; i++ {
		sl.nodes[newNode].Forward[i] = sl.nodes[update[i]].Forward[i]
		sl.nodes[update[i]].Forward[i] = newNode
	}

	sl.count++
	return true, nil
}

// Get returns the value stored at price, if present.
func (sl *PooledSkiplist[V]) Get(price decimal.Decimal) (V, bool) {
	x := sl.head
	for i := sl.level - 1; i >= 0; i-- {
		for sl.nodes[x].Forward[i] != NullIndex && sl.less(sl.nodes[sl.nodes[x].Forward[i]].Price, price) {
			x = sl.nodes[x].Forward[i]
		}
	}
	x = sl.nodes[x].Forward[0]
	if x != NullIndex && sl.nodes[x].Price.Equal(price) {
		return sl.nodes[x].Value, true
	}
	var zero V
	return zero, false
}

// Delete removes a price from the skiplist. Returns true if deleted.
func (sl *PooledSkiplist[V]) Delete(price decimal.Decimal) bool {
	var update [SkiplistMaxLevel]int32
	x := sl.head

	for i := sl.level - 1; i >= 0; i-- {
		for sl.nodes[x].Forward[i] != NullIndex && sl.less(sl.nodes[sl.nodes[x].Forward[i]].Price, price) {
			x = sl.nodes[x].Forward[i]
		}
		update[i] = x
	}

	x = sl.nodes[x].Forward[0]

	if x == NullIndex || !sl.nodes[x].Price.Equal(price) {
		return false
	}

	for i := int32(0); i < sl.level; i++ {
		if sl.nodes[update[i]].Forward[i] != x {
			break
		}
		sl.nodes[update[i]].Forward[i] = sl.nodes[x].Forward[i]
	}

	sl.free(x)

	for sl.level > 1 && sl.nodes[sl.head].Forward[sl.level-1] == NullIndex {
		sl.level--
	}

	sl.count--
	return true
}

// Front returns the best (first in sort order) price/value pair.
func (sl *PooledSkiplist[V]) Front() (decimal.Decimal, V, bool) {
	x := sl.nodes[sl.head].Forward[0]
	if x == NullIndex {
		var zero V
		return decimal.Zero, zero, false
	}
	return sl.nodes[x].Price, sl.nodes[x].Value, true
}

// Count returns the number of nodes.
func (sl *PooledSkiplist[V]) Count() int32 {
	return sl.count
}

// SkiplistIterator provides ordered traversal over the skiplist.
type SkiplistIterator[V any] struct {
	sl      *PooledSkiplist[V]
	current int32
}

// Iterator returns an iterator positioned at the first (best) element.
func (sl *PooledSkiplist[V]) Iterator() *SkiplistIterator[V] {
	return &SkiplistIterator[V]{sl: sl, current: sl.nodes[sl.head].Forward[0]}
}

func (it *SkiplistIterator[V]) Valid() bool { return it.current != NullIndex }

func (it *SkiplistIterator[V]) Next() {
	if it.current != NullIndex {
		it.current = it.sl.nodes[it.current].Forward[0]
	}
}

func (it *SkiplistIterator[V]) Price() decimal.Decimal { return it.sl.nodes[it.current].Price }

func (it *SkiplistIterator[V]) Value() V { return it.sl.nodes[it.current].Value }
