package book

import "github.com/shopspring/decimal"

// PriceLevel is the FIFO queue of resting orders at a single price. Orders
// are linked by Handle through the owning orderPool rather than held
// directly, so a level never allocates on append or unlink. TotalQuantity
// is kept as a running sum rather than recomputed, and must always equal
// the sum of its member orders' Quantity — callers that bypass append/
// unlink/adjustQuantity will desynchronize it.
type PriceLevel struct {
	Price         decimal.Decimal
	Side          Side
	TotalQuantity uint64
	head          Handle
	tail          Handle
	count         int
	pool          *orderPool
}

func newPriceLevel(price decimal.Decimal, side Side, pool *orderPool) *PriceLevel {
	return &PriceLevel{
		Price: price,
		Side:  side,
		head:  NullHandle,
		tail:  NullHandle,
		pool:  pool,
	}
}

// Empty reports whether the level has no resting orders. A level must
// never be reachable from its side's price index while Empty, per the
// no-empty-levels invariant.
func (l *PriceLevel) Empty() bool {
	return l.count == 0
}

// Count returns the number of resting orders at this level.
func (l *PriceLevel) Count() int {
	return l.count
}

// append adds h to the tail of the level's FIFO queue, preserving arrival
// order (time priority within the level).
func (l *PriceLevel) append(h Handle) {
	node := l.pool.at(h)
	node.level = l
	node.prev = l.tail
	node.next = NullHandle

	if l.tail == NullHandle {
		l.head = h
	} else {
		l.pool.at(l.tail).next = h
	}
	l.tail = h
	l.count++
	l.TotalQuantity += node.order.Quantity
}

// unlink removes h from the queue without touching the pool slot itself —
// the caller destroys the slot separately once it's done reading from it.
func (l *PriceLevel) unlink(h Handle) {
	node := l.pool.at(h)
	l.TotalQuantity -= node.order.Quantity
	l.count--

	if node.prev != NullHandle {
		l.pool.at(node.prev).next = node.next
	} else {
		l.head = node.next
	}
	if node.next != NullHandle {
		l.pool.at(node.next).prev = node.prev
	} else {
		l.tail = node.prev
	}
}

// adjustQuantity writes newQuantity into h's order and updates
// TotalQuantity by the difference, without reordering the node — the
// same operation whether the quantity is increasing or decreasing.
func (l *PriceLevel) adjustQuantity(h Handle, newQuantity uint64) {
	node := l.pool.at(h)
	oldQuantity := node.order.Quantity
	node.order.Quantity = newQuantity
	l.TotalQuantity -= oldQuantity
	l.TotalQuantity += newQuantity
}

// reduceQuantityBy decrements h's resting quantity by delta (used when a
// match partially fills a resting order) and keeps TotalQuantity
// consistent.
func (l *PriceLevel) reduceQuantityBy(h Handle, delta uint64) {
	node := l.pool.at(h)
	node.order.Quantity -= delta
	l.TotalQuantity -= delta
}

// front returns the handle of the oldest resting order, or NullHandle if
// the level is empty.
func (l *PriceLevel) front() Handle {
	return l.head
}
