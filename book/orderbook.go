package book

import (
	"os"

	"github.com/shopspring/decimal"
)

// OrderBook is the public surface: a single-instrument limit order book
// with add/cancel/amend/snapshot and best-bid/best-ask access. It is not
// safe for concurrent use — callers that need parallelism shard by
// instrument and own one OrderBook per shard.
type OrderBook struct {
	cfg  Config
	pool *orderPool

	bids *SideBook
	asks *SideBook

	index *orderIndex
	sink  EventSink
}

// NewOrderBook constructs an empty book. A nil sink is replaced with
// DiscardSink so callers never need to nil-check before publishing.
func NewOrderBook(cfg Config, sink EventSink) *OrderBook {
	if sink == nil {
		sink = DiscardSink{}
	}
	if cfg.VerboseLogging {
		sink = fanoutSink{sinks: []EventSink{sink, NewTextSink(os.Stdout)}}
	}
	pool := newOrderPool()
	return &OrderBook{
		cfg:   cfg,
		pool:  pool,
		bids:  newSideBook(Buy, pool, cfg),
		asks:  newSideBook(Sell, pool, cfg),
		index: newOrderIndex(),
		sink:  sink,
	}
}

func (b *OrderBook) sideBooks(side Side) (own, opposite *SideBook) {
	if side == Buy {
		return b.bids, b.asks
	}
	return b.asks, b.bids
}

// Add submits order to the book. It is matched against the opposite side
// first; any residue is rested per order.Type's semantics. A duplicate
// order.ID left over after matching is silently discarded — the book is
// left exactly as matching alone would have left it, per the duplicate-id
// contract.
func (b *OrderBook) Add(order Order) {
	own, opposite := b.sideBooks(order.Side)

	if order.Type == FOK && order.Quantity > 0 {
		if !wouldFullyFill(order.Side, order.Price, order.Quantity, opposite) {
			return
		}
	}

	result := b.match(order, opposite)
	b.publishTrades(result.trades)

	if result.remainingQuantity == 0 {
		return
	}
	if order.Type == IOC || order.Type == FOK {
		return
	}
	if b.index.has(order.ID) {
		return
	}

	residual := order
	residual.Quantity = result.remainingQuantity

	h := b.pool.construct(residual)
	level := own.levelAt(order.Price)
	level.append(h)
	b.index.put(order.ID, h)

	b.sink.Publish(Event{Kind: EventOpen, OrderID: order.ID, Side: order.Side, Price: order.Price, Quantity: residual.Quantity})
}

func (b *OrderBook) publishTrades(trades []Trade) {
	if len(trades) == 0 {
		return
	}
	events := make([]Event, len(trades))
	for i, t := range trades {
		events[i] = Event{Kind: EventMatch, Trade: t}
	}
	b.sink.Publish(events...)
}

// Cancel removes a resting order by ID. Returns false if the ID is not
// (or no longer) resting; the book is left untouched in that case.
func (b *OrderBook) Cancel(orderID uint64) bool {
	h, ok := b.index.get(orderID)
	if !ok {
		return false
	}
	node := b.pool.at(h)
	side, restingPrice, restingQuantity := node.order.Side, node.order.Price, node.order.Quantity

	b.removeResting(h, orderID)
	b.sink.Publish(Event{Kind: EventCancel, OrderID: orderID, Side: side, Price: restingPrice, Quantity: restingQuantity})
	return true
}

// removeResting unlinks and destroys the node at h, dropping its level if
// it becomes empty, and removes orderID from the index.
func (b *OrderBook) removeResting(h Handle, orderID uint64) {
	node := b.pool.at(h)
	level := node.level
	if level == nil {
		fatal(&InvariantViolation{Reason: "indexed node has no owning level"})
	}

	own, _ := b.sideBooks(level.Side)

	level.unlink(h)
	b.index.remove(orderID)
	b.pool.destroy(h)
	own.dropIfEmpty(level)
}

// Amend changes a resting order's price and/or quantity in place where
// legal, or re-submits it as a fresh aggressive order when the price
// changes. Returns false if orderID is not resting.
func (b *OrderBook) Amend(orderID uint64, newPrice decimal.Decimal, newQuantity uint64) bool {
	h, ok := b.index.get(orderID)
	if !ok {
		return false
	}
	node := b.pool.at(h)
	oldPrice := node.order.Price
	oldQuantity := node.order.Quantity

	if newPrice.Equal(oldPrice) {
		if newQuantity == oldQuantity {
			return true
		}
		level := node.level
		if level == nil {
			fatal(&InvariantViolation{Reason: "indexed node has no owning level"})
		}
		level.adjustQuantity(h, newQuantity)
		b.sink.Publish(Event{Kind: EventAmend, OrderID: orderID, Side: node.order.Side, Price: newPrice, Quantity: newQuantity})
		return true
	}

	side := node.order.Side
	orderType := node.order.Type
	timestamp := node.order.Timestamp

	b.removeResting(h, orderID)
	b.sink.Publish(Event{Kind: EventCancel, OrderID: orderID, Side: side, Price: oldPrice, Quantity: oldQuantity})
	b.Add(Order{
		ID:        orderID,
		Side:      side,
		Type:      orderType,
		Price:     newPrice,
		Quantity:  newQuantity,
		Timestamp: timestamp,
	})
	return true
}

// Snapshot returns up to depth price levels per side, best first. A
// non-positive depth falls back to Config.DefaultSnapshotDepth.
func (b *OrderBook) Snapshot(depth int) (bids, asks []PriceLevelView) {
	if depth <= 0 {
		depth = b.cfg.DefaultSnapshotDepth
	}
	return b.bids.snapshot(depth), b.asks.snapshot(depth)
}

// BestBid returns the highest resting buy price, if any.
func (b *OrderBook) BestBid() (decimal.Decimal, bool) {
	level, ok := b.bids.best()
	if !ok {
		return decimal.Zero, false
	}
	return level.Price, true
}

// BestAsk returns the lowest resting sell price, if any.
func (b *OrderBook) BestAsk() (decimal.Decimal, bool) {
	level, ok := b.asks.best()
	if !ok {
		return decimal.Zero, false
	}
	return level.Price, true
}

// OrderCount returns the number of currently resting orders.
func (b *OrderBook) OrderCount() int {
	return b.index.len()
}
