// Package readmodel rebuilds a depth-view of an order book from its event
// stream, for downstream consumers that only need aggregated (price,
// quantity) levels rather than full order detail — a market-data feed
// handler, for instance. It depends on package book for types only; book
// never imports readmodel, so the core engine stays ignorant of whatever
// downstream views exist.
package readmodel

import (
	"fmt"
	"sync"

	"github.com/igrmk/treemap/v2"
	"github.com/shopspring/decimal"

	"github.com/flashbook-hft/lob/book"
)

type trackedOrder struct {
	side  book.Side
	price decimal.Decimal
	qty   uint64
}

// Aggregator implements book.EventSink, maintaining a depth-only mirror
// of a book's bid/ask sides. It holds no order identities beyond what it
// needs to reverse a later Cancel/Amend against the right level.
type Aggregator struct {
	mu      sync.RWMutex
	bids    *treemap.TreeMap[decimal.Decimal, uint64]
	asks    *treemap.TreeMap[decimal.Decimal, uint64]
	orders  map[uint64]trackedOrder
	trades  uint64
}

// NewAggregator returns an empty Aggregator ready to receive a book's
// event stream via Publish.
func NewAggregator() *Aggregator {
	return &Aggregator{
		bids: treemap.NewWithKeyCompare[decimal.Decimal, uint64](func(a, b decimal.Decimal) bool {
			return a.GreaterThan(b) // bids iterate highest-first
		}),
		asks: treemap.NewWithKeyCompare[decimal.Decimal, uint64](func(a, b decimal.Decimal) bool {
			return a.LessThan(b) // asks iterate lowest-first
		}),
		orders: make(map[uint64]trackedOrder),
	}
}

// Publish applies events in order, keeping the depth maps and the
// per-order tracking table consistent. It satisfies book.EventSink.
func (a *Aggregator) Publish(events ...book.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, ev := range events {
		a.apply(ev)
	}
}

func (a *Aggregator) apply(ev book.Event) {
	switch ev.Kind {
	case book.EventOpen:
		a.addQuantity(ev.Side, ev.Price, ev.Quantity)
		a.orders[ev.OrderID] = trackedOrder{side: ev.Side, price: ev.Price, qty: ev.Quantity}

	case book.EventCancel:
		a.removeQuantity(ev.Side, ev.Price, ev.Quantity)
		delete(a.orders, ev.OrderID)

	case book.EventAmend:
		prior, ok := a.orders[ev.OrderID]
		if !ok {
			return
		}
		a.removeQuantity(prior.side, prior.price, prior.qty)
		a.addQuantity(ev.Side, ev.Price, ev.Quantity)
		a.orders[ev.OrderID] = trackedOrder{side: ev.Side, price: ev.Price, qty: ev.Quantity}

	case book.EventMatch:
		a.trades++
		a.applyFill(ev.Trade.SellOrderID, ev.Trade.Quantity)
		a.applyFill(ev.Trade.BuyOrderID, ev.Trade.Quantity)
	}
}

// applyFill reduces the tracked resting quantity for whichever of a
// trade's two participants was actually resting (the aggressor won't be
// in a.orders at all, since it never made it into the index).
func (a *Aggregator) applyFill(orderID uint64, qty uint64) {
	tracked, ok := a.orders[orderID]
	if !ok {
		return
	}
	a.removeQuantity(tracked.side, tracked.price, qty)
	tracked.qty -= qty
	if tracked.qty == 0 {
		delete(a.orders, orderID)
		return
	}
	a.orders[orderID] = tracked
}

func (a *Aggregator) sideMap(side book.Side) *treemap.TreeMap[decimal.Decimal, uint64] {
	if side == book.Buy {
		return a.bids
	}
	return a.asks
}

func (a *Aggregator) addQuantity(side book.Side, price decimal.Decimal, qty uint64) {
	m := a.sideMap(side)
	current, _ := m.Get(price)
	m.Set(price, current+qty)
}

func (a *Aggregator) removeQuantity(side book.Side, price decimal.Decimal, qty uint64) {
	m := a.sideMap(side)
	current, ok := m.Get(price)
	if !ok {
		return
	}
	if qty >= current {
		m.Del(price)
		return
	}
	m.Set(price, current-qty)
}

// Depth returns the first limit levels on side, best price first.
func (a *Aggregator) Depth(side book.Side, limit int) []book.PriceLevelView {
	a.mu.RLock()
	defer a.mu.RUnlock()

	m := a.sideMap(side)
	views := make([]book.PriceLevelView, 0, limit)
	count := 0
	for it := m.Iterator(); it.Valid(); it.Next() {
		if limit > 0 && count >= limit {
			break
		}
		views = append(views, book.PriceLevelView{Price: it.Key(), Quantity: it.Value()})
		count++
	}
	return views
}

// QuantityAt returns the aggregated resting quantity at price on side.
func (a *Aggregator) QuantityAt(side book.Side, price decimal.Decimal) uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	qty, _ := a.sideMap(side).Get(price)
	return qty
}

// TradeCount returns how many EventMatch events have been applied.
func (a *Aggregator) TradeCount() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.trades
}

func (a *Aggregator) String() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return fmt.Sprintf("readmodel.Aggregator{bids=%d asks=%d trades=%d}", a.bids.Len(), a.asks.Len(), a.trades)
}
