package book

import (
	"fmt"
	"io"
	"sync"

	"github.com/shopspring/decimal"
)

// EventKind classifies an Event published by the book as it processes an
// operation.
type EventKind int8

const (
	EventOpen EventKind = iota
	EventMatch
	EventCancel
	EventAmend
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventMatch:
		return "match"
	case EventCancel:
		return "cancel"
	case EventAmend:
		return "amend"
	default:
		return "unknown"
	}
}

// Event is one unit of the book's activity stream, produced as a side
// effect of Add, Cancel, or Amend. EventMatch carries Trade; the other
// kinds carry OrderID/Side/Price plus a Quantity whose meaning depends on
// Kind: for EventOpen and EventAmend it is the order's resting quantity
// after the operation; for EventCancel it is the quantity that was
// resting immediately before removal.
type Event struct {
	Kind     EventKind
	OrderID  uint64
	Side     Side
	Price    decimal.Decimal
	Quantity uint64
	Trade    Trade
}

// EventSink receives the book's Event stream. Implementations must either
// process an Event synchronously before Publish returns, or copy out of
// it — the book does not guarantee an Event's fields stay valid after
// Publish returns control.
//
// EventSink deliberately knows nothing about order book internals: it is
// the seam the package's own readmodel consumers, or a caller's market
// data feed, attach to.
type EventSink interface {
	Publish(events ...Event)
}

// DiscardSink drops every event. Useful in benchmarks and tests that
// don't care about the activity stream.
type DiscardSink struct{}

func (DiscardSink) Publish(events ...Event) {}

// MemorySink accumulates events in memory, useful for tests asserting on
// what the book published.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{events: make([]Event, 0)}
}

func (m *MemorySink) Publish(events ...Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
}

func (m *MemorySink) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MemorySink) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// TextSink writes each EventMatch as a "price, qty, buy_id, sell_id" line
// to w — the textual trade sink contract. Non-match events are ignored:
// the contract only defines a wire shape for trades.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (t *TextSink) Publish(events ...Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ev := range events {
		if ev.Kind != EventMatch {
			continue
		}
		fmt.Fprintf(t.w, "%s, %d, %d, %d\n",
			ev.Trade.Price.String(), ev.Trade.Quantity, ev.Trade.BuyOrderID, ev.Trade.SellOrderID)
	}
}

// fanoutSink publishes every event to each of its sinks, in order. It
// backs Config.VerboseLogging: the caller's own sink keeps receiving
// everything it always did, alongside a standard textual trade sink
// that comes on when verbose logging is enabled.
type fanoutSink struct {
	sinks []EventSink
}

func (f fanoutSink) Publish(events ...Event) {
	for _, s := range f.sinks {
		s.Publish(events...)
	}
}
