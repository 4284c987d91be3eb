package readmodel

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashbook-hft/lob/book"
)

func price(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestAggregator_TracksOpenAndCancel(t *testing.T) {
	agg := NewAggregator()

	agg.Publish(book.Event{Kind: book.EventOpen, OrderID: 1, Side: book.Buy, Price: price(100.0), Quantity: 10})
	agg.Publish(book.Event{Kind: book.EventOpen, OrderID: 2, Side: book.Buy, Price: price(100.0), Quantity: 20})

	assert.Equal(t, uint64(30), agg.QuantityAt(book.Buy, price(100.0)))

	agg.Publish(book.Event{Kind: book.EventCancel, OrderID: 1, Side: book.Buy, Price: price(100.0), Quantity: 10})
	assert.Equal(t, uint64(20), agg.QuantityAt(book.Buy, price(100.0)))
}

func TestAggregator_CancelLastOrderRemovesLevel(t *testing.T) {
	agg := NewAggregator()
	agg.Publish(book.Event{Kind: book.EventOpen, OrderID: 1, Side: book.Sell, Price: price(101.0), Quantity: 15})
	agg.Publish(book.Event{Kind: book.EventCancel, OrderID: 1, Side: book.Sell, Price: price(101.0), Quantity: 15})

	depth := agg.Depth(book.Sell, 10)
	assert.Empty(t, depth)
}

func TestAggregator_MatchReducesRestingSideOnly(t *testing.T) {
	agg := NewAggregator()
	agg.Publish(book.Event{Kind: book.EventOpen, OrderID: 1, Side: book.Sell, Price: price(101.0), Quantity: 40})

	// aggressor (id 5) never rested, so it never entered the tracking
	// table; only the resting maker (id 1) should be decremented.
	agg.Publish(book.Event{Kind: book.EventMatch, Trade: book.Trade{
		Price: price(101.0), Quantity: 20, BuyOrderID: 5, SellOrderID: 1,
	}})

	assert.Equal(t, uint64(20), agg.QuantityAt(book.Sell, price(101.0)))
	assert.Equal(t, uint64(1), agg.TradeCount())
}

func TestAggregator_AmendMovesQuantityBetweenPrices(t *testing.T) {
	agg := NewAggregator()
	agg.Publish(book.Event{Kind: book.EventOpen, OrderID: 1, Side: book.Buy, Price: price(100.0), Quantity: 10})
	agg.Publish(book.Event{Kind: book.EventAmend, OrderID: 1, Side: book.Buy, Price: price(99.0), Quantity: 10})

	assert.Equal(t, uint64(0), agg.QuantityAt(book.Buy, price(100.0)))
	assert.Equal(t, uint64(10), agg.QuantityAt(book.Buy, price(99.0)))
}

func TestAggregator_DepthOrderedBestFirst(t *testing.T) {
	agg := NewAggregator()
	agg.Publish(book.Event{Kind: book.EventOpen, OrderID: 1, Side: book.Buy, Price: price(100.0), Quantity: 10})
	agg.Publish(book.Event{Kind: book.EventOpen, OrderID: 2, Side: book.Buy, Price: price(101.0), Quantity: 10})
	agg.Publish(book.Event{Kind: book.EventOpen, OrderID: 3, Side: book.Buy, Price: price(99.0), Quantity: 10})

	depth := agg.Depth(book.Buy, 10)
	require.Len(t, depth, 3)
	assert.True(t, depth[0].Price.Equal(price(101.0)))
	assert.True(t, depth[1].Price.Equal(price(100.0)))
	assert.True(t, depth[2].Price.Equal(price(99.0)))
}

func TestAggregator_MirrorsLiveOrderBook(t *testing.T) {
	sink := NewAggregator()
	ob := book.NewOrderBook(book.DefaultConfig(), sink)

	ob.Add(book.Order{ID: 1, Side: book.Buy, Type: book.Limit, Price: price(100.0), Quantity: 10})
	ob.Add(book.Order{ID: 2, Side: book.Sell, Type: book.Limit, Price: price(101.0), Quantity: 10})
	ob.Add(book.Order{ID: 3, Side: book.Buy, Type: book.Limit, Price: price(101.0), Quantity: 5})

	bids, asks := ob.Snapshot(10)
	for _, lvl := range bids {
		assert.Equal(t, lvl.Quantity, sink.QuantityAt(book.Buy, lvl.Price))
	}
	for _, lvl := range asks {
		assert.Equal(t, lvl.Quantity, sink.QuantityAt(book.Sell, lvl.Price))
	}
}
