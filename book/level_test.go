package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLevel_AppendMaintainsFIFOAndAggregate(t *testing.T) {
	pool := newOrderPool()
	level := newPriceLevel(decimal.NewFromInt(100), Buy, pool)

	h1 := pool.construct(Order{ID: 1, Quantity: 10})
	h2 := pool.construct(Order{ID: 2, Quantity: 20})
	h3 := pool.construct(Order{ID: 3, Quantity: 30})

	level.append(h1)
	level.append(h2)
	level.append(h3)

	assert.Equal(t, uint64(60), level.TotalQuantity)
	assert.Equal(t, 3, level.Count())
	assert.Equal(t, h1, level.front())
}

func TestPriceLevel_UnlinkMiddlePreservesOrder(t *testing.T) {
	pool := newOrderPool()
	level := newPriceLevel(decimal.NewFromInt(100), Buy, pool)

	h1 := pool.construct(Order{ID: 1, Quantity: 10})
	h2 := pool.construct(Order{ID: 2, Quantity: 20})
	h3 := pool.construct(Order{ID: 3, Quantity: 30})
	level.append(h1)
	level.append(h2)
	level.append(h3)

	level.unlink(h2)
	pool.destroy(h2)

	require.Equal(t, 2, level.Count())
	assert.Equal(t, uint64(40), level.TotalQuantity)
	assert.Equal(t, h1, level.front())
	assert.Equal(t, h3, pool.at(h1).next)
}

func TestPriceLevel_AdjustQuantityDoesNotReorder(t *testing.T) {
	pool := newOrderPool()
	level := newPriceLevel(decimal.NewFromInt(100), Buy, pool)

	h1 := pool.construct(Order{ID: 1, Quantity: 10})
	h2 := pool.construct(Order{ID: 2, Quantity: 20})
	level.append(h1)
	level.append(h2)

	level.adjustQuantity(h1, 5)

	assert.Equal(t, uint64(5), pool.at(h1).order.Quantity)
	assert.Equal(t, uint64(25), level.TotalQuantity)
	assert.Equal(t, h1, level.front())
}

func TestPriceLevel_BecomesEmptyAfterUnlinkingLastOrder(t *testing.T) {
	pool := newOrderPool()
	level := newPriceLevel(decimal.NewFromInt(100), Buy, pool)

	h1 := pool.construct(Order{ID: 1, Quantity: 10})
	level.append(h1)
	level.unlink(h1)

	assert.True(t, level.Empty())
	assert.Equal(t, uint64(0), level.TotalQuantity)
}
