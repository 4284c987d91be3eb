package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allBackends() []PriceTreeBackend {
	return []PriceTreeBackend{BackendArena, BackendSkiplist, BackendRedBlackTree}
}

func TestPriceTree_AscendingOrderAndBest(t *testing.T) {
	for _, backend := range allBackends() {
		t.Run(string(backend), func(t *testing.T) {
			tree := newPriceTree(backend, false, DefaultConfig())

			prices := []int64{101, 99, 105, 100}
			for _, p := range prices {
				price := decimal.NewFromInt(p)
				tree.upsert(price, &PriceLevel{Price: price})
			}

			best, ok := tree.best()
			require.True(t, ok)
			assert.True(t, best.Price.Equal(decimal.NewFromInt(99)))

			var got []int64
			tree.ascend(func(l *PriceLevel) bool {
				got = append(got, l.Price.IntPart())
				return true
			})
			assert.Equal(t, []int64{99, 100, 101, 105}, got)
			assert.Equal(t, 4, tree.size())
		})
	}
}

func TestPriceTree_DescendingOrderAndBest(t *testing.T) {
	for _, backend := range allBackends() {
		t.Run(string(backend), func(t *testing.T) {
			tree := newPriceTree(backend, true, DefaultConfig())

			prices := []int64{101, 99, 105, 100}
			for _, p := range prices {
				price := decimal.NewFromInt(p)
				tree.upsert(price, &PriceLevel{Price: price})
			}

			best, ok := tree.best()
			require.True(t, ok)
			assert.True(t, best.Price.Equal(decimal.NewFromInt(105)))

			var got []int64
			tree.ascend(func(l *PriceLevel) bool {
				got = append(got, l.Price.IntPart())
				return true
			})
			assert.Equal(t, []int64{105, 101, 100, 99}, got)
		})
	}
}

func TestPriceTree_DeleteRemovesEntry(t *testing.T) {
	for _, backend := range allBackends() {
		t.Run(string(backend), func(t *testing.T) {
			tree := newPriceTree(backend, false, DefaultConfig())
			p1, p2 := decimal.NewFromInt(10), decimal.NewFromInt(20)
			tree.upsert(p1, &PriceLevel{Price: p1})
			tree.upsert(p2, &PriceLevel{Price: p2})

			assert.True(t, tree.delete(p1))
			assert.False(t, tree.delete(p1))
			assert.Equal(t, 1, tree.size())

			best, ok := tree.best()
			require.True(t, ok)
			assert.True(t, best.Price.Equal(p2))
		})
	}
}

func TestPriceTree_UpsertExistingPriceIsNoOp(t *testing.T) {
	for _, backend := range allBackends() {
		t.Run(string(backend), func(t *testing.T) {
			tree := newPriceTree(backend, false, DefaultConfig())
			p := decimal.NewFromInt(10)
			first := &PriceLevel{Price: p}
			second := &PriceLevel{Price: p}

			tree.upsert(p, first)
			tree.upsert(p, second)

			got, ok := tree.get(p)
			require.True(t, ok)
			assert.Same(t, first, got)
			assert.Equal(t, 1, tree.size())
		})
	}
}
