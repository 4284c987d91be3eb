package book

import (
	"github.com/shopspring/decimal"

	"github.com/flashbook-hft/lob/structure"
)

// arenaPriceTree is the default priceTree backend: the package's own
// arena-indexed skiplist, generalized with a *PriceLevel payload. It is
// the zero-allocation-on-the-hot-path choice, at the cost of the fixed
// (though growable) arena upfront.
type arenaPriceTree struct {
	sl *structure.PooledSkiplist[*PriceLevel]
}

func newArenaPriceTree(descending bool, initialCapacity, maxCapacity int32) *arenaPriceTree {
	if maxCapacity > 0 {
		if initialCapacity > maxCapacity {
			initialCapacity = maxCapacity
		}
		// The skiplist counts its head sentinel as one of its nodes.
		maxCapacity++
	}
	return &arenaPriceTree{
		sl: structure.NewPooledSkiplistWithOptions[*PriceLevel](initialCapacity, 1, structure.SkiplistOptions{
			Descending:  descending,
			MaxCapacity: maxCapacity,
		}),
	}
}

func (t *arenaPriceTree) upsert(price decimal.Decimal, level *PriceLevel) {
	if _, ok := t.sl.Get(price); ok {
		return
	}
	if _, err := t.sl.Upsert(price, level); err != nil {
		fatal(&ResourceExhaustion{Reason: err.Error()})
	}
}

func (t *arenaPriceTree) get(price decimal.Decimal) (*PriceLevel, bool) {
	return t.sl.Get(price)
}

func (t *arenaPriceTree) delete(price decimal.Decimal) bool {
	return t.sl.Delete(price)
}

func (t *arenaPriceTree) best() (*PriceLevel, bool) {
	_, level, ok := t.sl.Front()
	return level, ok
}

func (t *arenaPriceTree) size() int {
	return int(t.sl.Count())
}

func (t *arenaPriceTree) ascend(fn func(*PriceLevel) bool) {
	it := t.sl.Iterator()
	for it.Valid() {
		if !fn(it.Value()) {
			return
		}
		it.Next()
	}
}
