package book

import (
	"github.com/huandu/skiplist"
	"github.com/shopspring/decimal"
)

// skiplistPriceTree indexes levels with github.com/huandu/skiplist, a
// general-purpose pointer-based skiplist. Selected via
// Config.PriceTreeBackend = BackendSkiplist.
type skiplistPriceTree struct {
	sl      *skiplist.SkipList
	byPrice map[string]*skiplist.Element
}

func decimalComparator(descending bool) skiplist.Comparable {
	if descending {
		return skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			a := lhs.(decimal.Decimal)
			b := rhs.(decimal.Decimal)
			switch {
			case a.LessThan(b):
				return 1
			case a.GreaterThan(b):
				return -1
			default:
				return 0
			}
		})
	}
	return skiplist.GreaterThanFunc(func(lhs, rhs any) int {
		a := lhs.(decimal.Decimal)
		b := rhs.(decimal.Decimal)
		switch {
		case a.GreaterThan(b):
			return 1
		case a.LessThan(b):
			return -1
		default:
			return 0
		}
	})
}

func newSkiplistPriceTree(descending bool) *skiplistPriceTree {
	return &skiplistPriceTree{
		sl:      skiplist.New(decimalComparator(descending)),
		byPrice: make(map[string]*skiplist.Element),
	}
}

func (t *skiplistPriceTree) upsert(price decimal.Decimal, level *PriceLevel) {
	key := price.String()
	if _, ok := t.byPrice[key]; ok {
		return
	}
	el := t.sl.Set(price, level)
	t.byPrice[key] = el
}

func (t *skiplistPriceTree) get(price decimal.Decimal) (*PriceLevel, bool) {
	el, ok := t.byPrice[price.String()]
	if !ok {
		return nil, false
	}
	return el.Value.(*PriceLevel), true
}

func (t *skiplistPriceTree) delete(price decimal.Decimal) bool {
	key := price.String()
	el, ok := t.byPrice[key]
	if !ok {
		return false
	}
	t.sl.RemoveElement(el)
	delete(t.byPrice, key)
	return true
}

func (t *skiplistPriceTree) best() (*PriceLevel, bool) {
	el := t.sl.Front()
	if el == nil {
		return nil, false
	}
	return el.Value.(*PriceLevel), true
}

func (t *skiplistPriceTree) size() int {
	return t.sl.Len()
}

func (t *skiplistPriceTree) ascend(fn func(*PriceLevel) bool) {
	for el := t.sl.Front(); el != nil; el = el.Next() {
		if !fn(el.Value.(*PriceLevel)) {
			return
		}
	}
}
