package book

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
	"github.com/shopspring/decimal"
)

// rbtreePriceTree indexes levels with
// github.com/emirpasic/gods/v2/trees/redblacktree, a generic balanced
// binary search tree. Selected via Config.PriceTreeBackend =
// BackendRedBlackTree.
type rbtreePriceTree struct {
	tree *rbt.Tree[decimal.Decimal, *PriceLevel]
	desc bool
}

func newRedBlackPriceTree(descending bool) *rbtreePriceTree {
	comparator := func(a, b decimal.Decimal) int {
		if descending {
			return b.Cmp(a)
		}
		return a.Cmp(b)
	}
	return &rbtreePriceTree{
		tree: rbt.NewWith[decimal.Decimal, *PriceLevel](comparator),
		desc: descending,
	}
}

func (t *rbtreePriceTree) upsert(price decimal.Decimal, level *PriceLevel) {
	if _, found := t.tree.Get(price); found {
		return
	}
	t.tree.Put(price, level)
}

func (t *rbtreePriceTree) get(price decimal.Decimal) (*PriceLevel, bool) {
	return t.tree.Get(price)
}

func (t *rbtreePriceTree) delete(price decimal.Decimal) bool {
	if _, found := t.tree.Get(price); !found {
		return false
	}
	t.tree.Remove(price)
	return true
}

func (t *rbtreePriceTree) best() (*PriceLevel, bool) {
	node := t.tree.Left()
	if node == nil {
		return nil, false
	}
	return node.Value, true
}

func (t *rbtreePriceTree) size() int {
	return t.tree.Size()
}

func (t *rbtreePriceTree) ascend(fn func(*PriceLevel) bool) {
	it := t.tree.Iterator()
	for it.Next() {
		if !fn(it.Value()) {
			return
		}
	}
}
