package book

import "github.com/shopspring/decimal"

// priceTree indexes the *PriceLevel resting at each distinct price on one
// side of the book, kept in price priority order. Bids iterate
// highest-first, asks lowest-first; each backend bakes that direction in
// at construction time rather than exposing it as a runtime flag.
//
// Three interchangeable implementations exist (see pricetree_arena.go,
// pricetree_skiplist.go, pricetree_rbtree.go), selected by
// Config.PriceTreeBackend. They are observably identical; callers never
// need to know which one a SideBook holds.
type priceTree interface {
	// upsert inserts level under its Price, or is a no-op if a level is
	// already indexed at that price (levels are created once by SideBook
	// and mutated in place afterward).
	upsert(price decimal.Decimal, level *PriceLevel)
	// get returns the level at price, if indexed.
	get(price decimal.Decimal) (*PriceLevel, bool)
	// delete removes the level at price. Returns false if none was indexed.
	delete(price decimal.Decimal) bool
	// best returns the level at the most favorable indexed price.
	best() (*PriceLevel, bool)
	// size reports how many distinct prices are indexed.
	size() int
	// ascend calls fn for each indexed level in priority order, best
	// first, until fn returns false or levels run out.
	ascend(fn func(*PriceLevel) bool)
}

// newPriceTree builds the priceTree backend selected by cfg for one side
// of the book. descending is true for the bid side (highest price first).
func newPriceTree(backend PriceTreeBackend, descending bool, cfg Config) priceTree {
	switch backend {
	case BackendSkiplist:
		return newSkiplistPriceTree(descending)
	case BackendRedBlackTree:
		return newRedBlackPriceTree(descending)
	case BackendArena:
		fallthrough
	default:
		initialCapacity := cfg.InitialLevelCapacity
		if initialCapacity <= 0 {
			initialCapacity = 256
		}
		return newArenaPriceTree(descending, initialCapacity, cfg.MaxPriceLevels)
	}
}
