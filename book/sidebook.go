package book

import "github.com/shopspring/decimal"

// SideBook holds one side (bids or asks) of the order book: the price
// index (a priceTree) plus the orderPool slots its levels' FIFO queues
// reference. It never sees order IDs directly — that's orderIndex's job.
type SideBook struct {
	side Side
	tree priceTree
	pool *orderPool
}

func newSideBook(side Side, pool *orderPool, cfg Config) *SideBook {
	descending := side == Buy
	return &SideBook{
		side: side,
		tree: newPriceTree(cfg.PriceTreeBackend, descending, cfg),
		pool: pool,
	}
}

// levelAt returns the PriceLevel at price, creating and indexing an empty
// one first if none exists yet.
func (sb *SideBook) levelAt(price decimal.Decimal) *PriceLevel {
	if level, ok := sb.tree.get(price); ok {
		return level
	}
	level := newPriceLevel(price, sb.side, sb.pool)
	sb.tree.upsert(price, level)
	return level
}

// dropIfEmpty removes level's price from the index once its last resting
// order leaves, upholding the no-empty-levels-reachable invariant.
func (sb *SideBook) dropIfEmpty(level *PriceLevel) {
	if level.Empty() {
		sb.tree.delete(level.Price)
		logger.Debug("price level evicted", "side", sb.side, "price", level.Price.String())
	}
}

// best returns the level at the most favorable price on this side.
func (sb *SideBook) best() (*PriceLevel, bool) {
	return sb.tree.best()
}

// depth returns the number of distinct prices resting on this side.
func (sb *SideBook) depth() int {
	return sb.tree.size()
}

// snapshot collects up to limit levels in price priority, best first. A
// non-positive limit means unbounded.
func (sb *SideBook) snapshot(limit int) []PriceLevelView {
	var views []PriceLevelView
	if limit > 0 {
		views = make([]PriceLevelView, 0, limit)
	}
	count := 0
	sb.tree.ascend(func(level *PriceLevel) bool {
		views = append(views, PriceLevelView{Price: level.Price, Quantity: level.TotalQuantity})
		count++
		return limit <= 0 || count < limit
	})
	return views
}

// crosses reports whether resting is an acceptable counterparty price for
// an aggressive order priced at price on side aggressorSide: a buy
// crosses any ask at or below its price, a sell crosses any bid at or
// above its price.
func crosses(aggressorSide Side, aggressorPrice, restingPrice decimal.Decimal) bool {
	if aggressorSide == Buy {
		return restingPrice.LessThanOrEqual(aggressorPrice)
	}
	return restingPrice.GreaterThanOrEqual(aggressorPrice)
}
