package book

import "github.com/shopspring/decimal"

// matchResult carries what the matching loop produced: the trades it
// generated, in emission order, and whatever quantity remains unfilled on
// the incoming order.
type matchResult struct {
	trades            []Trade
	remainingQuantity uint64
}

// match crosses incoming against the opposite side's SideBook while the
// price condition holds, mutating resting levels/orders and the shared
// index in place. incoming.Quantity is read but not written; the residue
// is returned instead, leaving the caller (add) to decide whether to rest
// it, discard it (IOC), or have never called match at all (FOK pre-check
// failure).
func (b *OrderBook) match(incoming Order, opposite *SideBook) matchResult {
	remaining := incoming.Quantity
	var trades []Trade

	for remaining > 0 {
		level, ok := opposite.best()
		if !ok {
			break
		}
		if !crosses(incoming.Side, incoming.Price, level.Price) {
			break
		}

		h := level.front()
		if h == NullHandle {
			fatal(&InvariantViolation{Reason: "price level reachable with empty FIFO queue"})
		}
		node := b.pool.at(h)
		restingID := node.order.ID
		restingQty := node.order.Quantity

		tradeQty := remaining
		if restingQty < tradeQty {
			tradeQty = restingQty
		}

		trade := Trade{
			Price:       level.Price,
			Quantity:    tradeQty,
			Timestamp:   incoming.Timestamp,
			AggressorID: incoming.ID,
			RestingID:   restingID,
		}
		if incoming.Side == Buy {
			trade.BuyOrderID = incoming.ID
			trade.SellOrderID = restingID
		} else {
			trade.BuyOrderID = restingID
			trade.SellOrderID = incoming.ID
		}
		trades = append(trades, trade)

		remaining -= tradeQty
		level.reduceQuantityBy(h, tradeQty)

		if node.order.Quantity == 0 {
			b.index.remove(restingID)
			level.unlink(h)
			b.pool.destroy(h)
		}
		if level.Empty() {
			opposite.dropIfEmpty(level)
		}
	}

	return matchResult{trades: trades, remainingQuantity: remaining}
}

// wouldFullyFill reports whether an order of side/price/quantity could be
// entirely satisfied by opposite's current resting liquidity, without
// mutating anything. Used by FOK's pre-check.
func wouldFullyFill(side Side, price decimal.Decimal, quantity uint64, opposite *SideBook) bool {
	var available uint64
	opposite.tree.ascend(func(level *PriceLevel) bool {
		if !crosses(side, price, level.Price) {
			return false
		}
		available += level.TotalQuantity
		return available < quantity
	})
	return available >= quantity
}
