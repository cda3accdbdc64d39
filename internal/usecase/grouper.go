package usecase

import "github.com/vitos/trade_journal/internal/domain"

type positionKey struct {
	symbol string
	side   domain.Side
}

type openPosition struct {
	group             int
	remainingQuantity float64
}

// TradeGrouper assigns every execution row to a trade group by tracking the
// open position per symbol and side. Rows must arrive sorted ascending by
// execution date: the position state is order dependent and no validation is
// performed here.
type TradeGrouper struct {
	nextGroup int
	open      map[positionKey]*openPosition
}

func NewTradeGrouper() *TradeGrouper {
	return &TradeGrouper{open: make(map[positionKey]*openPosition)}
}

// AssignGroups returns a copy of the rows with TradeGroup set. Close events
// with no matching open position get GroupOrphan.
func (g *TradeGrouper) AssignGroups(rows []domain.ExecutionRow) []domain.ExecutionRow {
	out := make([]domain.ExecutionRow, len(rows))
	for i, row := range rows {
		row.TradeGroup = g.assign(row)
		out[i] = row
	}
	return out
}

func (g *TradeGrouper) assign(row domain.ExecutionRow) int {
	switch row.Action {
	case domain.ActionNewOrder:
		key := positionKey{row.Symbol, row.Side}
		if pos, ok := g.open[key]; ok {
			// scaling into an ongoing position keeps its group
			pos.remainingQuantity += row.Quantity
			return pos.group
		}
		g.nextGroup++
		g.open[key] = &openPosition{group: g.nextGroup, remainingQuantity: row.Quantity}
		return g.nextGroup

	case domain.ActionStopLoss, domain.ActionTakeProfit:
		key := positionKey{row.Symbol, row.Side.Opposite()}
		pos, ok := g.open[key]
		if !ok {
			// a close that belongs to no tracked position, potentially from
			// an earlier dataset
			return domain.GroupOrphan
		}
		pos.remainingQuantity -= row.ClosedSize
		// exact equality: the exchange reports sizes that cancel out to zero
		if pos.remainingQuantity == 0.0 {
			delete(g.open, key)
		}
		return pos.group
	}
	return domain.GroupOrphan
}

// OpenCount reports how many positions are still tracked, mostly for tests.
func (g *TradeGrouper) OpenCount() int {
	return len(g.open)
}

// DropOrphans filters out rows whose close never matched an open position.
func DropOrphans(rows []domain.ExecutionRow) []domain.ExecutionRow {
	out := make([]domain.ExecutionRow, 0, len(rows))
	for _, row := range rows {
		if row.TradeGroup == domain.GroupOrphan {
			continue
		}
		out = append(out, row)
	}
	return out
}
