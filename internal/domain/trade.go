package domain

import "time"

// Trade result classification.
const (
	ResultWin       = 1
	ResultLoss      = -1
	ResultBreakeven = 0
)

// Trade is one aggregated position lifecycle, reduced from every execution
// row sharing a trade group. Immutable once produced; consumed by the stats
// builder and the journal renderer.
type Trade struct {
	Group     int
	Symbol    string
	OrderType string
	Side      Side

	EntryPrice float64
	EntryDate  time.Time
	Quantity   float64

	GrossProfit    float64
	RealizedProfit float64

	// PresetStopLoss / PresetTakeProfit are the close prices set at order
	// placement; TriggeredStopLoss is the price of the stop fill that fully
	// closed the position. All nil when not applicable.
	PresetStopLoss    *float64
	TriggeredStopLoss *float64
	PresetTakeProfit  *float64

	// TakeProfitsTaken lists every take-profit fill price, in order.
	TakeProfitsTaken []float64

	// ExitPrice is the size-weighted average across all closes, nil while
	// nothing has closed yet.
	ExitPrice *float64

	Closed     bool
	ClosedDate time.Time // zero while the trade is open
	Duration   string

	Result int

	// Risk is the fraction of the account balance a full stop-out would have
	// cost, nil when unknowable.
	Risk        *float64
	RiskManaged bool
	StoppedOut  bool

	Sessions []string

	InitialBalance float64
}

// ProfitColumn selects which profit figure drives the account KPIs.
type ProfitColumn string

const (
	ProfitRealized ProfitColumn = "Realized Profit"
	ProfitGross    ProfitColumn = "Gross Profit"
)

func (c ProfitColumn) OfTrade(t Trade) float64 {
	if c == ProfitGross {
		return t.GrossProfit
	}
	return t.RealizedProfit
}

func (c ProfitColumn) OfRow(r ExecutionRow) float64 {
	if c == ProfitGross {
		return r.GrossProfit
	}
	return r.RealizedProfit
}
