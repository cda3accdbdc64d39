package domain

import "time"

type Side string

const (
	SideLong  Side = "Long"
	SideShort Side = "Short"
)

// Opposite returns the side a closing execution deducts from. The exchange
// reports a close with the side of the closing order, not of the position.
func (s Side) Opposite() Side {
	switch s {
	case SideLong:
		return SideShort
	case SideShort:
		return SideLong
	}
	return ""
}

// Action is the journal label of an execution row.
type Action int

const (
	ActionUnknown Action = iota
	ActionNewOrder
	ActionStopLoss
	ActionTakeProfit
)

func (a Action) String() string {
	switch a {
	case ActionNewOrder:
		return "New Order"
	case ActionStopLoss:
		return "Stop Loss"
	case ActionTakeProfit:
		return "Take Profit"
	}
	return "Unknown"
}

// GroupOrphan marks a close event that never matched an open position. Rows
// carrying it are excluded from aggregation and statistics.
const GroupOrphan = -1

// ExecutionRow is one fill or order event after the fetcher has merged the
// exchange datasets and mapped them into typed fields. Rows are value types;
// pipeline stages return fresh slices instead of mutating their input.
type ExecutionRow struct {
	Symbol    string
	OrderType string
	Side      Side

	// CreateType is the exchange-native order origin (CreateByUser,
	// CreateByClosing, ...), consumed by the classifier.
	CreateType string
	Action     Action

	ExecPrice float64
	ExecDate  time.Time

	Quantity      float64
	ClosedSize    float64
	RemainingSize float64

	// Preset close prices from order placement, nil when none was set.
	StopLoss   *float64
	TakeProfit *float64

	Fee     float64
	FeeRate float64

	GrossProfit    float64
	RealizedProfit float64

	// AccountBalance is the wallet snapshot at event time, nil when the
	// exchange did not report one.
	AccountBalance *float64

	ROIPercent float64

	// TradeGroup is assigned by the grouper; GroupOrphan until then.
	TradeGroup int
}
