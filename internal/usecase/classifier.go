package usecase

import "github.com/vitos/trade_journal/internal/domain"

// Bybit createType values the journal understands.
const (
	createByClosing  = "CreateByClosing"
	createByStopLoss = "CreateByStopLoss"
	createByUser     = "CreateByUser"
)

// ClassifyAction labels one raw execution with the journal action it
// represents. A closing execution with positive cash flow took profit,
// otherwise it was stopped out. Anything else the journal cannot attribute
// stays Unknown and is later dropped as an orphan.
func ClassifyAction(createType string, cashFlow float64) domain.Action {
	switch createType {
	case createByClosing:
		if cashFlow > 0.0 {
			return domain.ActionTakeProfit
		}
		return domain.ActionStopLoss
	case createByStopLoss:
		return domain.ActionStopLoss
	case createByUser:
		return domain.ActionNewOrder
	}
	return domain.ActionUnknown
}

// ClassifyRows returns a copy of the rows with the Action field set. The cash
// flow the exchange reports per execution doubles as the row's gross profit.
func ClassifyRows(rows []domain.ExecutionRow) []domain.ExecutionRow {
	out := make([]domain.ExecutionRow, len(rows))
	for i, row := range rows {
		row.Action = ClassifyAction(row.CreateType, row.GrossProfit)
		out[i] = row
	}
	return out
}
