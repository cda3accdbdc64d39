package usecase

import "github.com/vitos/trade_journal/internal/domain"

// BuildROI returns a copy of the rows with the per-row return on investment
// set, measured against the balance before the row executed. The first row of
// the window has no earlier balance, so its pre-trade balance is backed out
// of its own snapshot; this also surfaces deposits and withdrawals that would
// otherwise skew later KPIs.
func BuildROI(rows []domain.ExecutionRow) []domain.ExecutionRow {
	out := make([]domain.ExecutionRow, len(rows))
	var previous *float64
	for i, row := range rows {
		switch {
		case previous != nil && *previous != 0.0:
			row.ROIPercent = row.RealizedProfit * 100.0 / *previous
		case row.AccountBalance != nil && *row.AccountBalance != 0.0:
			row.ROIPercent = -100.0 + (row.RealizedProfit+*row.AccountBalance)*100.0 / *row.AccountBalance
		}
		out[i] = row
		previous = row.AccountBalance
	}
	return out
}
