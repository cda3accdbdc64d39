package usecase

import (
	"errors"
	"math"

	"github.com/vitos/trade_journal/internal/domain"
)

// BuildStats reduces the aggregated trade table and the detailed rows into
// account-level statistics. The detailed rows drive the monetary KPIs; the
// trades drive the counts. An empty detailed set or a missing initial balance
// means no meaningful report can be produced and is fatal to the caller.
func BuildStats(detailed []domain.ExecutionRow, trades []domain.Trade,
	profitCol domain.ProfitColumn) (*domain.AccountStats, error) {

	if len(detailed) == 0 {
		return nil, errors.New("the detailed dataset is empty, unable to compute the account's total PnL")
	}
	if detailed[0].AccountBalance == nil {
		return nil, errors.New("the initial wallet balance must be a valid number")
	}

	stats := &domain.AccountStats{
		TotalTrades:     len(trades),
		TradesByAsset:   make(map[string]int),
		TradesBySession: make(map[string]int),
	}

	for _, trade := range trades {
		if profitCol.OfTrade(trade) > 0.0 {
			stats.Wins++
		}
		if trade.StoppedOut {
			stats.StoppedOut++
		}
		if trade.RiskManaged {
			stats.RiskManaged++
		}
		stats.TradesByAsset[trade.Symbol]++
		// a trade opened inside two overlapping sessions counts once per
		// session
		for _, session := range trade.Sessions {
			stats.TradesBySession[session]++
		}
	}

	var pnl float64
	for _, row := range detailed {
		pnl += profitCol.OfRow(row)
	}
	stats.PnL = round2(pnl)
	stats.ProfitFactor = profitFactor(detailed, profitCol)

	return stats, nil
}

// profitFactor divides the profitable flow by the losing flow, sign-flipped
// so the ratio always reads positive.
func profitFactor(detailed []domain.ExecutionRow, profitCol domain.ProfitColumn) float64 {
	var profits, losses float64
	for _, row := range detailed {
		p := profitCol.OfRow(row)
		if p >= 0.0 {
			profits += p
		} else {
			losses += p
		}
	}
	if losses == 0.0 {
		// nothing lost in the window
		if profits > 0.0 {
			return math.Inf(1)
		}
		return 0.0
	}
	return round2(profits/losses) * -1.0
}
