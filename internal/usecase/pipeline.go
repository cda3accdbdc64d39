package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vitos/trade_journal/internal/domain"
)

// JournalData is everything one reporting window reduces to: the detailed
// per-execution rows, the aggregated trades, the groups that failed to
// aggregate, and the account statistics.
type JournalData struct {
	Detailed []domain.ExecutionRow
	Trades   []domain.Trade
	Failed   []GroupResult
	Stats    *domain.AccountStats
}

// Pipeline runs the journal's data flow: fetch, classify, group, aggregate,
// reduce to statistics.
type Pipeline struct {
	provider   domain.HistoryProvider
	aggregator *Aggregator
	profitCol  domain.ProfitColumn
	log        *zap.Logger
}

func NewPipeline(provider domain.HistoryProvider, aggregator *Aggregator,
	profitCol domain.ProfitColumn, log *zap.Logger) *Pipeline {
	return &Pipeline{
		provider:   provider,
		aggregator: aggregator,
		profitCol:  profitCol,
		log:        log,
	}
}

// Run reduces one reporting window. Orphaned closes are dropped before
// aggregation, failed groups are logged and carried in the result, and only
// dataset-level failures (nothing fetched, no usable balance) are fatal.
func (p *Pipeline) Run(ctx context.Context, start, end time.Time) (*JournalData, error) {
	rows, err := p.provider.FetchRows(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch data: %w", err)
	}
	p.log.Info("fetched execution rows",
		zap.Int("rows", len(rows)),
		zap.Time("start", start), zap.Time("end", end))

	rows = ClassifyRows(rows)
	rows = NewTradeGrouper().AssignGroups(rows)
	dropped := len(rows)
	rows = DropOrphans(rows)
	if dropped -= len(rows); dropped > 0 {
		p.log.Warn("dropped close events with no matching open position",
			zap.Int("rows", dropped))
	}
	rows = BuildROI(rows)

	trades, results := p.aggregator.AggregateAll(rows)
	failed := make([]GroupResult, 0)
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}

	stats, err := BuildStats(rows, trades, p.profitCol)
	if err != nil {
		return nil, err
	}

	return &JournalData{
		Detailed: rows,
		Trades:   trades,
		Failed:   failed,
		Stats:    stats,
	}, nil
}
