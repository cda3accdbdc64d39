package usecase

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vitos/trade_journal/internal/domain"
)

// EntryCalc selects how multiple entry fills reduce to one entry price. The
// same policy applies to the preset close prices.
type EntryCalc string

const (
	EntryCalcFirst   EntryCalc = "first"
	EntryCalcAverage EntryCalc = "average"
)

// GroupResult ties one trade group to its reduction outcome. A failed group
// carries the reason instead of a trade; the pipeline keeps going.
type GroupResult struct {
	Group int
	Trade *domain.Trade
	Err   error
}

// Aggregator reduces each trade group's rows into a single trade record.
type Aggregator struct {
	entryCalc     EntryCalc
	riskThreshold float64
	now           func() time.Time
	log           *zap.Logger
}

func NewAggregator(entryCalc EntryCalc, riskThreshold float64, log *zap.Logger) *Aggregator {
	return &Aggregator{
		entryCalc:     entryCalc,
		riskThreshold: riskThreshold,
		now:           time.Now,
		log:           log,
	}
}

// AggregateAll partitions the rows by trade group and reduces every group,
// in group order. Groups that cannot be reduced are reported in the results
// and skipped; one malformed trade never aborts the journal.
func (a *Aggregator) AggregateAll(rows []domain.ExecutionRow) ([]domain.Trade, []GroupResult) {
	byGroup := make(map[int][]domain.ExecutionRow)
	var order []int
	for _, row := range rows {
		if row.TradeGroup == domain.GroupOrphan {
			continue
		}
		if _, ok := byGroup[row.TradeGroup]; !ok {
			order = append(order, row.TradeGroup)
		}
		byGroup[row.TradeGroup] = append(byGroup[row.TradeGroup], row)
	}
	sort.Ints(order)

	trades := make([]domain.Trade, 0, len(order))
	results := make([]GroupResult, 0, len(order))
	for _, group := range order {
		trade, err := a.Aggregate(byGroup[group])
		if err != nil {
			a.log.Warn("unable to process KPIs for trade group",
				zap.Int("group", group), zap.Error(err))
			results = append(results, GroupResult{Group: group, Err: err})
			continue
		}
		trades = append(trades, *trade)
		results = append(results, GroupResult{Group: group, Trade: trade})
	}
	return trades, results
}

// Aggregate reduces one trade group's rows, already sorted ascending by
// execution date, into a trade record.
func (a *Aggregator) Aggregate(rows []domain.ExecutionRow) (*domain.Trade, error) {
	if len(rows) == 0 {
		return nil, errors.New("trade group is empty")
	}

	first := rows[0]

	var newRows, slRows, tpRows []domain.ExecutionRow
	for _, row := range rows {
		switch row.Action {
		case domain.ActionNewOrder:
			newRows = append(newRows, row)
		case domain.ActionStopLoss:
			slRows = append(slRows, row)
		case domain.ActionTakeProfit:
			tpRows = append(tpRows, row)
		}
	}
	if len(newRows) == 0 {
		return nil, fmt.Errorf("trade group %d has no entry rows", first.TradeGroup)
	}
	if first.AccountBalance == nil {
		return nil, fmt.Errorf("trade group %d has no account balance on its first row", first.TradeGroup)
	}

	entryPrice, entryDate := a.entryValues(newRows)
	decimals := decimalPlaces(entryPrice)

	var quantity float64
	for _, row := range newRows {
		quantity += row.Quantity
	}
	var gross, realized float64
	for _, row := range rows {
		gross += row.GrossProfit
		realized += row.RealizedProfit
	}
	gross = round2(gross)
	realized = round2(realized)

	presetSL, triggeredSL, slClosedSize := a.closeKPIs(newRows, slRows, stopLossOf)
	presetTP, _, tpClosedSize := a.closeKPIs(newRows, tpRows, takeProfitOf)
	totalClosedSize := slClosedSize + tpClosedSize

	slWeighted := weightedExit(slRows, totalClosedSize, decimals)
	tpWeighted := weightedExit(tpRows, totalClosedSize, decimals)
	var exitPrice *float64
	if sum := slWeighted + tpWeighted; sum > 0.0 {
		exitPrice = &sum
	}

	var tpsTaken []float64
	for _, row := range tpRows {
		tpsTaken = append(tpsTaken, row.ExecPrice)
	}

	// NOTE: a trade that accumulated more than it closed counts as open;
	// anything else, including an over-closed group, counts as closed. This
	// mirrors the journal's historical behaviour on purpose.
	closed := !(quantity > totalClosedSize)

	var closedDate time.Time
	if closed {
		// rows can share a timestamp, but the last row of a closed group is
		// always the close
		closedDate = rows[len(rows)-1].ExecDate
	}
	durationEnd := closedDate
	if durationEnd.IsZero() {
		durationEnd = a.now()
	}
	duration, err := FormatElapsed(entryDate, durationEnd)
	if err != nil {
		return nil, fmt.Errorf("unable to compute trade duration: %w", err)
	}

	result := domain.ResultBreakeven
	if gross > 0.0 {
		result = domain.ResultWin
	} else if gross < 0.0 {
		result = domain.ResultLoss
	}

	initBalance := *first.AccountBalance
	stoppedOut := triggeredSL != nil

	riskRef := presetSL
	if riskRef == nil {
		riskRef = triggeredSL
	}
	var risk *float64
	riskManaged := false
	if presetSL == nil && result == domain.ResultWin {
		// a winner that never had a stop: the risk is unknowable and moot
	} else if riskRef != nil {
		r := math.Abs(round2(math.Abs(entryPrice-*riskRef) * quantity / initBalance))
		risk = &r
		if r <= a.riskThreshold {
			riskManaged = true
		}
	}

	return &domain.Trade{
		Group:             first.TradeGroup,
		Symbol:            first.Symbol,
		OrderType:         first.OrderType,
		Side:              first.Side,
		EntryPrice:        entryPrice,
		EntryDate:         entryDate,
		Quantity:          quantity,
		GrossProfit:       gross,
		RealizedProfit:    realized,
		PresetStopLoss:    presetSL,
		TriggeredStopLoss: triggeredSL,
		PresetTakeProfit:  presetTP,
		TakeProfitsTaken:  tpsTaken,
		ExitPrice:         exitPrice,
		Closed:            closed,
		ClosedDate:        closedDate,
		Duration:          duration,
		Result:            result,
		Risk:              risk,
		RiskManaged:       riskManaged,
		StoppedOut:        stoppedOut,
		Sessions:          domain.SessionsAt(entryDate),
		InitialBalance:    initBalance,
	}, nil
}

// entryValues reduces the entry rows to one price and the earliest date.
func (a *Aggregator) entryValues(newRows []domain.ExecutionRow) (float64, time.Time) {
	price := newRows[0].ExecPrice
	if a.entryCalc == EntryCalcAverage {
		var sum float64
		for _, row := range newRows {
			sum += row.ExecPrice
		}
		price = sum / float64(len(newRows))
	}

	date := newRows[0].ExecDate
	for _, row := range newRows[1:] {
		if row.ExecDate.Before(date) {
			date = row.ExecDate
		}
	}
	return price, date
}

func stopLossOf(row domain.ExecutionRow) *float64   { return row.StopLoss }
func takeProfitOf(row domain.ExecutionRow) *float64 { return row.TakeProfit }

// closeKPIs derives, for one close type, the preset price set at order
// placement, the price of the fill that fully closed the position, and the
// total size closed. The preset is nil when none was set or when no close of
// that type ever filled.
func (a *Aggregator) closeKPIs(newRows, closeRows []domain.ExecutionRow,
	presetOf func(domain.ExecutionRow) *float64) (preset, triggered *float64, closedSize float64) {

	var presets []float64
	for _, row := range newRows {
		if p := presetOf(row); p != nil {
			presets = append(presets, *p)
		}
	}
	if len(presets) > 0 && len(closeRows) > 0 {
		value := presets[0]
		if a.entryCalc == EntryCalcAverage {
			var sum float64
			for _, p := range presets {
				sum += p
			}
			value = sum / float64(len(presets))
		}
		preset = &value
	}

	for _, row := range closeRows {
		closedSize += row.ClosedSize
		if triggered == nil && row.RemainingSize == 0.0 {
			price := row.ExecPrice
			triggered = &price
		}
	}
	return preset, triggered, closedSize
}

// weightedExit reduces the close fills of one type to a size-weighted average
// price. When the total closed size is zero the weighting degenerates to the
// raw size-price products instead of dividing by zero.
func weightedExit(closeRows []domain.ExecutionRow, totalClosedSize float64, decimals int) float64 {
	var sum float64
	for _, row := range closeRows {
		if totalClosedSize > 0.0 {
			sum += (row.ClosedSize / totalClosedSize) * row.ExecPrice
		} else {
			sum += row.ClosedSize * row.ExecPrice
		}
	}
	return roundTo(sum, decimals)
}

func round2(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// decimalPlaces counts the significant decimals of a price, used to round
// derived prices to the instrument's own precision.
func decimalPlaces(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
