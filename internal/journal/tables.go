package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vitos/trade_journal/internal/domain"
)

const dateLayout = "2006-01-02 15:04:05"

const (
	spanRed   = `<span class="red-text">%s</span>`
	spanGreen = `<span class="green-text">%s</span>`
	tagWin    = `<span class="tag-win">Win</span>`
	tagLoss   = `<span class="tag-loss">Loss</span>`
	tagBE     = `<span class="tag-be">Breakeven</span>`

	checkboxOn  = `<input type="checkbox" checked>`
	checkboxOff = `<input type="checkbox">`
)

var sessionTags = map[string]string{
	domain.SessionSydney:  `<span class="session-syd">SYD</span>`,
	domain.SessionTokyo:   `<span class="session-tok">TOK</span>`,
	domain.SessionLondon:  `<span class="session-ldn">LDN</span>`,
	domain.SessionNewYork: `<span class="session-ny">NY</span>`,
}

// Table is a single rendered journal table.
type Table struct {
	Title        string
	Columns      []string
	Rows         [][]string
	Descriptions bool
}

// Renderer turns classified rows and aggregated trades into markdown tables.
type Renderer struct {
	riskThreshold float64
}

func NewRenderer(riskThreshold float64) *Renderer {
	return &Renderer{riskThreshold: riskThreshold}
}

// DetailedTable renders one row per execution.
func (r *Renderer) DetailedTable(title string, rows []domain.ExecutionRow, columns []string, descriptions bool) Table {
	if len(columns) == 0 {
		columns = DetailedViewColumns
	}
	t := Table{Title: title, Columns: columns, Descriptions: descriptions}
	for i := range rows {
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = r.detailedCell(&rows[i], col)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// TableForType routes a configured table type to its view. Custom tables
// carry their own column list but render per execution, like the detailed
// view; anything else renders per trade.
func (r *Renderer) TableForType(tableType, title string, rows []domain.ExecutionRow,
	trades []domain.Trade, columns []string, descriptions bool) Table {
	switch strings.ToLower(tableType) {
	case "detailed", "custom":
		return r.DetailedTable(title, rows, columns, descriptions)
	default:
		return r.AggregatedTable(title, trades, columns, descriptions)
	}
}

// AggregatedTable renders one row per trade.
func (r *Renderer) AggregatedTable(title string, trades []domain.Trade, columns []string, descriptions bool) Table {
	if len(columns) == 0 {
		columns = AggregatedViewColumns
	}
	t := Table{Title: title, Columns: columns, Descriptions: descriptions}
	for i := range trades {
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = r.aggregatedCell(&trades[i], col)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func (r *Renderer) detailedCell(row *domain.ExecutionRow, col string) string {
	switch col {
	case ColSymbol:
		return "**" + row.Symbol + "**"
	case ColType:
		return row.OrderType
	case ColAction:
		return formatAction(row.Action)
	case ColSide:
		return formatSide(row.Side)
	case ColQuantity:
		return formatNum(row.Quantity)
	case ColEntryPrice:
		return formatNum(row.ExecPrice)
	case ColEntryDate:
		return formatDate(row.ExecDate)
	case ColGrossProfit:
		return formatProfit(row.GrossProfit)
	case ColRealizedProfit:
		return formatProfit(row.RealizedProfit)
	case ColWalletBalance:
		if row.AccountBalance == nil {
			return ""
		}
		return fmt.Sprintf("%.2f", *row.AccountBalance)
	case ColROIPercent:
		return formatROI(row.ROIPercent)
	case ColFee:
		return formatNum(row.Fee)
	case ColFeeRate:
		return formatNum(row.FeeRate)
	case ColClosedSize:
		return formatNum(row.ClosedSize)
	case ColSLSet:
		return formatOptPrice(row.StopLoss, true)
	case ColTPSet:
		return formatOptPrice(row.TakeProfit, false)
	case ColSession:
		return formatSessions(domain.SessionsAt(row.ExecDate))
	default:
		return ""
	}
}

func (r *Renderer) aggregatedCell(trade *domain.Trade, col string) string {
	switch col {
	case ColSymbol:
		return "**" + trade.Symbol + "**"
	case ColType:
		return trade.OrderType
	case ColSide:
		return formatSide(trade.Side)
	case ColIsClosed:
		return formatCheckbox(trade.Closed)
	case ColStoppedOut:
		return formatCheckbox(trade.StoppedOut)
	case ColRiskManaged:
		return formatCheckbox(trade.RiskManaged)
	case ColTradeStatus:
		return formatResult(trade.Result)
	case ColQuantity:
		return formatNum(trade.Quantity)
	case ColSession:
		return formatSessions(trade.Sessions)
	case ColEntryPrice:
		return formatNum(trade.EntryPrice)
	case ColEntryDate:
		return formatDate(trade.EntryDate)
	case ColExitPrice:
		if trade.ExitPrice == nil {
			return ""
		}
		return formatNum(*trade.ExitPrice)
	case ColClosedDate:
		return formatDate(trade.ClosedDate)
	case ColDuration:
		if trade.Duration == "" {
			return ""
		}
		return "*" + trade.Duration + "*"
	case ColSLSet:
		return formatOptPrice(trade.PresetStopLoss, true)
	case ColSLTriggered:
		return formatOptPrice(trade.TriggeredStopLoss, false)
	case ColTPSet:
		return formatOptPrice(trade.PresetTakeProfit, false)
	case ColTakeProfits:
		return formatTakeProfits(trade.TakeProfitsTaken)
	case ColRiskTaken:
		return r.formatRisk(trade.Risk)
	case ColGrossProfit:
		return formatProfit(trade.GrossProfit)
	case ColRealizedProfit:
		return formatProfit(trade.RealizedProfit)
	default:
		return ""
	}
}

func formatAction(a domain.Action) string {
	switch a {
	case domain.ActionStopLoss:
		return fmt.Sprintf(spanRed, a.String())
	case domain.ActionTakeProfit:
		return fmt.Sprintf(spanGreen, a.String())
	default:
		return a.String()
	}
}

func formatSide(s domain.Side) string {
	if s == domain.SideShort {
		return fmt.Sprintf(spanRed, "**Short**")
	}
	return fmt.Sprintf(spanGreen, "**Long**")
}

func formatResult(result int) string {
	switch result {
	case domain.ResultWin:
		return tagWin
	case domain.ResultLoss:
		return tagLoss
	default:
		return tagBE
	}
}

func formatCheckbox(v bool) string {
	if v {
		return checkboxOn
	}
	return checkboxOff
}

func formatProfit(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if v < 0 {
		return fmt.Sprintf(spanRed, s)
	}
	if v > 0 {
		return fmt.Sprintf(spanGreen, "+"+s)
	}
	return s
}

func formatROI(v float64) string {
	s := fmt.Sprintf("%.2f%%", v)
	if v < 0 {
		return fmt.Sprintf(spanRed, s)
	}
	if v > 0 {
		return fmt.Sprintf(spanGreen, "+"+s)
	}
	return s
}

func formatOptPrice(v *float64, redNone bool) string {
	if v == nil {
		if redNone {
			return fmt.Sprintf(spanRed, "None")
		}
		return "None"
	}
	return formatNum(*v)
}

func formatTakeProfits(tps []float64) string {
	if len(tps) == 0 {
		return fmt.Sprintf(spanRed, "None")
	}
	parts := make([]string, len(tps))
	for i, tp := range tps {
		parts[i] = formatNum(tp)
	}
	return strings.Join(parts, " / ")
}

func (r *Renderer) formatRisk(risk *float64) string {
	if risk == nil {
		return ""
	}
	s := fmt.Sprintf("%.2f%%", *risk*100)
	if *risk > r.riskThreshold {
		return fmt.Sprintf(spanRed, s)
	}
	return fmt.Sprintf(spanGreen, s)
}

func formatSessions(sessions []string) string {
	if len(sessions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if tag, ok := sessionTags[s]; ok {
			parts = append(parts, tag)
		} else {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return "*" + t.Format(dateLayout) + "*"
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
