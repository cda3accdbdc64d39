package journal_test

import (
	"strings"
	"testing"
	"time"

	"github.com/vitos/trade_journal/internal/domain"
	"github.com/vitos/trade_journal/internal/journal"
)

func fptr(v float64) *float64 { return &v }

func cellOf(t *testing.T, tbl journal.Table, col string) string {
	t.Helper()
	for i, name := range tbl.Columns {
		if name == col {
			return tbl.Rows[0][i]
		}
	}
	t.Fatalf("column %q not in table", col)
	return ""
}

func TestAggregatedTableCells(t *testing.T) {
	r := journal.NewRenderer(0.01)
	opened := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	trade := domain.Trade{
		Symbol:            "BTCUSDT",
		Side:              domain.SideShort,
		Closed:            true,
		StoppedOut:        true,
		RiskManaged:       false,
		Result:            domain.ResultLoss,
		Quantity:          1.5,
		Sessions:          []string{domain.SessionLondon, domain.SessionNewYork},
		EntryPrice:        100.0,
		EntryDate:         opened,
		ExitPrice:         fptr(95.5),
		ClosedDate:        opened.Add(2*time.Hour + 30*time.Minute),
		Duration:          "2 hours and 30 minutes",
		PresetStopLoss:    fptr(95.0),
		TriggeredStopLoss: fptr(95.5),
		TakeProfitsTaken:  nil,
		Risk:              fptr(0.075),
		GrossProfit:       -6.75,
		RealizedProfit:    -6.9,
	}

	tbl := r.AggregatedTable("Aggregated View", []domain.Trade{trade}, nil, true)

	if len(tbl.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(tbl.Rows))
	}

	tests := []struct {
		col  string
		want string
	}{
		{journal.ColSymbol, "**BTCUSDT**"},
		{journal.ColSide, `<span class="red-text">**Short**</span>`},
		{journal.ColIsClosed, `<input type="checkbox" checked>`},
		{journal.ColRiskManaged, `<input type="checkbox">`},
		{journal.ColTradeStatus, `<span class="tag-loss">Loss</span>`},
		{journal.ColQuantity, "1.5"},
		{journal.ColEntryDate, "*2024-03-01 10:00:00*"},
		{journal.ColExitPrice, "95.5"},
		{journal.ColDuration, "*2 hours and 30 minutes*"},
		{journal.ColSLSet, "95"},
		{journal.ColTakeProfits, `<span class="red-text">None</span>`},
		{journal.ColRiskTaken, `<span class="red-text">7.50%</span>`},
		{journal.ColGrossProfit, `<span class="red-text">-6.75</span>`},
		{journal.ColRealizedProfit, `<span class="red-text">-6.90</span>`},
	}
	for _, tt := range tests {
		if got := cellOf(t, tbl, tt.col); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.col, got, tt.want)
		}
	}

	session := cellOf(t, tbl, journal.ColSession)
	if !strings.Contains(session, "LDN") || !strings.Contains(session, "NY") {
		t.Errorf("Session = %q, want LDN and NY tags", session)
	}
}

func TestAggregatedTableManagedWinner(t *testing.T) {
	r := journal.NewRenderer(0.01)

	trade := domain.Trade{
		Symbol:           "ETHUSDT",
		Side:             domain.SideLong,
		Result:           domain.ResultWin,
		RiskManaged:      true,
		Risk:             fptr(0.005),
		TakeProfitsTaken: []float64{55.0, 57.5},
		GrossProfit:      12.0,
	}

	tbl := r.AggregatedTable("Aggregated View", []domain.Trade{trade}, nil, false)

	if got := cellOf(t, tbl, journal.ColSide); got != `<span class="green-text">**Long**</span>` {
		t.Errorf("Side = %q", got)
	}
	if got := cellOf(t, tbl, journal.ColTradeStatus); got != `<span class="tag-win">Win</span>` {
		t.Errorf("Trade Status = %q", got)
	}
	if got := cellOf(t, tbl, journal.ColTakeProfits); got != "55 / 57.5" {
		t.Errorf("Take Profits = %q", got)
	}
	if got := cellOf(t, tbl, journal.ColRiskTaken); got != `<span class="green-text">0.50%</span>` {
		t.Errorf("Risk Taken = %q", got)
	}
	if got := cellOf(t, tbl, journal.ColGrossProfit); got != `<span class="green-text">+12.00</span>` {
		t.Errorf("Gross Profit = %q", got)
	}
	// no preset and no trigger: the cell stays readable, not empty
	if got := cellOf(t, tbl, journal.ColSLSet); got != `<span class="red-text">None</span>` {
		t.Errorf("SL Set = %q", got)
	}
	if got := cellOf(t, tbl, journal.ColRiskManaged); got != `<input type="checkbox" checked>` {
		t.Errorf("Risk Managed = %q", got)
	}
}

func TestDetailedTableCells(t *testing.T) {
	r := journal.NewRenderer(0.01)
	executed := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

	row := domain.ExecutionRow{
		Symbol:         "BTCUSDT",
		OrderType:      "Market",
		Side:           domain.SideLong,
		Action:         domain.ActionTakeProfit,
		ExecPrice:      101.25,
		ExecDate:       executed,
		Quantity:       0.5,
		GrossProfit:    3.0,
		RealizedProfit: 2.8,
		AccountBalance: fptr(1002.8),
		ROIPercent:     0.28,
	}

	tbl := r.DetailedTable("Detailed View", []domain.ExecutionRow{row}, nil, false)

	tests := []struct {
		col  string
		want string
	}{
		{journal.ColSymbol, "**BTCUSDT**"},
		{journal.ColType, "Market"},
		{journal.ColAction, `<span class="green-text">Take Profit</span>`},
		{journal.ColEntryPrice, "101.25"},
		{journal.ColEntryDate, "*2024-03-01 15:00:00*"},
		{journal.ColGrossProfit, `<span class="green-text">+3.00</span>`},
		{journal.ColWalletBalance, "1002.80"},
		{journal.ColROIPercent, `<span class="green-text">+0.28%</span>`},
	}
	for _, tt := range tests {
		if got := cellOf(t, tbl, tt.col); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestTableForType(t *testing.T) {
	r := journal.NewRenderer(0.01)
	rows := []domain.ExecutionRow{{
		Symbol:         "BTCUSDT",
		Side:           domain.SideLong,
		Action:         domain.ActionNewOrder,
		AccountBalance: fptr(1000.0),
	}}
	trades := []domain.Trade{{Symbol: "ETHUSDT", Quantity: 2.0}}

	// a custom table carries its own columns but reads the execution rows
	custom := r.TableForType("custom", "Actions",
		rows, trades, []string{journal.ColAction, journal.ColWalletBalance}, false)
	if len(custom.Rows) != 1 {
		t.Fatalf("custom rows = %d, want the single execution", len(custom.Rows))
	}
	if custom.Rows[0][0] != "New Order" || custom.Rows[0][1] != "1000.00" {
		t.Errorf("custom cells = %v, want the detailed-view rendering", custom.Rows[0])
	}

	detailed := r.TableForType("detailed", "Detailed View", rows, trades, nil, false)
	if got := cellOf(t, detailed, journal.ColSymbol); got != "**BTCUSDT**" {
		t.Errorf("detailed symbol = %q", got)
	}

	aggregated := r.TableForType("aggregated", "Aggregated View", rows, trades, nil, false)
	if got := cellOf(t, aggregated, journal.ColSymbol); got != "**ETHUSDT**" {
		t.Errorf("aggregated symbol = %q", got)
	}
}

func TestCustomColumnSelection(t *testing.T) {
	r := journal.NewRenderer(0.01)
	columns := []string{journal.ColSymbol, journal.ColQuantity}

	tbl := r.AggregatedTable("Slim", []domain.Trade{{Symbol: "BTCUSDT", Quantity: 2.0}}, columns, false)

	if len(tbl.Columns) != 2 {
		t.Fatalf("columns = %v, want the requested two", tbl.Columns)
	}
	if tbl.Rows[0][0] != "**BTCUSDT**" || tbl.Rows[0][1] != "2" {
		t.Errorf("row = %v", tbl.Rows[0])
	}
}
