package journal_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vitos/trade_journal/internal/domain"
	"github.com/vitos/trade_journal/internal/journal"
)

func TestFormatterTitle(t *testing.T) {
	tests := []struct {
		name string
		pnl  float64
		want string
	}{
		{"profit gets a plus", 40.5, "Daily Trade Journal 2024-03-01 (+40.50%)"},
		{"loss keeps its sign", -12.3, "Daily Trade Journal 2024-03-01 (-12.30%)"},
		{"flat", 0.0, "Daily Trade Journal 2024-03-01 (0.00%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := journal.NewFormatter(domain.TimeframeDaily, "2024-03-01", "Bybit", tt.pnl)
			got := f.Title("{timeframe} Trade Journal {date} {pnl}")
			if got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatterDocumentOrderAndSections(t *testing.T) {
	f := journal.NewFormatter(domain.TimeframeWeekly, "2024-03-01", "Bybit", 10.0)

	f.AddChart("Performance", "```mermaid\npie title Performance\n```")
	f.AddTable("Aggregated View", journal.Table{
		Title:   "Aggregated View",
		Columns: []string{journal.ColSymbol},
		Rows:    [][]string{{"**BTCUSDT**"}},
	})
	f.BuildProperties([]string{"wide-table"})
	f.BuildTags([]string{"trading"})

	doc := f.Document([]string{"Aggregated View", "Performance"})

	if !strings.HasPrefix(doc, "---\n") {
		t.Errorf("document does not start with the properties block")
	}
	for _, want := range []string{
		"Timeframe: Weekly",
		"Exchange: Bybit",
		"Profitable: true",
		"cssclasses:\n  - wide-table",
		"## Aggregated View",
		"## Performance",
		"> [!NOTE] Other Details",
		"#weekly #trading",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// display order puts the table before the chart
	if strings.Index(doc, "## Aggregated View") > strings.Index(doc, "## Performance") {
		t.Errorf("display order not honored")
	}
}

func TestFormatterFootnotes(t *testing.T) {
	f := journal.NewFormatter(domain.TimeframeDaily, "2024-03-01", "Bybit", 0.0)

	f.AddTable("Aggregated View", journal.Table{
		Title:        "Aggregated View",
		Columns:      []string{journal.ColSymbol, journal.ColDuration},
		Descriptions: true,
	})

	doc := f.Document(nil)

	if !strings.Contains(doc, "## Aggregated View _(Column Descriptions [^1])_") {
		t.Errorf("table heading missing the footnote reference")
	}
	if !strings.Contains(doc, "[^1]: **Aggregated View - Column Descriptions:**") {
		t.Errorf("footnote body missing")
	}
	if !strings.Contains(doc, "**Duration** - ") {
		t.Errorf("column description for Duration missing")
	}
}

func TestRenderPieChart(t *testing.T) {
	chart := journal.RenderPieChart(journal.ChartPerformance, []journal.Slice{
		{Label: "Wins", Value: 2},
		{Label: "Losses", Value: 5},
	})

	if !strings.HasPrefix(chart, "```mermaid\n") || !strings.HasSuffix(chart, "```") {
		t.Fatalf("chart not fenced: %q", chart)
	}
	if !strings.Contains(chart, "pie title Performance") {
		t.Errorf("missing pie title: %q", chart)
	}
	// Losses lead on value, so pie1 must carry the loss color
	if !strings.Contains(chart, "'pie1': '#FF6384'") || !strings.Contains(chart, "'pie2': '#36A2EB'") {
		t.Errorf("theme colors not ordered by descending value: %q", chart)
	}
	if !strings.Contains(chart, `"Wins" : 2`) || !strings.Contains(chart, `"Losses" : 5`) {
		t.Errorf("slices missing: %q", chart)
	}
}

func TestChartData(t *testing.T) {
	stats := &domain.AccountStats{
		Wins:        3,
		TotalTrades: 5,
		StoppedOut:  1,
		RiskManaged: 4,
		TradesByAsset: map[string]int{
			"BTCUSDT": 3, "ETHUSDT": 2,
		},
		TradesBySession: map[string]int{
			domain.SessionLondon: 5,
		},
	}

	slices, ok := journal.ChartData(journal.ChartPerformance, stats)
	if !ok || len(slices) != 2 || slices[0].Value != 3 || slices[1].Value != 2 {
		t.Errorf("Performance slices = %v (%v)", slices, ok)
	}

	slices, ok = journal.ChartData(journal.ChartTradesByAsset, stats)
	if !ok || len(slices) != 2 || slices[0].Label != "BTCUSDT" {
		t.Errorf("Trades By Asset slices = %v (%v)", slices, ok)
	}

	if _, ok := journal.ChartData("No Such Chart", stats); ok {
		t.Errorf("unknown chart reported ok")
	}
}

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := journal.NewFileWriter(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}

	path, err := w.Write(domain.TimeframeDaily, "Daily Trade Journal 2024-03-01 (+1.00%)", "# report\n")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := filepath.Join(dir, "Daily", "Daily Trade Journal 2024-03-01 (+1.00%).md")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "# report\n" {
		t.Errorf("content = %q", content)
	}
}

func TestFileWriterRejectsEmptyInput(t *testing.T) {
	w, err := journal.NewFileWriter(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}

	if _, err := w.Write(domain.TimeframeDaily, "", "content"); err == nil {
		t.Errorf("empty title accepted")
	}
	if _, err := w.Write(domain.TimeframeDaily, "title", ""); err == nil {
		t.Errorf("empty content accepted")
	}
	if _, err := journal.NewFileWriter("", zap.NewNop()); err == nil {
		t.Errorf("empty base dir accepted")
	}
}
