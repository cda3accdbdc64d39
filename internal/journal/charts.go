package journal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vitos/trade_journal/internal/domain"
)

// Chart names accepted in the journal configuration.
const (
	ChartPerformance     = "Performance"
	ChartStoppedOut      = "Stopped Out"
	ChartRiskManagement  = "Risk Management"
	ChartTradesBySession = "Trades By Session"
	ChartTradesByAsset   = "Trades By Asset"
)

// Slice is a single labelled value of a pie chart.
type Slice struct {
	Label string
	Value int
}

// chartColors maps slice labels to their fixed colors. Charts without an
// entry fall back to the rotating default palette.
var chartColors = map[string]map[string]string{
	ChartPerformance: {
		"Wins":   "#36A2EB",
		"Losses": "#FF6384",
	},
	ChartStoppedOut: {
		"Stopped Out": "#FF6384",
		"Other":       "#36A2EB",
	},
	ChartRiskManagement: {
		"Risk Managed": "#36A2EB",
		"Unmanaged":    "#FF6384",
	},
}

var defaultPalette = []string{
	"#36A2EB", "#FF6384", "#4BC0C0", "#FF9F40", "#9966FF",
	"#FFCD56", "#C9CBCF", "#89CFF0", "#F49AC2", "#77DD77",
}

// ChartData derives the slices of a named chart from the account stats.
// Returns false when the chart name is unknown.
func ChartData(name string, stats *domain.AccountStats) ([]Slice, bool) {
	switch name {
	case ChartPerformance:
		return []Slice{
			{Label: "Wins", Value: stats.Wins},
			{Label: "Losses", Value: stats.TotalTrades - stats.Wins},
		}, true
	case ChartStoppedOut:
		return []Slice{
			{Label: "Stopped Out", Value: stats.StoppedOut},
			{Label: "Other", Value: stats.TotalTrades - stats.StoppedOut},
		}, true
	case ChartRiskManagement:
		return []Slice{
			{Label: "Risk Managed", Value: stats.RiskManaged},
			{Label: "Unmanaged", Value: stats.TotalTrades - stats.RiskManaged},
		}, true
	case ChartTradesBySession:
		return mapSlices(stats.TradesBySession), true
	case ChartTradesByAsset:
		return mapSlices(stats.TradesByAsset), true
	default:
		return nil, false
	}
}

func mapSlices(counts map[string]int) []Slice {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	slices := make([]Slice, 0, len(labels))
	for _, label := range labels {
		slices = append(slices, Slice{Label: label, Value: counts[label]})
	}
	return slices
}

// RenderPieChart emits a mermaid pie block. Mermaid assigns its pie1..pieN
// theme colors to slices ordered by descending value, so the init block is
// built in that order to keep each label on its intended color.
func RenderPieChart(name string, slices []Slice) string {
	ordered := make([]Slice, len(slices))
	copy(ordered, slices)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Value > ordered[j].Value
	})

	colors := chartColors[name]
	vars := make([]string, 0, len(ordered))
	for i, s := range ordered {
		color, ok := colors[s.Label]
		if !ok {
			color = defaultPalette[i%len(defaultPalette)]
		}
		vars = append(vars, fmt.Sprintf("'pie%d': '%s'", i+1, color))
	}

	var b strings.Builder
	b.WriteString("```mermaid\n")
	fmt.Fprintf(&b, "%%%%{init: {'themeVariables': {%s}}}%%%%\n", strings.Join(vars, ", "))
	fmt.Fprintf(&b, "pie title %s\n", name)
	for _, s := range slices {
		fmt.Fprintf(&b, "    %q : %d\n", s.Label, s.Value)
	}
	b.WriteString("```")
	return b.String()
}
