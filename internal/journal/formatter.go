package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/vitos/trade_journal/internal/domain"
)

// Formatter assembles the final markdown document out of rendered tables and
// charts, honoring the configured display order.
type Formatter struct {
	timeframe domain.Timeframe
	date      string
	exchange  string
	pnl       float64
	now       func() time.Time

	sections   map[string]string
	order      []string
	properties string
	tags       string
	footnotes  []string
}

func NewFormatter(timeframe domain.Timeframe, date, exchange string, pnl float64) *Formatter {
	return &Formatter{
		timeframe: timeframe,
		date:      date,
		exchange:  exchange,
		pnl:       pnl,
		now:       time.Now,
		sections:  make(map[string]string),
	}
}

// Title expands the configured title template. Supported placeholders are
// {timeframe}, {date} and {pnl}.
func (f *Formatter) Title(template string) string {
	r := strings.NewReplacer(
		"{timeframe}", string(f.timeframe),
		"{date}", f.date,
		"{pnl}", f.pnlLabel(),
	)
	return r.Replace(template)
}

func (f *Formatter) pnlLabel() string {
	s := fmt.Sprintf("%.2f", f.pnl)
	if f.pnl > 0 {
		s = "+" + s
	}
	return "(" + s + "%)"
}

// AddTable registers a rendered table under its configured name.
func (f *Formatter) AddTable(name string, table Table) {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s", table.Title)
	if table.Descriptions {
		ref := len(f.footnotes) + 1
		fmt.Fprintf(&b, " _(Column Descriptions [^%d])_", ref)
		f.footnotes = append(f.footnotes, buildFootnote(ref, table))
	}
	b.WriteString("\n\n")
	b.WriteString(renderTable(table))
	f.sections[name] = b.String()
	f.order = append(f.order, name)
}

// AddChart registers a rendered chart under its configured name.
func (f *Formatter) AddChart(name, content string) {
	f.sections[name] = fmt.Sprintf("## %s\n\n%s", name, content)
	f.order = append(f.order, name)
}

// BuildProperties fills the document frontmatter.
func (f *Formatter) BuildProperties(cssClasses []string) {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "Timeframe: %s\n", f.timeframe)
	fmt.Fprintf(&b, "Exchange: %s\n", f.exchange)
	fmt.Fprintf(&b, "Profitable: %t\n", f.pnl > 0)
	created := f.now().Format("2006-01-02")
	fmt.Fprintf(&b, "DateCreated: %s\n", created)
	fmt.Fprintf(&b, "DateUpdated: %s\n", created)
	if len(cssClasses) > 0 {
		b.WriteString("cssclasses:\n")
		for _, c := range cssClasses {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
	}
	b.WriteString("---")
	f.properties = b.String()
}

// BuildTags renders the document tag line.
func (f *Formatter) BuildTags(tags []string) {
	parts := make([]string, 0, len(tags)+1)
	parts = append(parts, "#"+strings.ToLower(string(f.timeframe)))
	for _, t := range tags {
		parts = append(parts, "#"+strings.TrimPrefix(t, "#"))
	}
	f.tags = strings.Join(parts, " ")
}

// Document assembles the report. Sections follow displayOrder; names missing
// from it keep their registration order at the end.
func (f *Formatter) Document(displayOrder []string) string {
	ordered := make([]string, 0, len(f.order))
	seen := make(map[string]bool)
	for _, name := range displayOrder {
		if _, ok := f.sections[name]; ok && !seen[name] {
			ordered = append(ordered, name)
			seen[name] = true
		}
	}
	for _, name := range f.order {
		if !seen[name] {
			ordered = append(ordered, name)
			seen[name] = true
		}
	}

	var parts []string
	if f.properties != "" {
		parts = append(parts, f.properties)
	}
	for _, name := range ordered {
		parts = append(parts, f.sections[name])
	}
	parts = append(parts, "> [!NOTE] Other Details")
	if f.tags != "" {
		parts = append(parts, f.tags)
	}
	if len(f.footnotes) > 0 {
		parts = append(parts, strings.Join(f.footnotes, "\n\n"))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// renderTable emits a padded markdown table so the raw document stays
// readable.
func renderTable(t Table) string {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(&b, " %-*s |", w, cell)
		}
		b.WriteString("\n")
	}

	writeRow(t.Columns)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(" " + strings.Repeat("-", w) + " |")
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildFootnote(ref int, t Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[^%d]: **%s - Column Descriptions:**\n", ref, t.Title)
	for _, col := range t.Columns {
		desc, ok := columnDescriptions[col]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "    - **%s** - %s;\n", col, desc)
	}
	return strings.TrimRight(b.String(), "\n")
}
