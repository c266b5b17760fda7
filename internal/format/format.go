// Package format renders tabular output. It owns the go-pretty
// dependency so the rest of the tree deals in plain strings: the CLI
// builds Terminal tables, the report engine builds Markdown tables, and
// both fill them the same way.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode selects the rendering target.
type Mode int

const (
	Terminal Mode = iota // box-drawn tables for interactive use
	Markdown             // pipe tables for generated reports
)

// Align sets the horizontal alignment of one column.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Column configures one table column by 1-based index.
type Column struct {
	Number   int
	Align    Align
	MaxWidth int // 0 = unlimited
}

// Table accumulates rows and renders once, in the Mode it was built
// with.
type Table struct {
	writer table.Writer
	mode   Mode
}

// NewTable returns an empty table for the given mode.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == Terminal {
		w.SetStyle(table.StyleLight)
	}
	return &Table{writer: w, mode: m}
}

// Header sets the column headers.
func (t *Table) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
}

// Row appends one data row. Values render via fmt.Sprint.
func (t *Table) Row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendRow(row)
}

// Footer appends a totals row.
func (t *Table) Footer(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendFooter(row)
}

// Columns applies per-column alignment and width limits.
func (t *Table) Columns(cols ...Column) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		cfgs[i] = table.ColumnConfig{
			Number:   c.Number,
			Align:    alignOf(c.Align),
			WidthMax: c.MaxWidth,
		}
	}
	t.writer.SetColumnConfigs(cfgs)
}

// String renders the table in the configured Mode.
func (t *Table) String() string {
	if t.mode == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}

func alignOf(a Align) text.Align {
	switch a {
	case AlignLeft:
		return text.AlignLeft
	case AlignRight:
		return text.AlignRight
	case AlignCenter:
		return text.AlignCenter
	default:
		return text.AlignDefault
	}
}

// Tone classifies a cell for terminal color. Markdown output never
// carries tones; reports stay plain text.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneWarn
	ToneBad
)

// Paint wraps s in the ANSI color for the tone. Neutral or unknown
// tones return s unchanged.
func Paint(tone Tone, s string) string {
	switch tone {
	case ToneGood:
		return text.Colors{text.FgGreen}.Sprint(s)
	case ToneWarn:
		return text.Colors{text.FgYellow}.Sprint(s)
	case ToneBad:
		return text.Colors{text.FgRed}.Sprint(s)
	default:
		return s
	}
}
