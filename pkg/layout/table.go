package layout

import (
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
)

// tableSpec is the input to the shared table builder.
type tableSpec struct {
	Rows      [][]string
	Header    bool
	FontSize  float64
	ColWidths []float64 // used only when it has one width per column
}

// statusColor maps check and cross glyphs in a cell to a semantic color.
func (c canvas) statusColor(cell string) deck.Color {
	switch strings.TrimSpace(cell) {
	case "✓", "✔", "Yes":
		return c.Palette.Success()
	case "✗", "✘", "✕", "No":
		return c.Palette.Danger()
	case "~", "Partial":
		return c.Palette.Warning()
	}
	return ""
}

// table builds a striped native table. Ragged rows are padded with empty
// cells. It returns nil and top for an empty table.
func (c canvas) table(top float64, t tableSpec) ([]deck.Command, float64) {
	if len(t.Rows) == 0 {
		return nil, top
	}
	cols := 0
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return nil, top
	}

	widths := t.ColWidths
	if len(widths) != cols {
		widths = make([]float64, cols)
		for i := range widths {
			widths[i] = ContentWidth / float64(cols)
		}
	}

	out := deck.Table{ColWidths: widths}
	for i, row := range t.Rows {
		cells := make([]deck.Cell, cols)
		header := t.Header && i == 0
		for j := range cells {
			var text string
			if j < len(row) {
				text = row[j]
			}
			f := c.body(t.FontSize, deck.Gray70)
			fill := deck.StripeFill
			if i%2 == 1 {
				fill = deck.DarkGray
			}
			switch {
			case header:
				f = c.body(t.FontSize, c.Palette.Accent).bold()
				fill = deck.HeaderFill
			case j == 0:
				f = c.body(t.FontSize, deck.White).bold()
			}
			if col := c.statusColor(text); !col.IsZero() {
				f.Color = col
			}
			cells[j] = deck.Cell{
				Paragraphs:  []deck.Paragraph{f.text(text)},
				Fill:        fill,
				Border:      deck.BorderGray,
				BorderWidth: 0.5,
				Insets:      deck.CellInsets,
				Anchor:      deck.AnchorMiddle,
			}
		}
		out.Rows = append(out.Rows, cells)
	}

	n := float64(len(t.Rows))
	box := deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: 0.35 * n}
	return []deck.Command{deck.NewTable(box, out)}, top + n*0.4 + 0.2 + GapNormal
}

func renderHTMLTable(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	t := extract.ReadTable(b.Node())
	return c.table(top, tableSpec{Rows: t.Rows, Header: t.Header, FontSize: 11})
}

// renderComparisonTable draws a wrapped <table> at 11pt, or header cells
// followed by left/right pairs at 12pt.
func renderComparisonTable(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	t, native := extract.ReadComparisonTable(b.Node())
	size := 12.0
	if native {
		size = 11
	}
	return c.table(top, tableSpec{Rows: t.Rows, Header: t.Header, FontSize: size})
}

var tierColumns = []float64{1.8, 4.0, 2.6}

// renderTierRows draws every tier-row of the slide as one table.
func renderTierRows(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	var rows [][]string
	for _, n := range b.Nodes {
		row := extract.ReadTierRow(n)
		if strings.Join(row, "") == "" {
			continue
		}
		rows = append(rows, row)
	}
	return c.table(top, tableSpec{Rows: rows, FontSize: 12, ColWidths: tierColumns})
}

// renderSummaryRows draws summary rows as a table whose first row is a
// header.
func renderSummaryRows(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	var rows [][]string
	for _, n := range b.Nodes {
		if row := extract.ReadSummaryRow(n); row != nil {
			rows = append(rows, row)
		}
	}
	return c.table(top, tableSpec{Rows: rows, Header: true, FontSize: 12})
}
