package layout

import (
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
	"github.com/ramparte/amplifier-stories/pkg/markup"
)

const (
	gridCellHeight = 1.5
	gridRowPitch   = 1.8
	gridRowGap     = 0.15
)

var gridInsets = deck.Insets{Left: 0.1, Right: 0.1, Top: 0.08, Bottom: 0.08}

// renderCardGrid lays a grid's cards out as table cells so columns share
// one frame. Code blocks inside the grid are drawn below it.
func renderCardGrid(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	n := b.Node()
	items := extract.ReadGrid(n)
	var cells, code []extract.GridItem
	for _, it := range items {
		if it.Kind == extract.GridCode {
			code = append(code, it)
			continue
		}
		cells = append(cells, it)
	}

	var cmds []deck.Command
	next := top
	if len(cells) > 0 {
		cols := min(extract.GridColumns(n.Classes(), len(items)), len(cells))
		rows := (len(cells) + cols - 1) / cols

		widths := make([]float64, cols)
		for i := range widths {
			widths[i] = ContentWidth / float64(cols)
		}
		t := deck.Table{ColWidths: widths}
		for r := 0; r < rows; r++ {
			row := make([]deck.Cell, cols)
			for k := range row {
				i := r*cols + k
				if i >= len(cells) {
					row[k] = deck.Cell{Fill: deck.DarkGray, Insets: gridInsets, Anchor: deck.AnchorTop}
					continue
				}
				row[k] = c.gridCell(cells[i], cols >= 3)
			}
			t.Rows = append(t.Rows, row)
		}
		box := deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: gridCellHeight * float64(rows)}
		cmds = append(cmds, deck.NewTable(box, t))
		next = top + float64(rows)*gridRowPitch + float64(rows-1)*gridRowGap + GapNormal
	}

	for _, it := range code {
		more, after := c.codeBlock(it.Node, next)
		cmds = append(cmds, more...)
		next = max(next, after)
	}
	return cmds, next
}

// gridCell renders one grid item. Dense grids use smaller type.
func (c canvas) gridCell(it extract.GridItem, dense bool) deck.Cell {
	cell := deck.Cell{
		Fill:        deck.DarkGray,
		Border:      deck.BorderGray,
		BorderWidth: 0.5,
		Insets:      gridInsets,
		Anchor:      deck.AnchorTop,
	}
	if it.Kind != extract.GridCard {
		cell.Paragraphs = []deck.Paragraph{c.body(11, deck.Gray70).text(extract.Text(it.Node))}
		return cell
	}

	titleSize, bodySize := 16.0, 12.0
	if dense {
		titleSize, bodySize = 14, 11
	}
	k := extract.ReadCard(cardNode(it.Node), c.Palette)
	if k.Title != "" {
		color := k.TitleColor.Or(c.Palette.Accent)
		cell.Paragraphs = append(cell.Paragraphs, c.body(titleSize, color).bold().spaced(0, 4).text(k.Title))
	}
	if k.Module && k.Body != "" {
		contract, rest, _ := strings.Cut(k.Body, "\n")
		cell.Paragraphs = append(cell.Paragraphs, c.code(bodySize-1, deck.CodeGreen).spaced(2, 0).text(contract))
		for _, l := range extract.Lines(rest) {
			cell.Paragraphs = append(cell.Paragraphs, c.body(bodySize, deck.Gray70).spaced(2, 0).text(l))
		}
		return cell
	}
	cell.Paragraphs = append(cell.Paragraphs, c.bodyParagraphs(k.Body, k.BodyRuns, bodySize, deck.Gray70)...)
	return cell
}

// cardNode returns n when it is a card, else the first card inside it.
func cardNode(n *markup.Node) *markup.Node {
	if n.HasAnyClass(extract.CardClasses...) {
		return n
	}
	if inner := n.FindClass(extract.CardClasses...); inner != nil {
		return inner
	}
	return n
}

// renderCard draws a standalone card across the content width.
func renderCard(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	k := extract.ReadCard(b.Node(), c.Palette)
	cmd, ok := c.cardFrame(deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: 1.2}, card{
		Title:      k.Title,
		Body:       k.Body,
		Runs:       k.BodyRuns,
		TitleSize:  16,
		BodySize:   12,
		TitleColor: k.TitleColor.Or(c.Palette.Accent),
		Accent:     c.Palette.Accent,
		Border:     deck.BorderGray,
	})
	if !ok {
		return nil, top
	}
	return []deck.Command{cmd}, top + 1.5 + GapNormal
}
