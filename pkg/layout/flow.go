package layout

import (
	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
)

const (
	flowGap     = 0.45
	flowHeight  = 1.0
	flowRowStep = 1.3
	flowPerRow  = 4
)

// flowBox is one box of a flow row.
type flowBox struct {
	Title string
	Body  string
}

// flowRows lays boxes out left to right, at most perRow per row, with
// arrows between neighbors on the same row. It returns the number of rows.
func (c canvas) flowRows(boxes []flowBox, top float64, perRow int) ([]deck.Command, int) {
	cols := min(len(boxes), perRow)
	width := (ContentWidth - float64(cols-1)*flowGap) / float64(cols)
	var cmds []deck.Command
	for i, b := range boxes {
		r, k := i/cols, i%cols
		left := ContentLeft + float64(k)*(width+flowGap)
		rowTop := top + float64(r)*flowRowStep
		cmd, ok := c.cardFrame(deck.Box{Left: left, Top: rowTop, Width: width, Height: flowHeight}, card{
			Title:      b.Title,
			Body:       b.Body,
			TitleSize:  13,
			BodySize:   10,
			TitleColor: deck.White,
			Accent:     c.Palette.Accent,
			Border:     c.Palette.Accent,
		})
		if ok {
			cmds = append(cmds, cmd)
		}
		if k < cols-1 && i < len(boxes)-1 {
			cmds = append(cmds, arrow(left+width, rowTop, flowHeight, c.Palette.Accent))
		}
	}
	return cmds, (len(boxes) + cols - 1) / cols
}

// renderFlow draws numbered steps joined by arrows, wrapping after four.
func renderFlow(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	steps := extract.ReadFlow(b.Node())
	if len(steps) == 0 {
		return nil, top
	}
	boxes := make([]flowBox, len(steps))
	for i, s := range steps {
		boxes[i] = flowBox{Title: s.Heading(), Body: s.Desc}
	}
	cmds, rows := c.flowRows(boxes, top, flowPerRow)
	return cmds, top + float64(rows)*flowRowStep + GapNormal
}

// renderDiagram draws every diagram box on a single row.
func renderDiagram(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	items := extract.ReadDiagram(b.Node())
	if len(items) == 0 {
		return nil, top
	}
	boxes := make([]flowBox, len(items))
	for i, d := range items {
		boxes[i] = flowBox{Title: d.Title, Body: d.Body}
	}
	cmds, _ := c.flowRows(boxes, top, len(boxes))
	return cmds, top + flowHeight + 0.3 + GapNormal
}
