package layout

import (
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
)

const tenetPitch = 1.2 + GapTight

// tenetColumns stacks tenets in one column, or two once there are four
// or more.
func (c canvas) tenetColumns(items []extract.Tenet, top float64) ([]deck.Command, float64) {
	if len(items) == 0 {
		return nil, top
	}
	var cmds []deck.Command
	if len(items) < 4 {
		y := top
		for _, t := range items {
			cmds = append(cmds, c.tenet(ContentLeft, y, ContentWidth, t)...)
			y += tenetPitch
		}
		return cmds, y + GapNormal
	}
	const width, offset = 4.0, 4.4
	tops := [2]float64{top, top}
	for i, t := range items {
		col := i % 2
		cmds = append(cmds, c.tenet(ContentLeft+float64(col)*offset, tops[col], width, t)...)
		tops[col] += tenetPitch
	}
	return cmds, max(tops[0], tops[1]) + GapNormal
}

func renderPrinciples(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	return c.tenetColumns(extract.ReadPrinciples(b.Node()), top)
}

func renderPrinciple(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	cmds := c.tenet(ContentLeft, top, ContentWidth, extract.ReadPrinciple(b.Node()))
	if len(cmds) == 0 {
		return nil, top
	}
	return cmds, top + tenetPitch
}

func renderTenets(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	items := make([]extract.Tenet, 0, len(b.Nodes))
	for _, n := range b.Nodes {
		items = append(items, extract.ReadTenet(n))
	}
	return c.tenetColumns(items, top)
}

// renderVersus draws the first two sides as cards with "vs" between them.
func renderVersus(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	sides := extract.ReadVersus(b.Node())
	if len(sides) < 2 {
		return nil, top
	}
	left, right := sides[0], sides[1]
	leftColor := left.Color.Or(c.Palette.Warning())
	rightColor := right.Color
	if rightColor.IsZero() || rightColor == deck.Orange {
		rightColor = c.Palette.Success()
	}

	var cmds []deck.Command
	for i, side := range []extract.VersusSide{left, right} {
		color := leftColor
		x := ContentLeft
		if i == 1 {
			color, x = rightColor, 5.4
		}
		if cmd, ok := c.cardFrame(deck.Box{Left: x, Top: top, Width: 3.8, Height: 2.0}, card{
			Title:      side.Title,
			Body:       strings.Join(side.Items, "\n"),
			TitleSize:  18,
			BodySize:   12,
			TitleColor: color,
			Accent:     color,
			Border:     color,
		}); ok {
			cmds = append(cmds, cmd)
		}
	}
	vs := textFrame(deck.Box{Left: 4.85, Top: top + 0.8, Width: 0.5, Height: 0.4}, deck.AutoSizeNone,
		c.body(18, deck.Gray50).bold().aligned(deck.AlignCenter).text("vs"))
	cmds = append(cmds, vs)

	rows := max(len(left.Items), len(right.Items), 3)
	return cmds, top + max(2.0, 0.6+float64(rows)*0.3) + GapNormal
}

// renderBeforeAfter draws the before and after cards side by side.
func renderBeforeAfter(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	before, after := extract.ReadBeforeAfter(b.Node())
	var cmds []deck.Command
	sides := []struct {
		cmp   extract.Comparison
		title string
		left  float64
		color deck.Color
	}{
		{before, "Before", ContentLeft, c.Palette.Warning()},
		{after, "After", 5.2, c.Palette.Success()},
	}
	for _, s := range sides {
		if s.cmp == (extract.Comparison{}) {
			continue
		}
		title := s.cmp.Title
		if title == "" {
			title = s.title
		}
		if cmd, ok := c.cardFrame(deck.Box{Left: s.left, Top: top, Width: 4.0, Height: 2.0}, card{
			Title:      title,
			Body:       s.cmp.Body,
			TitleSize:  16,
			BodySize:   12,
			TitleColor: s.color,
			Accent:     s.color,
			Border:     s.color,
		}); ok {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil, top
	}
	return cmds, top + 2.0 + GapNormal
}

// markItems prefixes items with mark unless they already carry a check or
// cross glyph.
func markItems(items []string, mark string, glyphs ...string) string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it
		marked := false
		for _, g := range glyphs {
			if strings.HasPrefix(it, g) {
				marked = true
				break
			}
		}
		if !marked {
			out[i] = mark + "  " + it
		}
	}
	return strings.Join(out, "\n")
}

// renderGoodBad draws the bad pattern on the left and the good one on the
// right. Nodes are [good, bad].
func renderGoodBad(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	var good, bad []string
	if len(b.Nodes) > 0 {
		good = extract.ReadPatternItems(b.Nodes[0])
	}
	if len(b.Nodes) > 1 {
		bad = extract.ReadPatternItems(b.Nodes[1])
	}
	if len(good) == 0 && len(bad) == 0 {
		return nil, top
	}
	h := max(1.0, float64(max(len(bad), len(good), 2))*0.3+0.4)

	var cmds []deck.Command
	if len(bad) > 0 {
		danger := c.Palette.Danger()
		cmd, _ := c.cardFrame(deck.Box{Left: ContentLeft, Top: top, Width: 4.0, Height: h}, card{
			Title:      "✗  Don't",
			Body:       markItems(bad, "✗", "✗", "✘"),
			TitleSize:  14,
			BodySize:   12,
			TitleColor: danger,
			Accent:     danger,
			Border:     danger,
		})
		cmds = append(cmds, cmd)
	}
	if len(good) > 0 {
		success := c.Palette.Success()
		cmd, _ := c.cardFrame(deck.Box{Left: 5.2, Top: top, Width: 4.0, Height: h}, card{
			Title:      "✓  Do",
			Body:       markItems(good, "✓", "✓", "✔"),
			TitleSize:  14,
			BodySize:   12,
			TitleColor: success,
			Accent:     success,
			Border:     success,
		})
		cmds = append(cmds, cmd)
	}
	return cmds, top + h + GapNormal
}
