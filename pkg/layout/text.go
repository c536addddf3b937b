package layout

import (
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
	"github.com/ramparte/amplifier-stories/pkg/style"
)

// renderBodyText draws a centered paragraph, keeping inline emphasis.
func renderBodyText(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	n := b.Node()
	text := extract.Text(n)
	if text == "" {
		return nil, top
	}
	h := max(0.35, float64(extract.LineCount(text))*0.25+0.1)
	f := c.body(16, deck.Gray70).aligned(deck.AlignCenter)
	p := f.text(text)
	if runs := extract.RichText(n, c.Palette); extract.HasFormatting(runs) {
		p = f.rich(runs)
	}
	cmd := textFrame(deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: h}, deck.AutoSizeFitShape, p)
	return []deck.Command{cmd}, top + h + GapNormal
}

// footnote draws one line of muted text no higher than floor.
func (c canvas) footnote(b classify.Block, top, floor, height, size float64) ([]deck.Command, float64) {
	text := extract.Text(b.Node())
	if text == "" {
		return nil, top
	}
	t := max(top, floor)
	cmd := textFrame(deck.Box{Left: ContentLeft, Top: t, Width: ContentWidth, Height: height}, deck.AutoSizeNone,
		c.body(size, deck.Gray50).aligned(c.align()).text(text))
	return []deck.Command{cmd}, t
}

// renderTitleMeta pins author and date lines near the bottom edge.
func renderTitleMeta(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	cmds, t := c.footnote(b, top, 4.5, 0.3, 12)
	if cmds == nil {
		return nil, top
	}
	return cmds, t + 0.35
}

func renderSmallText(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	cmds, t := c.footnote(b, top, 4.8, 0.3, 10)
	if cmds == nil {
		return nil, top
	}
	return cmds, t + 0.3
}

const highlightHeight = 0.7

// renderHighlight draws a callout box. It is pulled up when it would cross
// the bottom edge, so the returned position may be above top.
func renderHighlight(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	n := b.Node()
	h := extract.ReadHighlight(n, c.Palette)
	if h.Title == "" && h.Body == "" {
		return nil, top
	}
	border := style.ClassColor(n.Classes())
	if border.IsZero() {
		border = c.Palette.InlineColor(n.Style())
	}
	border = border.Or(c.Palette.Accent)

	var paras []deck.Paragraph
	if h.Title != "" {
		paras = append(paras, c.body(14, border).bold().spaced(0, 4).text(h.Title))
	}
	body := c.body(12, deck.Gray70).spaced(2, 0)
	switch {
	case len(h.Runs) > 0:
		paras = append(paras, body.rich(h.Runs))
	case h.Body != "":
		paras = append(paras, body.text(h.Body))
	}

	t := min(top, deck.Height-0.85)
	cmd := deck.NewShape(deck.Box{Left: ContentLeft, Top: t, Width: ContentWidth, Height: highlightHeight},
		deck.ShapeStyle{Geometry: deck.GeometryRounded, Fill: deck.DarkGray, Border: border, BorderWidth: 1},
		&deck.TextBody{
			Paragraphs: paras,
			AutoSize:   deck.AutoSizeFitShape,
			Anchor:     deck.AnchorMiddle,
			Insets:     deck.Insets{Left: 0.15, Right: 0.15, Top: 0.1, Bottom: 0.1},
			WordWrap:   true,
		})
	return []deck.Command{cmd}, t + 0.8 + GapNormal
}

// renderQuote draws a centered italic quote with its attribution.
func renderQuote(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	q := extract.ReadQuote(b.Node())
	if q.Text == "" {
		return nil, top
	}
	text := q.Text
	if !strings.HasPrefix(text, `"`) {
		text = `"` + text + `"`
	}
	paras := []deck.Paragraph{
		c.body(24, deck.White).italic().aligned(deck.AlignCenter).spaced(0, 6).text(text),
	}
	if a := q.Attribution; a != "" {
		if !strings.HasPrefix(a, "—") {
			a = "— " + a
		}
		paras = append(paras, c.body(14, deck.Gray50).aligned(deck.AlignCenter).spaced(4, 0).text(a))
	}
	cmd := textFrame(deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: 1.0}, deck.AutoSizeFitShape, paras...)
	return []deck.Command{cmd}, top + 1.0 + GapNormal
}

// renderFallback draws the text of an unrecognized element.
func renderFallback(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	text := extract.Text(b.Node())
	if text == "" {
		return nil, top
	}
	cmd := textFrame(deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: 0.4}, deck.AutoSizeFitShape,
		c.body(14, deck.Gray50).text(text))
	return []deck.Command{cmd}, top + 0.5 + GapNormal
}
