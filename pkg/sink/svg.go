package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

const (
	// DefaultDPI is the preview resolution in pixels per inch.
	DefaultDPI = 96.0
	slideGap   = 0.25 // inches between slides on a contact sheet
	lineHeight = 1.2
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	dpi    float64
	slides []int
}

// WithDPI sets the preview resolution.
func WithDPI(dpi float64) SVGOption { return func(r *svgRenderer) { r.dpi = dpi } }

// WithSlides restricts output to the given 1-based slide numbers.
func WithSlides(n ...int) SVGOption { return func(r *svgRenderer) { r.slides = n } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&r)
	}
	if r.dpi <= 0 {
		r.dpi = DefaultDPI
	}
	return r
}

// pick returns the slides selected by the renderer's options.
func (r svgRenderer) pick(d *deck.Deck) []deck.Slide {
	if len(r.slides) == 0 {
		return d.Slides
	}
	var out []deck.Slide
	for _, n := range r.slides {
		if n >= 1 && n <= len(d.Slides) {
			out = append(out, d.Slides[n-1])
		}
	}
	return out
}

// RenderSVG draws the deck as a contact sheet: slides stacked top to
// bottom with a small gap. Text is not reflowed; each paragraph becomes one
// clipped line.
func RenderSVG(d *deck.Deck, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	slides := r.pick(d)
	px := func(in float64) float64 { return in * r.dpi }

	width := px(deck.Width)
	height := px(float64(len(slides))*(deck.Height+slideGap) - slideGap)
	if len(slides) == 0 {
		height = px(deck.Height)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	for i, s := range slides {
		y := px(float64(i) * (deck.Height + slideGap))
		fmt.Fprintf(&buf, `  <g id="slide-%d" transform="translate(0 %.1f)">`+"\n", s.Index, y)
		fmt.Fprintf(&buf, `    <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, px(deck.Height), s.Background.Or(deck.Black).CSS())
		for j, c := range s.Commands {
			renderCommand(&buf, r, fmt.Sprintf("s%d-c%d", s.Index, j), c)
		}
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCommand(buf *bytes.Buffer, r svgRenderer, id string, c deck.Command) {
	px := func(in float64) float64 { return in * r.dpi }
	b := c.Box
	switch {
	case c.Table != nil:
		renderTable(buf, r, id, c)
		return
	case c.Shape != nil:
		renderShapeSVG(buf, px(b.Left), px(b.Top), px(b.Width), px(b.Height), *c.Shape)
	}
	if c.Text != nil {
		renderText(buf, r, id, b, *c.Text)
	}
}

func renderShapeSVG(buf *bytes.Buffer, x, y, w, h float64, s deck.ShapeStyle) {
	stroke := "none"
	if !s.Border.IsZero() {
		stroke = s.Border.CSS()
	}
	switch s.Geometry {
	case deck.GeometryRightArrow:
		mid := y + h/2
		head := min(w*0.4, h)
		fmt.Fprintf(buf, `    <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>`+"\n",
			x, y+h*0.25, x+w-head, y+h*0.25, x+w-head, y, x+w, mid, x+w-head, y+h, x+w-head, y+h*0.75, x, y+h*0.75,
			s.Fill.CSS())
	default:
		radius := 0.0
		if s.Geometry == deck.GeometryRounded {
			radius = min(w, h) * deck.RoundedCorner * 2
		}
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x, y, w, h, radius, s.Fill.CSS(), stroke, s.BorderWidth)
	}
}

// renderText writes each paragraph as a line clipped to the box. Runs keep
// their color and weight as tspans.
func renderText(buf *bytes.Buffer, r svgRenderer, id string, b deck.Box, t deck.TextBody) {
	px := func(in float64) float64 { return in * r.dpi }
	ptPx := r.dpi / 72

	fmt.Fprintf(buf, `    <clipPath id="clip-%s"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/></clipPath>`+"\n",
		id, px(b.Left), px(b.Top), px(b.Width), px(b.Height))

	var total float64
	for _, p := range t.Paragraphs {
		total += (p.SpaceBefore + paragraphSize(p)*lineHeight*float64(strings.Count(p.Text(), "\n")+1) + p.SpaceAfter) * ptPx
	}
	y := px(b.Top + t.Insets.Top)
	if t.Anchor == deck.AnchorMiddle {
		y = px(b.Top) + max(0, (px(b.Height)-total)/2)
	}

	fmt.Fprintf(buf, `    <g clip-path="url(#clip-%s)">`+"\n", id)
	for _, p := range t.Paragraphs {
		size := paragraphSize(p) * ptPx
		y += p.SpaceBefore * ptPx
		for _, line := range paragraphLines(p) {
			y += size
			x, anchor := px(b.Left+t.Insets.Left), "start"
			if p.Align == deck.AlignCenter {
				x, anchor = px(b.Left+b.Width/2), "middle"
			}
			fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" text-anchor="%s">`, x, y, anchor)
			for _, run := range line {
				weight, style := "normal", "normal"
				if run.Bold {
					weight = "bold"
				}
				if run.Italic {
					style = "italic"
				}
				fmt.Fprintf(buf, `<tspan font-family="%s" font-size="%.1f" font-weight="%s" font-style="%s" fill="%s">`,
					escape(run.Font), run.Size*ptPx, weight, style, run.Color.Or(deck.White).CSS())
				xml.EscapeText(buf, []byte(run.Text))
				buf.WriteString("</tspan>")
			}
			buf.WriteString("</text>\n")
			y += size * (lineHeight - 1)
		}
		y += p.SpaceAfter * ptPx
	}
	buf.WriteString("    </g>\n")
}

func renderTable(buf *bytes.Buffer, r svgRenderer, id string, c deck.Command) {
	t := c.Table
	if len(t.Rows) == 0 {
		return
	}
	rowHeight := c.Box.Height / float64(len(t.Rows))
	top := c.Box.Top
	for i, row := range t.Rows {
		left := c.Box.Left
		for j, cell := range row {
			var w float64
			if j < len(t.ColWidths) {
				w = t.ColWidths[j]
			}
			box := deck.Box{Left: left, Top: top, Width: w, Height: rowHeight}
			renderShapeSVG(buf, box.Left*r.dpi, box.Top*r.dpi, box.Width*r.dpi, box.Height*r.dpi,
				deck.ShapeStyle{Geometry: deck.GeometryRect, Fill: cell.Fill, Border: cell.Border, BorderWidth: cell.BorderWidth})
			renderText(buf, r, fmt.Sprintf("%s-%d-%d", id, i, j), box, deck.TextBody{
				Paragraphs: cell.Paragraphs,
				Anchor:     cell.Anchor,
				Insets:     cell.Insets,
			})
			left += w
		}
		top += rowHeight
	}
}

// paragraphSize is the largest run size, 12pt when the paragraph is empty.
func paragraphSize(p deck.Paragraph) float64 {
	size := 0.0
	for _, r := range p.Runs {
		size = max(size, r.Size)
	}
	if size == 0 {
		return 12
	}
	return size
}

// paragraphLines splits a paragraph's runs at embedded line breaks.
func paragraphLines(p deck.Paragraph) [][]deck.Run {
	lines := [][]deck.Run{nil}
	for _, r := range p.Runs {
		for i, seg := range strings.Split(r.Text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if seg != "" {
				run := r
				run.Text = seg
				lines[len(lines)-1] = append(lines[len(lines)-1], run)
			}
		}
	}
	return lines
}

func escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
