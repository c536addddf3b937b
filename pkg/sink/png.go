package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

// basicfont glyphs are 13px tall; text is scaled from that.
const glyphHeight = 13.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes slide selection and resolution through to the
// shared preview options.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the deck as a contact sheet with the same geometry
// as [RenderSVG]. Text uses a fixed bitmap face scaled to each run's size,
// so it is a layout preview rather than a typographic one.
func RenderPNG(d *deck.Deck, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	sr := newSVGRenderer(r.svgOpts...)
	if r.scale <= 0 {
		r.scale = 1
	}
	dpi := sr.dpi * r.scale
	slides := sr.pick(d)

	n := max(1, len(slides))
	w := int(math.Ceil(deck.Width * dpi))
	h := int(math.Ceil((float64(n)*(deck.Height+slideGap) - slideGap) * dpi))
	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)

	p := painter{dc: dc, dpi: dpi}
	for i, s := range slides {
		p.offset = float64(i) * (deck.Height + slideGap)
		p.fill(deck.Box{Width: deck.Width, Height: deck.Height}, s.Background.Or(deck.Black))
		for _, c := range s.Commands {
			p.command(c)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return buf.Bytes(), nil
}

// painter draws commands onto a gg context. offset shifts every box down,
// in inches.
type painter struct {
	dc     *gg.Context
	dpi    float64
	offset float64
}

func (p painter) rect(b deck.Box) (x, y, w, h float64) {
	return b.Left * p.dpi, (b.Top + p.offset) * p.dpi, b.Width * p.dpi, b.Height * p.dpi
}

func (p painter) color(c deck.Color) {
	r, g, b := c.RGB255()
	p.dc.SetRGB255(int(r), int(g), int(b))
}

func (p painter) fill(b deck.Box, c deck.Color) {
	x, y, w, h := p.rect(b)
	p.dc.DrawRectangle(x, y, w, h)
	p.color(c)
	p.dc.Fill()
}

func (p painter) command(c deck.Command) {
	switch {
	case c.Table != nil:
		p.table(c)
		return
	case c.Shape != nil:
		p.shape(c.Box, *c.Shape)
	}
	if c.Text != nil {
		p.text(c.Box, *c.Text)
	}
}

func (p painter) shape(b deck.Box, s deck.ShapeStyle) {
	x, y, w, h := p.rect(b)
	switch s.Geometry {
	case deck.GeometryRightArrow:
		head := min(w*0.4, h)
		p.dc.MoveTo(x, y+h*0.25)
		p.dc.LineTo(x+w-head, y+h*0.25)
		p.dc.LineTo(x+w-head, y)
		p.dc.LineTo(x+w, y+h/2)
		p.dc.LineTo(x+w-head, y+h)
		p.dc.LineTo(x+w-head, y+h*0.75)
		p.dc.LineTo(x, y+h*0.75)
		p.dc.ClosePath()
	case deck.GeometryRounded:
		p.dc.DrawRoundedRectangle(x, y, w, h, min(w, h)*deck.RoundedCorner*2)
	default:
		p.dc.DrawRectangle(x, y, w, h)
	}
	if !s.Fill.IsZero() {
		p.color(s.Fill)
		p.dc.FillPreserve()
	}
	if !s.Border.IsZero() {
		p.color(s.Border)
		p.dc.SetLineWidth(max(1, s.BorderWidth*p.dpi/72))
		p.dc.StrokePreserve()
	}
	p.dc.ClearPath()
}

func (p painter) text(b deck.Box, t deck.TextBody) {
	x, y, w, h := p.rect(b)
	ptPx := p.dpi / 72

	var total float64
	for _, para := range t.Paragraphs {
		total += (para.SpaceBefore + paragraphSize(para)*lineHeight*float64(len(paragraphLines(para))) + para.SpaceAfter) * ptPx
	}
	cy := y + t.Insets.Top*p.dpi
	if t.Anchor == deck.AnchorMiddle {
		cy = y + max(0, (h-total)/2)
	}

	p.dc.Push()
	p.dc.DrawRectangle(x, y, w, h)
	p.dc.Clip()
	for _, para := range t.Paragraphs {
		size := paragraphSize(para) * ptPx
		cy += para.SpaceBefore * ptPx
		for _, line := range paragraphLines(para) {
			cy += size
			p.line(line, x+t.Insets.Left*p.dpi, x+w/2, cy, para.Align == deck.AlignCenter)
			cy += size * (lineHeight - 1)
		}
		cy += para.SpaceAfter * ptPx
	}
	p.dc.Pop()
}

// line draws runs on one baseline, starting at left or centered on center.
func (p painter) line(runs []deck.Run, left, center, baseline float64, centered bool) {
	widths := make([]float64, len(runs))
	var total float64
	for i, r := range runs {
		k := r.Size * p.dpi / 72 / glyphHeight
		tw, _ := p.dc.MeasureString(r.Text)
		widths[i] = tw * k
		total += widths[i]
	}
	x := left
	if centered {
		x = center - total/2
	}
	for i, r := range runs {
		k := r.Size * p.dpi / 72 / glyphHeight
		p.dc.Push()
		p.dc.ScaleAbout(k, k, x, baseline)
		p.color(r.Color.Or(deck.White))
		p.dc.DrawString(r.Text, x, baseline)
		p.dc.Pop()
		x += widths[i]
	}
}

func (p painter) table(c deck.Command) {
	t := c.Table
	if len(t.Rows) == 0 {
		return
	}
	rowHeight := c.Box.Height / float64(len(t.Rows))
	top := c.Box.Top
	for _, row := range t.Rows {
		left := c.Box.Left
		for j, cell := range row {
			var w float64
			if j < len(t.ColWidths) {
				w = t.ColWidths[j]
			}
			box := deck.Box{Left: left, Top: top, Width: w, Height: rowHeight}
			p.shape(box, deck.ShapeStyle{Geometry: deck.GeometryRect, Fill: cell.Fill, Border: cell.Border, BorderWidth: cell.BorderWidth})
			p.text(box, deck.TextBody{Paragraphs: cell.Paragraphs, Anchor: cell.Anchor, Insets: cell.Insets})
			left += w
		}
		top += rowHeight
	}
}
