package layout

import (
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
)

// font describes how a paragraph's runs are set.
type font struct {
	Size   float64
	Color  deck.Color
	Bold   bool
	Italic bool
	Face   string
	Align  deck.Align
	Before float64
	After  float64
}

// body returns a font in the deck's body face.
func (c canvas) body(size float64, color deck.Color) font {
	return font{Size: size, Color: color, Face: c.Fonts.Body}
}

// code returns a font in the deck's monospace face.
func (c canvas) code(size float64, color deck.Color) font {
	return font{Size: size, Color: color, Face: c.Fonts.Code}
}

func (f font) bold() font {
	f.Bold = true
	return f
}

func (f font) italic() font {
	f.Italic = true
	return f
}

func (f font) aligned(a deck.Align) font {
	f.Align = a
	return f
}

func (f font) spaced(before, after float64) font {
	f.Before, f.After = before, after
	return f
}

func (f font) run(text string) deck.Run {
	return deck.Run{Text: text, Bold: f.Bold, Italic: f.Italic, Color: f.Color, Font: f.Face, Size: f.Size}
}

// text returns a single-run paragraph.
func (f font) text(s string) deck.Paragraph {
	return deck.Paragraph{Runs: []deck.Run{f.run(s)}, Align: f.Align, SpaceBefore: f.Before, SpaceAfter: f.After}
}

// rich returns one paragraph of formatted runs. Runs without a color take
// the font's color; bold is inherited from the font.
func (f font) rich(runs []extract.Run) deck.Paragraph {
	p := deck.Paragraph{Align: f.Align, SpaceBefore: f.Before, SpaceAfter: f.After}
	for _, r := range runs {
		out := f.run(r.Text)
		out.Bold = out.Bold || r.Bold
		out.Italic = out.Italic || r.Italic
		out.Color = r.Color.Or(f.Color)
		p.Runs = append(p.Runs, out)
	}
	return p
}

// textFrame returns a word-wrapped, top-anchored text box with default
// insets.
func textFrame(box deck.Box, auto deck.AutoSize, paras ...deck.Paragraph) deck.Command {
	return deck.NewText(box, deck.TextBody{
		Paragraphs: paras,
		AutoSize:   auto,
		Anchor:     deck.AnchorTop,
		Insets:     deck.FrameInsets,
		WordWrap:   true,
	})
}

// middle anchors a text command vertically and returns it.
func middle(cmd deck.Command) deck.Command {
	cmd.Text.Anchor = deck.AnchorMiddle
	return cmd
}

// filled returns a filled shape without text. An unset border draws no
// outline.
func filled(box deck.Box, g deck.Geometry, fill, border deck.Color) deck.Command {
	st := deck.ShapeStyle{Geometry: g, Fill: fill}
	if !border.IsZero() {
		st.Border, st.BorderWidth = border, 1
	}
	return deck.NewShape(box, st, nil)
}

// card is the content and styling of a rounded card shape.
type card struct {
	Title      string
	Body       string
	Runs       []extract.Run
	TitleSize  float64
	BodySize   float64
	TitleColor deck.Color // unset means white
	BodyColor  deck.Color // unset means gray70
	Accent     deck.Color // replaces a white title color when set
	Fill       deck.Color // unset means dark gray
	Border     deck.Color
}

// cardFrame draws a rounded card with a bold title and a body that renders
// as rich runs, a bullet list or a single paragraph. It reports false when
// the card has nothing to show.
func (c canvas) cardFrame(box deck.Box, k card) (deck.Command, bool) {
	if k.Title == "" && k.Body == "" && len(k.Runs) == 0 {
		return deck.Command{}, false
	}
	titleColor := k.TitleColor.Or(deck.White)
	if !k.Accent.IsZero() && titleColor == deck.White {
		titleColor = k.Accent
	}
	bodyColor := k.BodyColor.Or(deck.Gray70)

	var paras []deck.Paragraph
	if k.Title != "" {
		paras = append(paras, c.body(k.TitleSize, titleColor).bold().spaced(0, 4).text(k.Title))
	}
	paras = append(paras, c.bodyParagraphs(k.Body, k.Runs, k.BodySize, bodyColor)...)

	st := deck.ShapeStyle{Geometry: deck.GeometryRounded, Fill: k.Fill.Or(deck.DarkGray)}
	if !k.Border.IsZero() {
		st.Border, st.BorderWidth = k.Border, 1
	}
	return deck.NewShape(box, st, &deck.TextBody{
		Paragraphs: paras,
		AutoSize:   deck.AutoSizeFitShape,
		Anchor:     deck.AnchorTop,
		Insets:     deck.CardInsets,
		WordWrap:   true,
	}), true
}

// bodyParagraphs renders a card body: rich runs when present, one paragraph
// per line for bullet lists, else the whole body as one paragraph.
func (c canvas) bodyParagraphs(body string, runs []extract.Run, size float64, color deck.Color) []deck.Paragraph {
	if len(runs) > 0 {
		return []deck.Paragraph{c.body(size, color).spaced(2, 0).rich(runs)}
	}
	if body == "" {
		return nil
	}
	lines := extract.SplitBulletLines(body, c.Palette)
	if !extract.IsBulletList(lines) {
		return []deck.Paragraph{c.body(size, color).spaced(2, 0).text(body)}
	}
	paras := make([]deck.Paragraph, 0, len(lines))
	for _, l := range lines {
		paras = append(paras, c.body(size, l.Color.Or(color)).spaced(1, 1).text(l.Text))
	}
	return paras
}

// tenet draws an accent bar with a title and body beside it.
func (c canvas) tenet(left, top, width float64, t extract.Tenet) []deck.Command {
	if t.Title == "" && t.Body == "" {
		return nil
	}
	const bar = 0.04
	accent := t.Accent.Or(c.Palette.Accent)
	var paras []deck.Paragraph
	if t.Title != "" {
		paras = append(paras, c.body(14, deck.White).bold().spaced(0, 4).text(t.Title))
	}
	if t.Body != "" {
		paras = append(paras, c.body(11, deck.Gray70).spaced(2, 0).text(t.Body))
	}
	return []deck.Command{
		filled(deck.Box{Left: left, Top: top, Width: bar, Height: 1.0}, deck.GeometryRect, accent, ""),
		textFrame(deck.Box{Left: left + bar + 0.08, Top: top, Width: width - bar - 0.12, Height: 1.0}, deck.AutoSizeFitShape, paras...),
	}
}

// arrow draws a right arrow after a box ending at right, centered on a row
// of boxes with the given top and height.
func arrow(right, top, height float64, color deck.Color) deck.Command {
	const gap, width = 0.15, 0.3
	return filled(deck.Box{
		Left:   right + gap*0.3,
		Top:    top + height/2 - 0.05,
		Width:  width * 0.7,
		Height: 0.1,
	}, deck.GeometryRightArrow, color, "")
}
