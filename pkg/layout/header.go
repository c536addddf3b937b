package layout

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
)

// headerHeight estimates the frame height needed for the header parts of
// a non-centered slide.
func headerHeight(parts []classify.HeaderPart) float64 {
	h := 0.3
	for _, p := range parts {
		switch p.Kind {
		case classify.PartLabel:
			h += 0.35
		case classify.PartHeadline:
			lines := float64(utf8.RuneCountInString(extract.Text(p.Node))/35 + 1)
			per := 0.6
			if p.Node.Is("h1") || p.Node.HasClass("big-text") {
				per = 0.75
			}
			h += lines*per + 0.2
		case classify.PartSectionTitle, classify.PartMedium:
			h += 0.7
		case classify.PartSubhead:
			h += 0.5
		case classify.PartBody:
			h += float64(extract.LineCount(extract.Text(p.Node)))*0.25 + 0.15
		}
	}
	return h
}

// renderHeader merges labels, headlines, subheads and intro text into one
// frame. Centered slides get a frame spanning the canvas, anchored middle.
func renderHeader(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	if len(b.Header) == 0 {
		return nil, top
	}
	align := c.align()
	var paras []deck.Paragraph
	for _, p := range b.Header {
		text := extract.Text(p.Node)
		switch p.Kind {
		case classify.PartLabel:
			paras = append(paras, c.body(14, c.Palette.Accent).bold().aligned(align).spaced(0, 4).text(cases.Upper(language.Und).String(text)))

		case classify.PartHeadline:
			size, color := 40.0, deck.White
			switch {
			case p.Node.HasClass("big-text"):
				size, color = 52, deck.Cyan
			case p.Node.Is("h1"):
				size = 48
			}
			f := c.body(size, color).bold().aligned(align).spaced(4, 8)
			if runs := extract.RichText(p.Node, c.Palette); extract.HasEmphasis(runs) {
				paras = append(paras, f.rich(runs))
			} else {
				paras = append(paras, f.text(text))
			}

		case classify.PartSectionTitle:
			paras = append(paras, c.body(36, deck.White).bold().aligned(align).spaced(4, 4).text(text))

		case classify.PartMedium:
			color := c.Palette.InlineColor(p.Node.Style()).Or(deck.White)
			paras = append(paras, c.body(32, color).bold().aligned(align).spaced(4, 8).text(text))

		case classify.PartSubhead:
			f := c.body(20, deck.Gray70).aligned(align).spaced(4, 4)
			if runs := extract.RichText(p.Node, c.Palette); extract.HasFormatting(runs) {
				paras = append(paras, f.rich(runs))
			} else {
				paras = append(paras, f.text(text))
			}

		case classify.PartBody:
			f := c.body(16, deck.Gray70).aligned(deck.AlignCenter).spaced(4, 4)
			if runs := extract.RichText(p.Node, c.Palette); extract.HasFormatting(runs) {
				paras = append(paras, f.rich(runs))
			} else {
				paras = append(paras, f.text(text))
			}
		}
	}

	frameTop, frameHeight := 0.5, headerHeight(b.Header)
	if c.centered {
		frameTop, frameHeight = 0.4, deck.Height-0.8
	}
	cmd := textFrame(deck.Box{Left: ContentLeft, Top: frameTop, Width: ContentWidth, Height: frameHeight}, deck.AutoSizeFitShape, paras...)
	if c.centered {
		cmd = middle(cmd)
	}
	return []deck.Command{cmd}, frameTop + frameHeight + GapSection
}
