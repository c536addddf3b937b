package layout

import (
	"fmt"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/markup"
	"github.com/ramparte/amplifier-stories/pkg/style"
	"github.com/ramparte/amplifier-stories/pkg/transform"
)

// Content box and vertical rhythm, in inches.
const (
	ContentLeft  = 0.8
	ContentWidth = 8.4

	GapTight   = 0.08
	GapNormal  = 0.12
	GapSection = 0.25

	// StartTop is where the cursor begins on every slide.
	StartTop = 0.6
)

// NoSlidesWarning is reported for a document without slide containers.
const NoSlidesWarning = "No slides found in HTML. Check for <div class='slide'> or <section class='slide'> elements."

// canvas carries what every renderer needs besides its block and offset.
type canvas struct {
	style.Style
	centered bool
}

func (c canvas) align() deck.Align {
	if c.centered {
		return deck.AlignCenter
	}
	return deck.AlignLeft
}

// renderFunc draws one block starting at top and returns its commands and
// the next cursor position. Empty content yields no commands and top.
type renderFunc func(c canvas, b classify.Block, top float64) ([]deck.Command, float64)

var renderers = map[classify.Archetype]renderFunc{
	classify.Header:              renderHeader,
	classify.ArchitectureDiagram: renderArchitecture,
	classify.ComparisonTable:     renderComparisonTable,
	classify.CardGrid:            renderCardGrid,
	classify.Card:                renderCard,
	classify.Principles:          renderPrinciples,
	classify.Principle:           renderPrinciple,
	classify.CodeBlock:           renderCodeBlock,
	classify.Flow:                renderFlow,
	classify.Tenets:              renderTenets,
	classify.Versus:              renderVersus,
	classify.Table:               renderHTMLTable,
	classify.FeatureList:         renderFeatureList,
	classify.NotificationStack:   renderNotifications,
	classify.Stats:               renderStats,
	classify.BigStat:             renderBigStats,
	classify.TierStack:           renderTierStack,
	classify.TierRows:            renderTierRows,
	classify.Diagram:             renderDiagram,
	classify.BeforeAfter:         renderBeforeAfter,
	classify.TokenDisplay:        renderTokenDisplay,
	classify.GoodBad:             renderGoodBad,
	classify.SummaryRows:         renderSummaryRows,
	classify.BodyText:            renderBodyText,
	classify.TitleMeta:           renderTitleMeta,
	classify.HighlightBox:        renderHighlight,
	classify.Quote:               renderQuote,
	classify.SmallText:           renderSmallText,
	classify.Fallback:            renderFallback,
}

// Cursor is the vertical position on a slide plus the set of elements
// already drawn. It never moves up.
type Cursor struct {
	Top      float64
	rendered *classify.Set
}

// NewCursor returns a cursor at StartTop for a document of n elements.
func NewCursor(n int) *Cursor {
	return &Cursor{Top: StartTop, rendered: classify.NewSet(n)}
}

// Advance moves the cursor to top if that is further down.
func (c *Cursor) Advance(top float64) {
	c.Top = max(c.Top, top)
}

// claim records the block's elements as drawn. It reports false if any of
// them was drawn before.
func (c *Cursor) claim(b classify.Block) bool {
	els := b.Elements()
	for _, n := range els {
		if c.rendered.Has(n.ID()) {
			return false
		}
	}
	for _, n := range els {
		c.rendered.MarkTree(n)
	}
	return true
}

// Step records one block's effect on the cursor.
type Step struct {
	Archetype classify.Archetype
	Top       float64
	Next      float64
	Commands  int
}

// Result is one laid-out slide.
type Result struct {
	Slide    deck.Slide
	Steps    []Step
	Scale    float64 // overflow compression factor; 1 when none applied
	Warnings []string
}

// LaySlide renders a classified slide and compresses it if it overflows
// the canvas.
func LaySlide(plan classify.Plan, st style.Style) Result {
	s := deck.Slide{
		Index:      plan.Slide.Index,
		Centered:   plan.Slide.Centered,
		Background: deck.Black,
	}
	c := canvas{Style: st, centered: plan.Slide.Centered}
	cur := NewCursor(plan.Slide.Node.Document().Len())
	res := Result{Scale: 1}

	for _, b := range plan.Blocks {
		if !cur.claim(b) {
			continue
		}
		render, ok := renderers[b.Archetype]
		if !ok {
			panic(fmt.Sprintf("layout: no renderer for %v", b.Archetype))
		}
		cmds, next := render(c, b, cur.Top)
		s.Add(cmds...)
		res.Steps = append(res.Steps, Step{Archetype: b.Archetype, Top: cur.Top, Next: next, Commands: len(cmds)})
		cur.Advance(next)
	}

	scale, warning := transform.Compress(&s, deck.Height)
	res.Scale = scale
	if warning != "" {
		res.Warnings = append(res.Warnings, warning)
	}
	res.Slide = s
	return res
}

// DocumentStyle resolves the palette declared by a document's style sheets.
func DocumentStyle(doc *markup.Document) style.Style {
	return style.New(style.NewPalette(style.ExtractVars(doc.StyleSheets())))
}

// LayDeck classifies and lays out every slide of doc in order.
func LayDeck(doc *markup.Document, st style.Style) *deck.Deck {
	d := deck.New()
	slides := doc.Slides()
	if len(slides) == 0 {
		d.Warnings = append(d.Warnings, NoSlidesWarning)
		return d
	}
	for _, s := range slides {
		res := LaySlide(classify.Classify(s), st)
		d.Slides = append(d.Slides, res.Slide)
		d.Warnings = append(d.Warnings, res.Warnings...)
	}
	return d
}
