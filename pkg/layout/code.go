package layout

import (
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
	"github.com/ramparte/amplifier-stories/pkg/markup"
)

var codeInsets = deck.Insets{Left: 0.15, Right: 0.1, Top: 0.1, Bottom: 0.1}

// codeHeight estimates a code panel's height and caps it to the space left
// below top, never below 0.8.
func codeHeight(lines int, top float64) float64 {
	h := min(4.5, max(1.0, float64(lines)*0.18+0.3))
	available := max(0.8, deck.Height-top-0.15)
	return min(h, available)
}

// codeFontSize shrinks long listings.
func codeFontSize(lines int) float64 {
	switch {
	case lines > 25:
		return 9
	case lines > 18:
		return 10
	case lines > 12:
		return 11
	}
	return 12
}

func architectureFontSize(lines int) float64 {
	switch {
	case lines > 20:
		return 10
	case lines > 12:
		return 11
	}
	return 12
}

// codeLines returns a block's syntax-colored lines. Elements without any
// text yield nil.
func codeLines(n *markup.Node) [][]extract.CodeRun {
	runs := extract.CodeRuns(extract.CodeElement(n))
	if len(runs) == 0 {
		return nil
	}
	return extract.CodeLines(runs)
}

// codePanel draws a dark rounded panel with one paragraph per source line.
func (c canvas) codePanel(top, height float64, lines [][]extract.CodeRun, size float64) []deck.Command {
	paras := make([]deck.Paragraph, 0, len(lines))
	for _, line := range lines {
		var p deck.Paragraph
		for _, r := range line {
			f := c.code(size, r.Color)
			f.Bold = r.Bold
			p.Runs = append(p.Runs, f.run(r.Text))
		}
		if len(p.Runs) == 0 {
			p.Runs = []deck.Run{c.code(size, deck.CodeDefault).run(" ")}
		}
		paras = append(paras, p)
	}
	frame := textFrame(deck.Box{Left: ContentLeft + 0.05, Top: top + 0.05, Width: ContentWidth - 0.1, Height: height - 0.1}, deck.AutoSizeFitShape, paras...)
	frame.Text.Insets = codeInsets
	return []deck.Command{
		filled(deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: height}, deck.GeometryRounded, deck.CodeBackground, deck.BorderGray),
		frame,
	}
}

func renderCodeBlock(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	return c.codeBlock(b.Node(), top)
}

// codeBlock draws a listing with trailing blank lines removed.
func (c canvas) codeBlock(n *markup.Node, top float64) ([]deck.Command, float64) {
	lines := extract.TrimTrailingBlank(codeLines(n))
	if len(lines) == 0 {
		return nil, top
	}
	h := codeHeight(len(lines), top)
	return c.codePanel(top, h, lines, codeFontSize(len(lines))), top + h + GapNormal
}

// renderArchitecture draws an ASCII architecture diagram like a listing.
// Every source line, trailing blanks included, counts toward the height.
func renderArchitecture(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	lines := codeLines(b.Node())
	if len(extract.TrimTrailingBlank(lines)) == 0 {
		return nil, top
	}
	h := codeHeight(len(lines), top)
	return c.codePanel(top, h, lines, architectureFontSize(len(lines))), top + h + GapNormal
}

// renderTokenDisplay draws monospace token text on a code panel.
func renderTokenDisplay(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	text := extract.Text(b.Node())
	if text == "" {
		return nil, top
	}
	lines := strings.Split(text, "\n")
	h := max(0.5, float64(len(lines))*0.22+0.2)
	paras := make([]deck.Paragraph, len(lines))
	for i, l := range lines {
		paras[i] = c.code(11, deck.CodeDefault).text(l)
	}
	return []deck.Command{
		filled(deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: h}, deck.GeometryRounded, deck.CodeBackground, deck.BorderGray),
		textFrame(deck.Box{Left: ContentLeft + 0.1, Top: top + 0.05, Width: ContentWidth - 0.2, Height: h - 0.1}, deck.AutoSizeFitShape, paras...),
	}, top + h + GapNormal
}
