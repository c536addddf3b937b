package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/markup"
)

// CodeRun is a span of source code with one syntax color.
type CodeRun struct {
	Text  string
	Color deck.Color
	Bold  bool
}

var syntaxColors = map[string]deck.Color{
	"keyword":          deck.CodeBlue,
	"code-keyword":     deck.CodeBlue,
	"string":           deck.CodeString,
	"code-string":      deck.CodeString,
	"comment":          deck.CodeGray,
	"code-comment":     deck.CodeGray,
	"type":             deck.CodeGreen,
	"code-type":        deck.CodeGreen,
	"func":             deck.CodeYellow,
	"code-func":        deck.CodeYellow,
	"number":           deck.CodePurple,
	"code-number":      deck.CodePurple,
	"layer-kernel":     deck.CodeBlue,
	"layer-foundation": deck.CodeGreen,
	"layer-apps":       deck.CodePurple,
	"layer-modules":    deck.CodeYellow,
}

// CodeElement returns the element holding a block's source: its first
// <code>, else its first <pre>, else the block itself.
func CodeElement(n *markup.Node) *markup.Node {
	if c := n.Find("code"); c != nil {
		return c
	}
	if c := n.Find("pre"); c != nil {
		return c
	}
	return n
}

// CodeRuns extracts syntax-colored runs with whitespace preserved. The
// innermost span with a known syntax class decides the color; strong/b
// make a run bold. Adjacent runs with equal color and weight merge.
func CodeRuns(n *markup.Node) []CodeRun {
	if n == nil {
		return nil
	}
	root := n.Raw()
	var runs []CodeRun
	walkText(root, func(t *html.Node) {
		r := CodeRun{Color: deck.CodeDefault}
		if t.Type == html.ElementNode {
			r.Text = "\n"
		} else {
			r.Text = t.Data
		}
		if r.Text == "" {
			return
		}
		colored := false
		for a := t.Parent; a != nil && a != root; a = a.Parent {
			switch a.DataAtom {
			case atom.Span:
				if colored {
					continue
				}
				for _, c := range strings.Fields(attrOf(a, "class")) {
					if col, ok := syntaxColors[c]; ok {
						r.Color, colored = col, true
						break
					}
				}
			case atom.Strong, atom.B:
				r.Bold = true
			}
		}
		if k := len(runs); k > 0 && runs[k-1].Color == r.Color && runs[k-1].Bold == r.Bold {
			runs[k-1].Text += r.Text
			return
		}
		runs = append(runs, r)
	})
	return runs
}

// CodeLines splits runs at line breaks. Each returned line holds the
// runs (possibly none) that fall on it.
func CodeLines(runs []CodeRun) [][]CodeRun {
	lines := [][]CodeRun{nil}
	for _, r := range runs {
		for i, seg := range strings.Split(r.Text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if seg != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], CodeRun{Text: seg, Color: r.Color, Bold: r.Bold})
			}
		}
	}
	return lines
}

// TrimTrailingBlank drops trailing lines that hold only whitespace.
func TrimTrailingBlank(lines [][]CodeRun) [][]CodeRun {
	for len(lines) > 0 {
		var b strings.Builder
		for _, r := range lines[len(lines)-1] {
			b.WriteString(r.Text)
		}
		if strings.TrimSpace(b.String()) != "" {
			break
		}
		lines = lines[:len(lines)-1]
	}
	return lines
}
