package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/markup"
	"github.com/ramparte/amplifier-stories/pkg/style"
)

// BulletChars are the glyphs that mark a line as a list item.
const BulletChars = "•-*✓✗→"

// Run is a span of text with uniform emphasis. An unset Color means the
// renderer's default color applies.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Color  deck.Color
}

func (r Run) sameFormat(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Color == o.Color
}

// Line is one line of a body with an optional color derived from its
// leading glyph.
type Line struct {
	Text  string
	Color deck.Color
}

// Text flattens an element to plain text. <br> becomes a line break, text
// nodes are joined with single spaces, whitespace collapses within each
// line and the result is trimmed and NFC-normalized. A nil node yields "".
func Text(n *markup.Node) string {
	if n == nil {
		return ""
	}
	var parts []string
	walkText(n.Raw(), func(t *html.Node) {
		if t.Type == html.ElementNode {
			parts = append(parts, "\n")
			return
		}
		parts = append(parts, t.Data)
	})
	lines := strings.Split(strings.Join(parts, " "), "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return norm.NFC.String(strings.TrimSpace(strings.Join(lines, "\n")))
}

// walkText visits text nodes and <br> elements below root in document
// order. Script, style and comments are skipped.
func walkText(root *html.Node, visit func(*html.Node)) {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			visit(c)
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Br:
				visit(c)
			case atom.Script, atom.Style:
			default:
				walkText(c, visit)
			}
		}
	}
}

// RichText splits an element into formatted runs. Bold comes from
// strong/b, italic from em/i, and span.highlight / span.check color their
// text cyan and success respectively. The element itself counts as an
// ancestor. Adjacent runs with equal formatting are merged; whitespace
// between words is kept as a single space.
func RichText(n *markup.Node, p style.Palette) []Run {
	if n == nil {
		return nil
	}
	root := n.Raw()
	var runs []Run
	walkText(root, func(t *html.Node) {
		if t.Type == html.ElementNode {
			appendBreak(&runs)
			return
		}
		if strings.TrimSpace(t.Data) == "" {
			if t.Data != "" && len(runs) > 0 {
				last := &runs[len(runs)-1]
				if !strings.HasSuffix(last.Text, " ") && !strings.HasSuffix(last.Text, "\n") {
					last.Text += " "
				}
			}
			return
		}
		r := Run{Text: collapse(norm.NFC.String(t.Data))}
		for a := t.Parent; a != nil; a = a.Parent {
			switch a.DataAtom {
			case atom.Strong, atom.B:
				r.Bold = true
			case atom.Em, atom.I:
				r.Italic = true
			case atom.Span:
				if r.Color.IsZero() {
					r.Color = spanColor(a, p)
				}
			}
			if a == root {
				break
			}
		}
		runs = append(runs, r)
	})
	return MergeRuns(runs)
}

func appendBreak(runs *[]Run) {
	if len(*runs) == 0 {
		return
	}
	last := &(*runs)[len(*runs)-1]
	last.Text = strings.TrimRight(last.Text, " ") + "\n"
}

func spanColor(n *html.Node, p style.Palette) deck.Color {
	for _, c := range strings.Fields(attrOf(n, "class")) {
		switch c {
		case "highlight":
			return deck.Cyan
		case "check":
			return p.Success()
		}
	}
	return ""
}

// collapse squeezes whitespace within each line to single spaces. A
// single space survives at the outer edges so words in adjacent runs stay
// apart.
func collapse(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		c := strings.Join(strings.Fields(l), " ")
		if c == "" {
			lines[i] = ""
			continue
		}
		if i == 0 && startsSpace(l) {
			c = " " + c
		}
		if i == len(lines)-1 && endsSpace(l) {
			c += " "
		}
		lines[i] = c
	}
	return strings.Join(lines, "\n")
}

func startsSpace(s string) bool { return s != "" && strings.TrimLeft(s, " \t\r\f") != s }
func endsSpace(s string) bool   { return s != "" && strings.TrimRight(s, " \t\r\f") != s }

// MergeRuns joins adjacent runs with equal formatting, squeezes doubled
// spaces across run boundaries, trims the outer edges and drops empty
// runs. MergeRuns(MergeRuns(x)) equals MergeRuns(x).
func MergeRuns(runs []Run) []Run {
	var out []Run
	for _, r := range runs {
		if len(out) == 0 {
			r.Text = strings.TrimLeft(r.Text, " \n")
		} else if prev := out[len(out)-1].Text; strings.HasSuffix(prev, " ") || strings.HasSuffix(prev, "\n") {
			r.Text = strings.TrimLeft(r.Text, " ")
		}
		if r.Text == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1].sameFormat(r) {
			out[len(out)-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	for len(out) > 0 {
		last := &out[len(out)-1]
		last.Text = strings.TrimRight(last.Text, " \n")
		if last.Text != "" {
			break
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasFormatting reports whether any run is bold, italic or colored.
func HasFormatting(runs []Run) bool {
	for _, r := range runs {
		if r.Bold || r.Italic || !r.Color.IsZero() {
			return true
		}
	}
	return false
}

// HasEmphasis reports whether any run is bold or colored. Headlines ignore
// italics when deciding to keep rich runs.
func HasEmphasis(runs []Run) bool {
	for _, r := range runs {
		if r.Bold || !r.Color.IsZero() {
			return true
		}
	}
	return false
}

// SplitBulletLines returns the non-empty trimmed lines of text. Lines that
// start with ✓ take the success color and lines with ✗ take danger.
func SplitBulletLines(text string, p style.Palette) []Line {
	var out []Line
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		line := Line{Text: l}
		switch {
		case strings.HasPrefix(l, "✓"):
			line.Color = p.Success()
		case strings.HasPrefix(l, "✗"):
			line.Color = p.Danger()
		}
		out = append(out, line)
	}
	return out
}

// IsBulletList reports whether lines should render as a list: more than
// one line and at least one starting with a bullet glyph.
func IsBulletList(lines []Line) bool {
	if len(lines) < 2 {
		return false
	}
	for _, l := range lines {
		if HasBullet(l.Text) {
			return true
		}
	}
	return false
}

// HasBullet reports whether s starts with one of BulletChars.
func HasBullet(s string) bool {
	s = strings.TrimLeft(s, " \t")
	for _, c := range BulletChars {
		if strings.HasPrefix(s, string(c)) {
			return true
		}
	}
	return false
}

// Lines splits text into trimmed non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// LineCount is the number of lines in text, counting empty ones.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
