package extract

import (
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/markup"
	"github.com/ramparte/amplifier-stories/pkg/style"
)

// FlowStep is one box of a flow diagram.
type FlowStep struct {
	Number string
	Title  string
	Desc   string
}

// Heading is the rendered title, "N. title" when numbered.
func (s FlowStep) Heading() string {
	if s.Number != "" && s.Title != "" {
		return s.Number + ". " + s.Title
	}
	return s.Title
}

// ReadFlow returns the steps of a flow, workflow or flow-diagram element.
func ReadFlow(n *markup.Node) []FlowStep {
	var steps []FlowStep
	for _, el := range n.FindAllClass("flow-box", "flow-step", "workflow-step", "step") {
		s := FlowStep{
			Number: Text(el.FindClass("step-number", "flow-step-number", "workflow-step-number")),
			Title:  Text(el.FindClass("flow-step-title", "workflow-step-title", "step-title")),
			Desc:   Text(el.FindClass("flow-step-desc", "workflow-step-desc", "step-desc")),
		}
		if s.Title == "" && s.Desc == "" {
			s.Title = Text(el)
		}
		steps = append(steps, s)
	}
	return steps
}

// Tenet is a titled statement with an accent bar: a principle or a tenet.
type Tenet struct {
	Title  string
	Body   string
	Accent deck.Color // unset means the deck accent
}

// ReadPrinciples returns the items of a principles-grid. Any other element
// is read as a single principle.
func ReadPrinciples(n *markup.Node) []Tenet {
	items := []*markup.Node{n}
	if n.HasClass("principles-grid") {
		items = n.FindAllClass("principle")
	}
	out := make([]Tenet, 0, len(items))
	for _, el := range items {
		number := Text(el.FindClass("principle-number", "principle-num"))
		var t Tenet
		if content := el.FindClass("principle-content", "principle-text"); content != nil {
			t.Title = Text(content.Find("h3"))
			var body []string
			for _, p := range content.FindAll("p") {
				if s := Text(p); s != "" {
					body = append(body, s)
				}
			}
			t.Body = strings.Join(body, "\n")
			if t.Title == "" {
				t.Title = Text(content.Find("strong"))
			}
		} else {
			t.Title = Text(el)
		}
		if number != "" && t.Title != "" {
			t.Title = number + "  " + t.Title
		}
		t.Accent = style.ClassColor(el.Classes())
		out = append(out, t)
	}
	return out
}

// ReadPrinciple reads a lone principle outside a principles-grid.
func ReadPrinciple(n *markup.Node) Tenet {
	if content := n.FindClass("principle-content", "principle-text"); content != nil {
		return Tenet{Title: Text(content)}
	}
	return Tenet{Title: Text(n)}
}

// ReadTenet reads one tenet element.
func ReadTenet(n *markup.Node) Tenet {
	t := Tenet{
		Title:  Text(n.FindClass("tenet-title")),
		Body:   Text(n.FindClass("tenet-text")),
		Accent: style.ClassColor(n.Classes()),
	}
	if t.Title == "" {
		t.Title = Text(n)
	}
	return t
}

// VersusSide is one column of a versus comparison.
type VersusSide struct {
	Title string
	Color deck.Color // class color of the side or its title; may be unset
	Items []string
}

// ReadVersus returns the versus-side columns in document order.
func ReadVersus(n *markup.Node) []VersusSide {
	var sides []VersusSide
	for _, el := range n.FindAllClass("versus-side") {
		s := VersusSide{Color: style.ClassColor(el.Classes())}
		if title := el.FindClass("versus-title"); title != nil {
			s.Title = Text(title)
			if c := style.ClassColor(title.Classes()); !c.IsZero() {
				s.Color = c
			}
		}
		list := el.FindClass("feature-list")
		if list == nil {
			list = el.Find("ul")
		}
		if list != nil {
			for _, li := range list.FindAll("li") {
				s.Items = append(s.Items, Text(li))
			}
		}
		sides = append(sides, s)
	}
	return sides
}

// ReadFeatureList returns the list's lines. List items containing ✓ take
// the success color and ✗ danger; without <li> children the element's text
// lines are used uncolored.
func ReadFeatureList(n *markup.Node, p style.Palette) []Line {
	items := n.FindAll("li")
	if len(items) == 0 {
		var out []Line
		for _, l := range Lines(Text(n)) {
			out = append(out, Line{Text: l})
		}
		return out
	}
	out := make([]Line, 0, len(items))
	for _, li := range items {
		t := Text(li)
		l := Line{Text: t}
		switch {
		case strings.Contains(t, "✓"):
			l.Color = p.Success()
		case strings.Contains(t, "✗"):
			l.Color = p.Danger()
		}
		out = append(out, l)
	}
	return out
}

// NotificationVariant selects a notification's icon and colors.
type NotificationVariant int

const (
	NotificationNeutral NotificationVariant = iota
	NotificationAllowed
	NotificationBlocked
)

// Notification is one entry of a notification stack.
type Notification struct {
	Variant NotificationVariant
	Title   string
	Body    string
}

// ReadNotifications returns the .notification entries of a stack.
func ReadNotifications(n *markup.Node) []Notification {
	var out []Notification
	for _, el := range n.FindAllClass("notification") {
		nt := Notification{
			Title: Text(el.FindClass("notification-title")),
			Body:  Text(el.FindClass("notification-body")),
		}
		switch {
		case el.HasClass("allowed"):
			nt.Variant = NotificationAllowed
		case el.HasClass("blocked"):
			nt.Variant = NotificationBlocked
		}
		out = append(out, nt)
	}
	return out
}

// Stat is one figure of a stat group.
type Stat struct {
	Number string
	Label  string
	Color  deck.Color // class color; unset means cyan
}

// ReadStats returns the .stat / .velocity-stat entries of a group.
func ReadStats(n *markup.Node) []Stat {
	var out []Stat
	for _, el := range n.FindAllClass("stat", "velocity-stat") {
		s := Stat{
			Number: Text(el.FindClass("stat-number", "stat-value", "velocity-number")),
			Label:  Text(el.FindClass("stat-label", "velocity-label")),
			Color:  style.ClassColor(el.Classes()),
		}
		if s.Number == "" && s.Label == "" {
			s.Number = Text(el)
		}
		out = append(out, s)
	}
	return out
}

// BigStat is a single oversized figure.
type BigStat struct {
	Number string
	Unit   string
	Label  string
}

// Display joins number and unit.
func (b BigStat) Display() string {
	if b.Unit == "" {
		return b.Number
	}
	return strings.TrimSpace(b.Number + " " + b.Unit)
}

// ReadBigStat reads one big-stat element.
func ReadBigStat(n *markup.Node) BigStat {
	b := BigStat{
		Number: Text(n.FindClass("big-stat-number")),
		Unit:   Text(n.FindClass("big-stat-unit")),
		Label:  Text(n.FindClass("big-stat-label")),
	}
	if b.Number == "" {
		b.Number = Text(n)
	}
	return b
}

// Tier is one level of a tier stack.
type Tier struct {
	Label  string
	Title  string
	Desc   string
	Tokens string
	Accent deck.Color
}

// Heading is "label  title", or just the title.
func (t Tier) Heading() string {
	if t.Label == "" {
		return t.Title
	}
	return strings.TrimSpace(t.Label + "  " + t.Title)
}

// Body joins the description and token lines.
func (t Tier) Body() string {
	var parts []string
	for _, s := range []string{t.Desc, t.Tokens} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// ReadTiers returns the .tier entries of a tier stack.
func ReadTiers(n *markup.Node) []Tier {
	var out []Tier
	for _, el := range n.FindAllClass("tier") {
		out = append(out, Tier{
			Label:  Text(el.FindClass("tier-label")),
			Title:  Text(el.FindClass("tier-title")),
			Desc:   Text(el.FindClass("tier-desc")),
			Tokens: Text(el.FindClass("tier-tokens")),
			Accent: style.ClassColor(el.Classes()),
		})
	}
	return out
}

// ReadTierRow returns the name, uses and cost cells of a tier-row. A row
// without those fields puts its whole text in the first cell.
func ReadTierRow(n *markup.Node) []string {
	row := []string{
		Text(n.FindClass("tier-name")),
		Text(n.FindClass("tier-uses")),
		Text(n.FindClass("tier-cost")),
	}
	if row[0] == "" && row[1] == "" && row[2] == "" {
		row[0] = Text(n)
	}
	return row
}

// DiagramBox is one box of a diagram.
type DiagramBox struct {
	Title string
	Body  string
}

// ReadDiagram returns the .diagram-box entries of a diagram.
func ReadDiagram(n *markup.Node) []DiagramBox {
	var out []DiagramBox
	for _, el := range n.FindAllClass("diagram-box") {
		b := DiagramBox{
			Title: Text(el.FindClass("diagram-box-title")),
			Body:  Text(el.FindClass("diagram-box-content")),
		}
		if b.Title == "" && b.Body == "" {
			b.Title = Text(el)
		}
		out = append(out, b)
	}
	return out
}

// Comparison is one side of a before/after pair.
type Comparison struct {
	Title string
	Body  string
}

// ReadBeforeAfter returns the before-card and after-card contents. Missing
// cards yield zero values.
func ReadBeforeAfter(n *markup.Node) (before, after Comparison) {
	return readComparison(n.FindClass("before-card")), readComparison(n.FindClass("after-card"))
}

func readComparison(n *markup.Node) Comparison {
	if n == nil {
		return Comparison{}
	}
	label := Text(n.FindClass("comparison-label"))
	value := Text(n.FindClass("comparison-value"))
	remaining := Text(n)
	for _, part := range []string{label, value} {
		remaining = strings.TrimSpace(strings.Replace(remaining, part, "", 1))
	}
	title := label
	if title == "" {
		if h := n.Find("h3, h4"); h != nil {
			title = Text(h)
		} else {
			title = Text(n)
		}
	}
	var body []string
	for _, s := range []string{value, remaining} {
		if s != "" {
			body = append(body, s)
		}
	}
	return Comparison{Title: title, Body: strings.Join(body, "\n")}
}

// ReadPatternItems returns a good/bad pattern's items: its <li> texts, or
// its non-empty text lines. A nil node yields nothing.
func ReadPatternItems(n *markup.Node) []string {
	if n == nil {
		return nil
	}
	if lis := n.FindAll("li"); len(lis) > 0 {
		out := make([]string, len(lis))
		for i, li := range lis {
			out[i] = Text(li)
		}
		return out
	}
	return Lines(Text(n))
}

// ReadSummaryRow returns a summary row's cells, or its whole text as one
// cell. An empty row yields nil.
func ReadSummaryRow(n *markup.Node) []string {
	if cells := n.FindAllClass("summary-cell"); len(cells) > 0 {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = Text(c)
		}
		return out
	}
	if t := Text(n); t != "" {
		return []string{t}
	}
	return nil
}

// Quote is a pull quote with optional attribution.
type Quote struct {
	Text        string
	Attribution string
}

var attributionClasses = []string{"quote-attribution", "quote-attr"}

// ReadQuote separates a quote's text from its attribution.
func ReadQuote(n *markup.Node) Quote {
	var parts []string
	for c := n.Raw().FirstChild; c != nil; c = c.NextSibling {
		if el := n.Document().Lookup(c); el != nil {
			if el.HasAnyClass(attributionClasses...) {
				continue
			}
			parts = append(parts, Text(el))
			continue
		}
		if t := strings.TrimSpace(c.Data); t != "" && c.Type == textNode {
			parts = append(parts, t)
		}
	}
	q := Quote{Text: strings.TrimSpace(strings.Join(parts, " "))}
	if q.Text == "" {
		q.Text = Text(n)
	}
	q.Attribution = Text(n.FindClass(attributionClasses...))
	if q.Attribution != "" && strings.HasSuffix(q.Text, q.Attribution) {
		q.Text = strings.TrimSpace(strings.TrimSuffix(q.Text, q.Attribution))
	}
	return q
}

// Highlight is a callout box's content.
type Highlight struct {
	Title string
	Body  string
	Runs  []Run // formatted body, title run removed; nil when unformatted
}

// ReadHighlight reads a highlight box. The title is its first h3, h4 or
// strong; the body is the remaining text.
func ReadHighlight(n *markup.Node, p style.Palette) Highlight {
	var h Highlight
	h.Title = Text(n.Find("h3, h4, strong"))
	h.Body = Text(n)
	if h.Title != "" && strings.HasPrefix(h.Body, h.Title) {
		h.Body = strings.TrimSpace(h.Body[len(h.Title):])
	}
	if h.Body == "" {
		return h
	}
	runs := RichText(n, p)
	if !HasFormatting(runs) {
		return h
	}
	skipped := false
	for _, r := range runs {
		if !skipped && strings.TrimSpace(r.Text) == strings.TrimSpace(h.Title) {
			skipped = true
			continue
		}
		h.Runs = append(h.Runs, r)
	}
	h.Runs = MergeRuns(h.Runs)
	return h
}
