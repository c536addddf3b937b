package extract

import (
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/markup"
	"github.com/ramparte/amplifier-stories/pkg/style"
)

// CardClasses mark an element as a card.
var CardClasses = []string{"card", "module-card", "tool-card", "track-card"}

var (
	cardTitleClasses = []string{"card-title", "card-header", "card-name"}
	cardBodyClasses  = []string{"card-body", "card-desc", "card-description", "card-content", "card-text"}
)

// Card is the content of one card element.
type Card struct {
	Title      string
	Body       string
	BodyRuns   []Run      // set instead of Body when the body has inline formatting
	TitleColor deck.Color // from a color class or inline style; unset means accent
	Module     bool       // first body line is a monospace contract
}

// Empty reports whether the card has nothing to render.
func (c Card) Empty() bool {
	return c.Title == "" && c.Body == "" && len(c.BodyRuns) == 0
}

// ReadCard extracts a card's title, body and title color.
func ReadCard(n *markup.Node, p style.Palette) Card {
	var c Card
	switch {
	case n.HasClass("module-card"):
		c.Module = true
		c.Title = Text(n.FindClass("module-name"))
		var parts []string
		if el := n.FindClass("module-contract"); el != nil {
			parts = append(parts, Text(el))
		}
		if el := n.FindClass("module-purpose"); el != nil {
			parts = append(parts, Text(el))
		}
		c.Body = strings.Join(parts, "\n")
	case n.HasClass("tool-card"):
		c.Title = Text(n.FindClass("tool-name"))
		c.Body = Text(n.FindClass("tool-desc"))
	default:
		readGenericCard(n, p, &c)
	}

	if num := Text(n.FindClass("card-number")); num != "" {
		if c.Title != "" {
			c.Title = num + "  " + c.Title
		} else {
			c.Title = num
		}
	}

	if c.Empty() {
		if all := Text(n); all != "" {
			c.Title, c.Body, _ = strings.Cut(all, "\n")
		}
	}

	c.TitleColor = style.ClassColor(n.Classes())
	if col := p.InlineColor(n.Style()); !col.IsZero() {
		c.TitleColor = col
	}
	return c
}

func readGenericCard(n *markup.Node, p style.Palette, c *Card) {
	title := n.FindClass(cardTitleClasses...)
	if title == nil {
		title = n.Find("h3, h4")
	}
	c.Title = Text(title)

	list := n.Find("ul.bullet-list")
	if list == nil {
		list = n.Find("ul")
	}
	if list != nil {
		var lines []string
		for _, li := range list.FindAll("li") {
			t := Text(li)
			if t != "" && !HasBullet(t) {
				t = "• " + t
			}
			lines = append(lines, t)
		}
		c.Body = strings.Join(lines, "\n")
		return
	}

	body := n.FindClass(cardBodyClasses...)
	if body == nil {
		body = n.Find("p")
	}
	if body == nil {
		return
	}
	if runs := RichText(body, p); HasFormatting(runs) {
		c.BodyRuns = runs
		return
	}
	c.Body = Text(body)
}

// GridItemKind classifies a direct child of a card grid.
type GridItemKind int

const (
	GridOther GridItemKind = iota // plain content, rendered as text in a cell
	GridCard                      // a card, or a wrapper containing one
	GridCode                      // a code block, rendered after the grid
)

// GridItem is one direct child of a grid container.
type GridItem struct {
	Kind GridItemKind
	Node *markup.Node
}

// ReadGrid returns the grid's element children, skipping style and script.
func ReadGrid(n *markup.Node) []GridItem {
	var items []GridItem
	for _, child := range n.Children() {
		if child.Is("style", "script") {
			continue
		}
		item := GridItem{Kind: GridOther, Node: child}
		switch {
		case child.HasClass("code-block"):
			item.Kind = GridCode
		case child.HasAnyClass(CardClasses...) || child.FindClass(CardClasses...) != nil:
			item.Kind = GridCard
		}
		items = append(items, item)
	}
	return items
}

// GridColumns picks the column count for a grid container holding n items.
func GridColumns(classes []string, n int) int {
	for _, c := range classes {
		switch c {
		case "grid-2", "halves", "split":
			return 2
		case "grid-3", "thirds":
			return 3
		case "grid-4", "fourths":
			return 4
		case "grid-5":
			return min(5, n)
		}
	}
	if n <= 0 {
		return 1
	}
	return min(n, 3)
}
