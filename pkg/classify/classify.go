package classify

import (
	"unicode/utf8"

	"github.com/ramparte/amplifier-stories/pkg/extract"
	"github.com/ramparte/amplifier-stories/pkg/markup"
)

// HeaderPart is one element merged into the header frame.
type HeaderPart struct {
	Kind PartKind
	Node *markup.Node
}

// Block is one classified unit of a slide. Aggregating archetypes carry
// several nodes; GoodBad carries exactly two ([good, bad]), either of which
// may be nil; Header carries its parts instead of nodes.
type Block struct {
	Archetype Archetype
	Nodes     []*markup.Node
	Header    []HeaderPart
}

// Node returns the block's first node, or nil.
func (b Block) Node() *markup.Node {
	for _, n := range b.Nodes {
		if n != nil {
			return n
		}
	}
	if len(b.Header) > 0 {
		return b.Header[0].Node
	}
	return nil
}

// Elements returns every non-nil node the block renders, header parts
// included.
func (b Block) Elements() []*markup.Node {
	var out []*markup.Node
	for _, p := range b.Header {
		out = append(out, p.Node)
	}
	for _, n := range b.Nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Plan is the classification of one slide: its blocks in render order.
type Plan struct {
	Slide  markup.Slide
	Blocks []Block
	// Silenced holds elements consumed without rendering.
	Silenced []*markup.Node
	// Handled holds every element claimed by a block, descendants included.
	Handled *Set
}

// Count returns the number of blocks of archetype a.
func (p Plan) Count(a Archetype) int {
	n := 0
	for _, b := range p.Blocks {
		if b.Archetype == a {
			n++
		}
	}
	return n
}

// Classify runs Detectors over a slide in priority order.
func Classify(s markup.Slide) Plan {
	c := &classifier{
		root:    s.Node,
		handled: NewSet(s.Node.Document().Len()),
	}
	for _, d := range Detectors {
		c.run(d)
	}
	return Plan{Slide: s, Blocks: c.blocks, Silenced: c.silenced, Handled: c.handled}
}

type classifier struct {
	root     *markup.Node
	handled  *Set
	blocks   []Block
	silenced []*markup.Node
}

func (c *classifier) claimable(d Detector, n *markup.Node) bool {
	if c.handled.Has(n.ID()) {
		return false
	}
	return d.Accept == nil || d.Accept(n)
}

func (c *classifier) run(d Detector) {
	switch d.Mode {
	case ModeHeader:
		if parts := c.header(); len(parts) > 0 {
			c.blocks = append(c.blocks, Block{Archetype: d.Archetype, Header: parts})
		}

	case ModeEach:
		for _, n := range c.root.FindAll(d.Selector) {
			if !c.claimable(d, n) {
				continue
			}
			c.handled.MarkTree(n)
			if d.Silent != nil && d.Silent(n) {
				c.silenced = append(c.silenced, n)
				continue
			}
			c.blocks = append(c.blocks, Block{Archetype: d.Archetype, Nodes: []*markup.Node{n}})
		}

	case ModeAggregate:
		var nodes []*markup.Node
		for _, n := range c.root.FindAll(d.Selector) {
			if !c.claimable(d, n) {
				continue
			}
			c.handled.MarkTree(n)
			nodes = append(nodes, n)
		}
		if len(nodes) > 0 {
			c.blocks = append(c.blocks, Block{Archetype: d.Archetype, Nodes: nodes})
		}

	case ModePair:
		first, second := c.first(d, d.Selector), c.first(d, d.Pair)
		if first == nil && second == nil {
			return
		}
		c.blocks = append(c.blocks, Block{Archetype: d.Archetype, Nodes: []*markup.Node{first, second}})

	case ModeFallback:
		for _, n := range c.root.Children() {
			if n.Is("style", "script") || c.handled.Has(n.ID()) {
				continue
			}
			if utf8.RuneCountInString(extract.Text(n)) < 3 || c.handled.HasDescendant(n) {
				continue
			}
			c.handled.MarkTree(n)
			c.blocks = append(c.blocks, Block{Archetype: d.Archetype, Nodes: []*markup.Node{n}})
		}
	}
}

func (c *classifier) first(d Detector, sel string) *markup.Node {
	for _, n := range c.root.FindAll(sel) {
		if c.claimable(d, n) {
			c.handled.MarkTree(n)
			return n
		}
	}
	return nil
}

func (c *classifier) header() []HeaderPart {
	var parts []HeaderPart
	take := func(kind PartKind, n *markup.Node) {
		if c.handled.Has(n.ID()) || extract.Text(n) == "" {
			return
		}
		c.handled.MarkTree(n)
		parts = append(parts, HeaderPart{Kind: kind, Node: n})
	}

	for _, n := range c.root.FindAllClass("section-label") {
		take(PartLabel, n)
	}
	for _, n := range c.root.FindAllClass("section-number") {
		take(PartLabel, n)
	}
	for _, n := range c.root.FindAllClass("section-title") {
		take(PartSectionTitle, n)
	}
	for _, n := range c.root.FindAll("h1, h2") {
		if n.HasClass("section-title") {
			continue
		}
		if n.Is("h1") || n.HasAnyClass("headline", "big-text") {
			take(PartHeadline, n)
		}
	}
	for _, n := range c.root.FindAllClass("medium-headline") {
		take(PartMedium, n)
	}
	for _, n := range c.root.FindAllClass("subhead") {
		take(PartSubhead, n)
	}
	if len(parts) == 0 {
		return nil
	}

	for _, n := range c.root.Children() {
		if n.Is("style", "script") || c.handled.Has(n.ID()) {
			continue
		}
		if n.HasAnyClass(headerTriggers...) || n.Is("table") {
			break
		}
		if n.HasClass("body-text") {
			take(PartBody, n)
		}
	}
	return parts
}
