package markup

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeID identifies an element by its pre-order position in the document.
type NodeID int

// Document is a parsed HTML deck.
type Document struct {
	root  *html.Node
	nodes []*Node
	index map[*html.Node]*Node
}

// Node is an element of a Document.
type Node struct {
	doc     *Document
	raw     *html.Node
	id      NodeID
	end     NodeID
	parent  *Node
	classes []string
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := &Document{root: root, index: make(map[*html.Node]*Node)}
	doc.walk(root, nil)
	return doc, nil
}

// ParseString parses HTML from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) walk(n *html.Node, parent *Node) {
	cur := parent
	if n.Type == html.ElementNode {
		cur = &Node{
			doc:     d,
			raw:     n,
			id:      NodeID(len(d.nodes)),
			parent:  parent,
			classes: strings.Fields(attr(n, "class")),
		}
		d.nodes = append(d.nodes, cur)
		d.index[n] = cur
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c, cur)
	}
	if cur != parent {
		cur.end = NodeID(len(d.nodes))
	}
}

// Len returns the number of elements in the document.
func (d *Document) Len() int { return len(d.nodes) }

// Node returns the element with the given ID, or nil.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return d.nodes[id]
}

// Lookup maps a raw html node back to its element, or nil for non-elements.
func (d *Document) Lookup(n *html.Node) *Node { return d.index[n] }

// Root returns the <html> element.
func (d *Document) Root() *Node {
	if len(d.nodes) == 0 {
		return nil
	}
	return d.nodes[0]
}

// StyleSheets returns the text content of every <style> element.
func (d *Document) StyleSheets() []string {
	var out []string
	for _, n := range d.nodes {
		if n.raw.DataAtom == atom.Style {
			var b strings.Builder
			for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			out = append(out, b.String())
		}
	}
	return out
}

// ID returns the node's stable identity.
func (n *Node) ID() NodeID { return n.id }

// End returns one past the highest ID in the node's subtree.
func (n *Node) End() NodeID { return n.end }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Raw returns the underlying html node. Callers must not modify it.
func (n *Node) Raw() *html.Node { return n.raw }

// Tag returns the lower-case tag name.
func (n *Node) Tag() string { return n.raw.Data }

// Is reports whether the node's tag is one of tags.
func (n *Node) Is(tags ...string) bool {
	return slices.Contains(tags, n.raw.Data)
}

// Classes returns the node's class list.
func (n *Node) Classes() []string { return n.classes }

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.classes, c)
}

// HasAnyClass reports whether the node carries any of cs.
func (n *Node) HasAnyClass(cs ...string) bool {
	for _, c := range cs {
		if n.HasClass(c) {
			return true
		}
	}
	return false
}

// Attr returns the value of attribute key, or "".
func (n *Node) Attr(key string) string { return attr(n.raw, key) }

// Style returns the inline style attribute.
func (n *Node) Style() string { return n.Attr("style") }

// Parent returns the nearest element ancestor, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the element children in document order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
		if el := n.doc.index[c]; el != nil {
			out = append(out, el)
		}
	}
	return out
}

// Contains reports whether other is a strict descendant of n.
func (n *Node) Contains(other *Node) bool {
	return other != nil && other.doc == n.doc && other.id > n.id && other.id < n.end
}

// Descendants returns all strict descendant elements in document order.
func (n *Node) Descendants() []*Node {
	return n.doc.nodes[n.id+1 : n.end]
}

// Ancestor returns the nearest ancestor carrying any of classes, or nil.
func (n *Node) Ancestor(classes ...string) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.HasAnyClass(classes...) {
			return p
		}
	}
	return nil
}

// String returns a short debug form such as "div.card.wide#3".
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(n.Tag())
	for _, c := range n.classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	fmt.Fprintf(&b, "#%d", n.id)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
