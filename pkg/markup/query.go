package markup

import (
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
)

var selectors sync.Map // string -> cascadia.SelectorGroup

// compile returns the cached matcher for sel. Selectors are program
// constants, so a malformed one panics like regexp.MustCompile.
func compile(sel string) cascadia.Matcher {
	if m, ok := selectors.Load(sel); ok {
		return m.(cascadia.SelectorGroup)
	}
	g, err := cascadia.ParseGroup(sel)
	if err != nil {
		panic("markup: bad selector " + sel + ": " + err.Error())
	}
	m, _ := selectors.LoadOrStore(sel, g)
	return m.(cascadia.SelectorGroup)
}

// FindAll returns the strict descendants matching sel, in document order.
func (n *Node) FindAll(sel string) []*Node {
	m := compile(sel)
	var out []*Node
	for _, raw := range cascadia.QueryAll(n.raw, m) {
		if raw == n.raw {
			continue
		}
		if el := n.doc.index[raw]; el != nil {
			out = append(out, el)
		}
	}
	return out
}

// Find returns the first descendant matching sel, or nil.
func (n *Node) Find(sel string) *Node {
	m := compile(sel)
	for _, el := range n.Descendants() {
		if m.Match(el.raw) {
			return el
		}
	}
	return nil
}

// Matches reports whether the node itself matches sel.
func (n *Node) Matches(sel string) bool {
	return compile(sel).Match(n.raw)
}

// FindClass returns the first descendant carrying any of classes, or nil.
func (n *Node) FindClass(classes ...string) *Node {
	if len(classes) == 0 {
		return nil
	}
	return n.Find(ClassSelector(classes...))
}

// FindAllClass returns every descendant carrying any of classes.
func (n *Node) FindAllClass(classes ...string) []*Node {
	if len(classes) == 0 {
		return nil
	}
	return n.FindAll(ClassSelector(classes...))
}

// ClassSelector builds ".a, .b, .c".
func ClassSelector(classes ...string) string {
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = "." + c
	}
	return strings.Join(parts, ", ")
}
