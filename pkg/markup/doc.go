// Package markup parses an HTML deck into an immutable element tree with
// stable node identities.
//
// # Overview
//
// [Parse] reads HTML with golang.org/x/net/html and indexes every element in
// document (pre-order) order. Each element becomes a [Node] whose [NodeID] is
// its position in that order. Because the numbering is pre-order, the
// descendants of a node occupy the contiguous ID range
// (node.ID(), node.End()), which makes "is X inside Y" a pair of integer
// comparisons and lets callers mark whole subtrees in a bitset.
//
// # Queries
//
// Selector queries are compiled with github.com/andybalholm/cascadia and
// cached per selector string. [Node.FindAll] returns strict descendants in
// document order; the node itself is never part of its own result.
//
//	doc, _ := markup.ParseString(src)
//	for _, s := range doc.Slides() {
//	    for _, card := range s.Node.FindAll(".card, .tool-card") {
//	        fmt.Println(card.ID(), card.Classes())
//	    }
//	}
//
// The tree is never mutated after Parse returns, so a Document may be shared
// by concurrent readers.
package markup
