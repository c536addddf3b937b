package extract

import (
	"golang.org/x/net/html"

	"github.com/ramparte/amplifier-stories/pkg/markup"
)

const textNode = html.TextNode

// Table is a grid of cell texts. Rows may be ragged; renderers pad them.
type Table struct {
	Rows   [][]string
	Header bool // first row is a header row
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// ReadTable reads an HTML <table>. A row made of <th> cells marks the
// table as having a header.
func ReadTable(n *markup.Node) Table {
	var t Table
	for _, tr := range n.FindAll("tr") {
		if ths := tr.FindAll("th"); len(ths) > 0 {
			t.Header = true
			t.Rows = append(t.Rows, texts(ths))
			continue
		}
		if tds := tr.FindAll("td"); len(tds) > 0 {
			t.Rows = append(t.Rows, texts(tds))
		}
	}
	return t
}

// ReadComparisonTable reads a comparison-table. If it wraps a <table> that
// is read and native is true. Otherwise rows come from .header cells
// followed by zipped .left/.right pairs.
func ReadComparisonTable(n *markup.Node) (t Table, native bool) {
	if inner := n.Find("table"); inner != nil {
		return ReadTable(inner), true
	}
	headers := n.FindAllClass("header")
	if len(headers) > 0 {
		t.Header = true
		t.Rows = append(t.Rows, texts(headers))
	}
	lefts, rights := n.FindAllClass("left"), n.FindAllClass("right")
	for i := 0; i < min(len(lefts), len(rights)); i++ {
		t.Rows = append(t.Rows, []string{Text(lefts[i]), Text(rights[i])})
	}
	return t, false
}

func texts(nodes []*markup.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = Text(n)
	}
	return out
}
