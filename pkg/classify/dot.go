package classify

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT renders classification plans as a Graphviz digraph: one node per
// slide with an edge to each block in render order. Silenced elements are
// drawn dashed.
func ToDOT(plans []Plan) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Plan {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n\n")

	for _, p := range plans {
		slideID := fmt.Sprintf("s%d", p.Slide.Index)
		fmt.Fprintf(&buf, "  %s [label=%q, shape=folder, fillcolor=\"#e6f2fb\"];\n", slideID, fmt.Sprintf("slide %d", p.Slide.Index))
		prev := slideID
		for i, b := range p.Blocks {
			id := fmt.Sprintf("%s_b%d", slideID, i)
			fmt.Fprintf(&buf, "  %s [label=%q];\n", id, blockLabel(b))
			fmt.Fprintf(&buf, "  %s -> %s;\n", prev, id)
			prev = id
		}
		for i, n := range p.Silenced {
			id := fmt.Sprintf("%s_x%d", slideID, i)
			fmt.Fprintf(&buf, "  %s [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", id, n.String())
			fmt.Fprintf(&buf, "  %s -> %s [style=dashed];\n", slideID, id)
		}
		buf.WriteString("\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func blockLabel(b Block) string {
	var lines []string
	lines = append(lines, b.Archetype.String())
	for _, p := range b.Header {
		lines = append(lines, p.Kind.String()+": "+p.Node.String())
	}
	for _, n := range b.Nodes {
		if n == nil {
			lines = append(lines, "(none)")
			continue
		}
		lines = append(lines, n.String())
	}
	return strings.Join(lines, "\n")
}

// RenderSVG lays out a DOT graph with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
