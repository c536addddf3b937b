package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/extract"
	"github.com/ramparte/amplifier-stories/pkg/markup"
)

const (
	inspectTree = "tree"
	inspectDOT  = "dot"
	inspectSVG  = "svg"
)

// inspectCommand shows how each slide was classified into blocks.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		format      string
		output      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <input.html>",
		Short: "Show how slides are classified into blocks",
		Long: `Show the blocks recognized on each slide in render order.

Formats:
  tree  indented text tree (default)
  dot   Graphviz DOT source
  svg   graph rendered with Graphviz`,
		Example: `  html2pptx inspect deck.html
  html2pptx inspect deck.html --format svg -o plan.svg
  html2pptx inspect deck.html -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := readInput(args[0])
			if err != nil {
				return err
			}
			plans, err := classifyDeck(string(html))
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("classified deck", "slides", len(plans))

			if interactive {
				_, err := tea.NewProgram(NewSlideBrowserModel(plans), tea.WithAltScreen()).Run()
				return err
			}

			var data []byte
			switch format {
			case inspectTree:
				data = []byte(planTree(args[0], plans))
			case inspectDOT:
				data = []byte(classify.ToDOT(plans))
			case inspectSVG:
				if data, err = classify.RenderSVG(cmd.Context(), classify.ToDOT(plans)); err != nil {
					return fmt.Errorf("inspect: %w", err)
				}
			default:
				return fmt.Errorf("inspect: unknown format %q (tree, dot, svg)", format)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", inspectTree, "output format: tree, dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse slides interactively")
	return cmd
}

func classifyDeck(html string) ([]classify.Plan, error) {
	doc, err := markup.ParseString(html)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	slides := doc.Slides()
	plans := make([]classify.Plan, len(slides))
	for i, s := range slides {
		plans[i] = classify.Classify(s)
	}
	return plans, nil
}

// planTree renders plans as a treeprint tree rooted at name.
func planTree(name string, plans []classify.Plan) string {
	tree := treeprint.NewWithRoot(name)
	if len(plans) == 0 {
		tree.AddNode("(no slides)")
	}
	for _, p := range plans {
		addPlan(tree, p)
	}
	return tree.String()
}

func addPlan(tree treeprint.Tree, p classify.Plan) {
	slide := tree.AddBranch(slideLabel(p))
	for _, b := range p.Blocks {
		branch := slide.AddBranch(b.Archetype.String())
		for _, part := range b.Header {
			branch.AddNode(part.Kind.String() + ": " + nodeLabel(part.Node))
		}
		for _, n := range b.Nodes {
			if n == nil {
				branch.AddNode("(none)")
				continue
			}
			branch.AddNode(nodeLabel(n))
		}
	}
	for _, n := range p.Silenced {
		slide.AddMetaNode("silenced", nodeLabel(n))
	}
}

func slideLabel(p classify.Plan) string {
	label := fmt.Sprintf("slide %d", p.Slide.Index)
	if p.Slide.Centered {
		label += " (centered)"
	}
	if title := slideTitle(p); title != "" {
		label += " " + title
	}
	return label
}

// slideTitle returns the slide's first headline text, quoted and truncated.
func slideTitle(p classify.Plan) string {
	h := p.Slide.Node.Find("h1, h2, .headline")
	if h == nil {
		return ""
	}
	return fmt.Sprintf("%q", truncate(strings.Join(strings.Fields(extract.Text(h)), " "), 40))
}

// nodeLabel is the node's debug form followed by a text excerpt.
func nodeLabel(n *markup.Node) string {
	text := truncate(strings.Join(strings.Fields(extract.Text(n)), " "), 32)
	if text == "" {
		return n.String()
	}
	return fmt.Sprintf("%s %q", n.String(), text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
