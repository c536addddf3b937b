package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	deckio "github.com/ramparte/amplifier-stories/pkg/io"
)

// layoutCommand exports the positioned layout of an HTML deck as JSON, for
// later rendering with the render command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		theme   string
		workers int
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout <input.html>",
		Short: "Lay out an HTML deck and write the layout JSON",
		Long: `Lay out an HTML deck and write the positioned shapes as JSON.

The output defaults to <input>.layout.json and can be rendered with
"html2pptx render".`,
		Example: `  html2pptx layout deck.html
  html2pptx layout deck.html -o deck.json && html2pptx render deck.json -f pptx,svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]

			cfg, err := c.Config()
			if err != nil {
				return err
			}
			opts, err := c.baseOptions(cfg, theme)
			if err != nil {
				return err
			}
			if opts.HTML, err = readInput(input); err != nil {
				return err
			}
			opts.Source = input
			opts.Refresh = refresh
			if workers > 0 {
				opts.Workers = workers
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			d, _, hit, err := runner.LayoutWithCacheInfo(ctx, opts)
			if err != nil {
				return fmt.Errorf("layout: %w", err)
			}

			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
			}
			if err := deckio.ExportLayout(d, output); err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Laid out %s", plural(len(d.Slides), "slide")))
			printSuccess("Layout written")
			printFile(output)
			printStats(len(d.Slides), d.CommandCount(), len(d.Warnings), hit)
			printWarnings(cmd.ErrOrStderr(), d.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <input>.layout.json)")
	cmd.Flags().StringVar(&theme, "theme", "", "theme name or .toml path")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent slide layouts")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}
