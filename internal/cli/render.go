package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	deckio "github.com/ramparte/amplifier-stories/pkg/io"
)

// renderCommand renders a layout JSON file written by the layout command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a layout JSON file to pptx, svg, png, pdf or json",
		Example: `  html2pptx render deck.layout.json
  html2pptx render deck.layout.json -f svg,png --slides 3
  html2pptx render deck.layout.json -f pdf -o out/deck.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]

			cfg, err := c.Config()
			if err != nil {
				return err
			}
			opts, err := flags.options(c, cfg)
			if err != nil {
				return err
			}
			d, err := deckio.ImportLayout(input)
			if err != nil {
				return err
			}
			if opts.Title == "" {
				opts.Title = strings.TrimSuffix(filepath.Base(input), ".layout.json")
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+strings.Join(opts.Formats, ", "))
			spin.Start()
			artifacts, _, hit, err := runner.RenderWithCacheInfo(ctx, d, opts)
			spin.Stop()
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			base := strings.TrimSuffix(input, ".layout.json")
			paths := outputPaths(base, output, opts.Formats)
			for _, f := range opts.Formats {
				if filepath.Clean(paths[f]) == filepath.Clean(input) {
					return fmt.Errorf("render: %s output would overwrite %s; pass -o", f, input)
				}
			}
			for _, f := range opts.Formats {
				if err := writeArtifact(paths[f], artifacts[f]); err != nil {
					return err
				}
			}
			prog.done(fmt.Sprintf("Rendered %s", strings.Join(opts.Formats, ", ")))
			printSuccess("Rendered %s", plural(len(d.Slides), "slide"))
			for _, f := range opts.Formats {
				printFile(paths[f])
			}
			printStats(len(d.Slides), d.CommandCount(), len(d.Warnings), hit)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base name")
	return cmd
}
