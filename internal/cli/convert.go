package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/ramparte/amplifier-stories/pkg/errors"
	"github.com/ramparte/amplifier-stories/pkg/pipeline"
)

// renderFlags are shared by convert and render.
type renderFlags struct {
	formats  string
	title    string
	theme    string
	workers  int
	pngScale float64
	slides   []int
	noCache  bool
	refresh  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output formats: "+strings.Join(pipeline.FormatNames(), ","))
	cmd.Flags().StringVar(&f.title, "title", "", "presentation title (pptx)")
	cmd.Flags().StringVar(&f.theme, "theme", "", "theme name or .toml path")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "concurrent slide layouts")
	cmd.Flags().Float64Var(&f.pngScale, "png-scale", 0, "PNG preview scale")
	cmd.Flags().IntSliceVar(&f.slides, "slides", nil, "limit svg/png/pdf previews to these slide numbers")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// options merges flags over the config's render defaults.
func (f *renderFlags) options(c *CLI, cfg *Config) (pipeline.Options, error) {
	opts, err := c.baseOptions(cfg, f.theme)
	if err != nil {
		return opts, err
	}
	opts.Formats = parseFormats(f.formats, cfg.Render.Formats)
	opts.Title = f.title
	opts.Slides = f.slides
	opts.Refresh = f.refresh
	if f.workers > 0 {
		opts.Workers = f.workers
	}
	if f.pngScale > 0 {
		opts.PNGScale = f.pngScale
	}
	return opts, nil
}

// convertCommand runs the whole pipeline: HTML in, presentation out.
func (c *CLI) convertCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "convert <input.html> [output.pptx]",
		Short: "Convert an HTML deck to PowerPoint",
		Long: `Convert an HTML deck to PowerPoint and optional previews.

The output defaults to the input path with a .pptx extension. With several
formats, the output path is a base name and each format gets its extension.`,
		Example: `  html2pptx convert deck.html
  html2pptx convert deck.html out/talk.pptx --title "Q3 Review"
  html2pptx convert deck.html -f pptx,png --slides 1,2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return c.runConvert(cmd, args[0], output, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, input, output string, flags renderFlags) error {
	ctx := cmd.Context()
	cfg, err := c.Config()
	if err != nil {
		return err
	}
	opts, err := flags.options(c, cfg)
	if err != nil {
		return err
	}
	html, err := readInput(input)
	if err != nil {
		return err
	}
	opts.Source = input
	opts.HTML = html
	if opts.Title == "" {
		opts.Title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	paths := outputPaths(input, output, opts.Formats)

	printInfo("Converting %s", input)
	prog := newProgress(loggerFromContext(ctx))
	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Laying out slides")
	spin.Start()
	result, err := runner.Execute(ctx, opts)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	for _, f := range opts.Formats {
		if err := writeArtifact(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
		printFile(paths[f])
	}
	prog.done(fmt.Sprintf("Converted %s", plural(result.Stats.Slides, "slide")))
	printSuccess("Wrote %s", plural(result.Stats.Slides, "slide"))
	printStats(result.Stats.Slides, result.Stats.Commands, len(result.Warnings()), result.CacheInfo.LayoutHit)
	printWarnings(cmd.ErrOrStderr(), result.Warnings())
	return nil
}

// outputPaths maps each format to a file. An explicit output is used as
// given for a single format; otherwise every format shares the base name of
// output, or of input when output is empty.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	if output == "" {
		output = input
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
