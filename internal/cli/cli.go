// Package cli implements the html2pptx command-line interface.
//
// The commands convert HTML slide decks into PowerPoint files, export and
// re-render the intermediate layout JSON, inspect how slides are classified,
// and serve conversions over HTTP. Settings come from flags, a config file
// (~/.config/html2pptx/config.yaml) and HTML2PPTX_* environment variables.
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so pipeline stages log under one run.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ramparte/amplifier-stories/pkg/buildinfo"
	"github.com/ramparte/amplifier-stories/pkg/cache"
	"github.com/ramparte/amplifier-stories/pkg/observability"
	"github.com/ramparte/amplifier-stories/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "html2pptx"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the config file location (--config).
	ConfigPath string
	// Verbose pins debug logging over log.level.
	Verbose bool

	out    io.Writer
	config *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// EnableTracing logs pipeline, cache and HTTP events at debug level.
func (c *CLI) EnableTracing() {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
}

// Config loads the configuration on first use.
func (c *CLI) Config() (*Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := LoadConfig(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if !c.Verbose {
		c.Logger.SetLevel(parseLevel(cfg.Log.Level))
	}
	if cfg.Log.File != "" {
		c.Logger.SetOutput(io.MultiWriter(c.out, rotatingFile(cfg.Log)))
	}
	if cfg.file != "" {
		c.Logger.Debug("loaded config", "file", cfg.file)
	}
	c.config = cfg
	return cfg, nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "html2pptx converts HTML slide decks into PowerPoint",
		Long:         `html2pptx reads a deck of <div class="slide"> sections, recognizes the visual components on each slide and places them as native shapes, text frames and tables on 13.333" x 7.5" PowerPoint slides.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/html2pptx/config.yaml)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Namespace+":")
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = cfg.Cache.TTL
	return r, nil
}

// newCache opens the backend named by cache.backend. An unusable file cache
// directory degrades to no caching; remote backends must be reachable.
func (c *CLI) newCache(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   appName + ":",
		})
	case backendMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        cfg.Cache.Mongo.URI,
			Database:   cfg.Cache.Mongo.Database,
			Collection: cfg.Cache.Mongo.Collection,
		})
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/html2pptx/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
// Empty input yields fallback.
func parseFormats(s string, fallback []string) []string {
	if strings.TrimSpace(s) == "" {
		if len(fallback) == 0 {
			return []string{pipeline.DefaultFormat}
		}
		return fallback
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// baseOptions builds pipeline options from the config's render section.
func (c *CLI) baseOptions(cfg *Config, theme string) (pipeline.Options, error) {
	th, err := cfg.LoadTheme(theme)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Workers:  cfg.Render.Workers,
		Theme:    th,
		Formats:  cfg.Render.Formats,
		PNGScale: cfg.Render.PNGScale,
		Logger:   c.Logger,
	}, nil
}
