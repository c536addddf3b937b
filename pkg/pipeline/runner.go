package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ramparte/amplifier-stories/pkg/cache"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	deckio "github.com/ramparte/amplifier-stories/pkg/io"
	"github.com/ramparte/amplifier-stories/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{RunID: uuid.NewString()}
	opts.Logger = opts.Logger.With("run", result.RunID[:8])

	layoutStart := time.Now()
	d, htmlHash, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Deck = d
	result.HTMLHash = htmlHash
	result.Stats.Slides = len(d.Slides)
	result.Stats.Commands = d.CommandCount()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("laid out slides",
		"slides", result.Stats.Slides,
		"commands", result.Stats.Commands,
		"warnings", len(d.Warnings),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, layoutHash, renderHit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = layoutHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo parses and lays out opts.HTML, or loads the layout
// from cache. It returns the deck, the hash of the HTML and whether the
// cache was hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (*deck.Deck, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, "", false, err
	}

	htmlHash := cache.Hash(opts.HTML)
	key := r.Keyer.LayoutKey(htmlHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if d, ok := r.loadLayout(ctx, key, opts.Logger); ok {
			return d, htmlHash, true, nil
		}
	}

	parseStart := time.Now()
	doc, err := Parse(ctx, opts)
	if err != nil {
		return nil, "", false, err
	}
	opts.Logger.Info("parsed deck",
		"source", opts.Source,
		"slides", len(doc.Slides()),
		"duration", time.Since(parseStart))

	d, err := Layout(ctx, doc, opts)
	if err != nil {
		return nil, "", false, err
	}

	if data, err := encodeLayout(d); err == nil {
		r.store(ctx, "layout", key, data, r.ttl(cache.TTLLayout), opts.Logger)
	}
	return d, htmlHash, false, nil
}

// Layout is LayoutWithCacheInfo without the cache details.
func (r *Runner) Layout(ctx context.Context, opts Options) (*deck.Deck, error) {
	d, _, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return d, err
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts per format. It returns the artifacts, the layout hash and
// whether every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *deck.Deck, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	layoutData, err := encodeLayout(d)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh && !r.previewSubset(format, opts) {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, ok := r.load(ctx, "artifact", key, opts.Logger); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, layoutHash, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, d, renderOpts)
	if err != nil {
		return nil, "", false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if !r.previewSubset(format, opts) {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			r.store(ctx, "artifact", key, data, r.ttl(cache.TTLArtifact), opts.Logger)
		}
	}
	return artifacts, layoutHash, false, nil
}

// Render is RenderWithCacheInfo without the cache details.
func (r *Runner) Render(ctx context.Context, d *deck.Deck, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// previewSubset reports whether format is a preview limited to some
// slides. Those are not cached since the slide list is not in the key.
func (r *Runner) previewSubset(format string, opts Options) bool {
	return len(opts.Slides) > 0 && format != FormatPPTX && format != FormatJSON
}

func (r *Runner) loadLayout(ctx context.Context, key string, logger *log.Logger) (*deck.Deck, bool) {
	data, ok := r.load(ctx, "layout", key, logger)
	if !ok {
		return nil, false
	}
	d, err := deckio.ReadLayout(bytes.NewReader(data))
	if err != nil {
		logger.Debug("discarding cached layout", "err", err)
		return nil, false
	}
	return d, true
}

// load reads a cache entry. Backend errors count as misses.
func (r *Runner) load(ctx context.Context, kind, key string, logger *log.Logger) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "kind", kind, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return data, true
}

// store writes a cache entry. A failed write is logged and otherwise
// ignored; the caller already has the value.
func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func encodeLayout(d *deck.Deck) ([]byte, error) {
	var buf bytes.Buffer
	if err := deckio.WriteLayout(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
