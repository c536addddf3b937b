// Package pipeline provides the HTML to PPTX conversion pipeline.
//
// This package implements the complete parse → layout → render pipeline
// used by the CLI and the HTTP server. By centralizing this logic, both
// entry points share defaults, caching and logging.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Build the element tree of an HTML deck
//  2. Layout: Classify every slide and lay it out on the 10x5.625 canvas
//  3. Render: Serialize the layout (PPTX, SVG, PNG, PDF, JSON)
//
// Slides are laid out concurrently on a bounded worker pool. Results land
// in document order and warnings are reported in slide order.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    HTML:    html,
//	    Formats: []string{"pptx"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pptx := result.Artifacts["pptx"]
//
// Run individual stages:
//
//	d, err := runner.Layout(ctx, opts)
//	artifacts, err := runner.Render(ctx, d, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	jsoniter "github.com/json-iterator/go"

	"github.com/ramparte/amplifier-stories/pkg/buildinfo"
	"github.com/ramparte/amplifier-stories/pkg/cache"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/errors"
	"github.com/ramparte/amplifier-stories/pkg/style"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Default values shared by the CLI and the server.
const (
	// DefaultWorkers bounds concurrent slide layout.
	DefaultWorkers = 4

	// DefaultPNGScale renders PNG previews at 2x.
	DefaultPNGScale = 2.0

	// MaxWorkers caps Workers regardless of configuration.
	MaxWorkers = 64
)

// Format constants for output formats.
const (
	FormatPPTX = "pptx"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormat is produced when no format is requested.
const DefaultFormat = FormatPPTX

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPPTX: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatPPTX: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Options contains all configuration for a conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source names the input in logs, e.g. a file path.
	Source string `json:"source,omitempty"`
	// HTML is the deck to convert.
	HTML []byte `json:"-"`

	// Layout options
	Workers int          `json:"workers,omitempty"`
	Theme   *style.Theme `json:"-"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
	// Slides restricts SVG, PNG and PDF previews to 1-based slide numbers.
	Slides []int `json:"slides,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Deck is the laid-out presentation.
	Deck *deck.Deck

	// HTMLHash and LayoutHash are the content hashes used as cache keys.
	HTMLHash   string
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Warnings returns the layout warnings in slide order.
func (r *Result) Warnings() []string {
	if r.Deck == nil {
		return nil
	}
	return r.Deck.Warnings
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Slides     int
	Commands   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return &errors.FormatError{Format: format, Valid: FormatNames()}
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the input and applies layout defaults.
func (o *Options) ValidateForLayout() error {
	if len(strings.TrimSpace(string(o.HTML))) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "html is required")
	}
	o.SetLayoutDefaults()
	return nil
}

// SetLayoutDefaults sets default values for layout.
func (o *Options) SetLayoutDefaults() {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	o.Workers = min(o.Workers, MaxWorkers)
	if o.Source == "" {
		o.Source = "-"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates formats and sets render defaults.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Theme:   themeKey(o.Theme),
		Version: buildinfo.Version,
	}
}

// ArtifactKeyOpts returns cache key options for rendering one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Theme: themeKey(o.Theme)}
	switch format {
	case FormatPPTX:
		opts.Title = o.Title
	case FormatPNG:
		opts.PNGScale = o.PNGScale
	}
	return opts
}

// themeKey identifies a theme by content so edits invalidate the cache.
func themeKey(t *style.Theme) string {
	if t == nil {
		return ""
	}
	data, err := json.Marshal(t)
	if err != nil {
		return t.String()
	}
	return cache.Hash(data)
}
