package pipeline

import (
	"context"
	"time"

	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/errors"
	"github.com/ramparte/amplifier-stories/pkg/observability"
	"github.com/ramparte/amplifier-stories/pkg/sink"
)

// Render serializes d in every requested format.
func Render(ctx context.Context, d *deck.Deck, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		if data, err = RenderFormat(ctx, d, format, opts); err != nil {
			break
		}
		artifacts[format] = data
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFormat serializes d in one format.
func RenderFormat(ctx context.Context, d *deck.Deck, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	preview := []sink.SVGOption{sink.WithSlides(opts.Slides...)}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatPPTX:
		data, err = sink.RenderPPTX(d, sink.WithTitle(opts.Title))
	case FormatSVG:
		data = sink.RenderSVG(d, preview...)
	case FormatPNG:
		data, err = sink.RenderPNG(d, sink.WithPNGSVGOptions(preview...), sink.WithScale(opts.PNGScale))
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, d, sink.WithPDFSVGOptions(preview...))
	case FormatJSON:
		data, err = sink.RenderJSON(d)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return data, nil
}
