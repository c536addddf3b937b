package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/ramparte/amplifier-stories/pkg/errors"
	"github.com/ramparte/amplifier-stories/pkg/markup"
	"github.com/ramparte/amplifier-stories/pkg/observability"
)

// Parse builds the element tree of opts.HTML.
func Parse(ctx context.Context, opts Options) (*markup.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Source, len(opts.HTML))
	start := time.Now()

	doc, err := markup.Parse(bytes.NewReader(opts.HTML))
	var slides int
	if err == nil {
		slides = len(doc.Slides())
	}
	hooks.OnParseComplete(ctx, opts.Source, slides, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", opts.Source)
	}
	return doc, nil
}
