package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/layout"
	"github.com/ramparte/amplifier-stories/pkg/markup"
	"github.com/ramparte/amplifier-stories/pkg/observability"
)

// Layout classifies and lays out every slide of doc using at most
// opts.Workers goroutines. The document is only read, so slides share it.
// Slides keep document order and warnings are concatenated in slide order
// once every slide is done.
func Layout(ctx context.Context, doc *markup.Document, opts Options) (*deck.Deck, error) {
	opts.SetLayoutDefaults()
	hooks := observability.Pipeline()
	st := opts.Theme.Apply(layout.DocumentStyle(doc))
	slides := doc.Slides()

	hooks.OnLayoutStart(ctx, len(slides))
	start := time.Now()

	d := deck.New()
	if len(slides) == 0 {
		d.Warnings = append(d.Warnings, layout.NoSlidesWarning)
		hooks.OnLayoutComplete(ctx, 0, len(d.Warnings), time.Since(start), nil)
		return d, nil
	}

	results := make([]layout.Result, len(slides))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, s := range slides {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := layout.LaySlide(classify.Classify(s), st)
			results[i] = res
			hooks.OnSlideLaidOut(gctx, i, len(res.Steps), res.Scale)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		hooks.OnLayoutComplete(ctx, len(slides), 0, time.Since(start), err)
		return nil, err
	}

	d.Slides = make([]deck.Slide, len(results))
	for i, res := range results {
		d.Slides[i] = res.Slide
		d.Warnings = append(d.Warnings, res.Warnings...)
	}
	hooks.OnLayoutComplete(ctx, len(d.Slides), len(d.Warnings), time.Since(start), nil)
	return d, nil
}
