package transform

import (
	"fmt"
	"math"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

const (
	// MinScale bounds how far overflowing content is squeezed.
	MinScale = 0.40

	// DefaultStart is the anchor used when no command begins below it.
	DefaultStart = 0.3

	// bottomMargin is kept free below compressed content.
	bottomMargin = 0.1
)

// Compress rescales a slide whose content runs past height. Commands that
// start at or below the anchor (the highest top not above DefaultStart)
// move toward it by the scale factor and, except for tables, shrink by it.
//
// It returns the applied scale, 1 when the slide fits, and a warning when
// the scale had to be clamped to MinScale or content still ends past height.
func Compress(s *deck.Slide, height float64) (scale float64, warning string) {
	bottom := s.Bottom()
	if bottom <= height {
		return 1, ""
	}

	start := math.Inf(1)
	for _, c := range s.Commands {
		if c.Box.Top >= DefaultStart {
			start = min(start, c.Box.Top)
		}
	}
	if math.IsInf(start, 1) {
		start = DefaultStart
	}
	if bottom <= start {
		return 1, ""
	}

	scale = (height - bottomMargin - start) / (bottom - start)
	if scale >= 1 {
		return 1, ""
	}
	if scale < MinScale {
		scale = MinScale
		warning = fmt.Sprintf("Slide %d: severe overflow — content scaled to %d%%", s.Index, int(math.Round(MinScale*100)))
	}

	for i := range s.Commands {
		c := &s.Commands[i]
		if c.Box.Top < start {
			continue
		}
		c.Box.Top = start + (c.Box.Top-start)*scale
		if c.Kind != deck.KindTable {
			c.Box.Height *= scale
		}
	}
	if warning == "" && s.Bottom() > height {
		warning = fmt.Sprintf("Slide %d: content still overflows after compression", s.Index)
	}
	return scale, warning
}
