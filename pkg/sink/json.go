package sink

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithCompact disables indentation.
func WithCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// RenderJSON exports the laid-out deck: every slide's commands with their
// boxes, text, tables and shapes, plus the deck warnings. The output can be
// read back with [io.ReadLayout] and rendered again.
//
// [io.ReadLayout]: github.com/ramparte/amplifier-stories/pkg/io.ReadLayout
func RenderJSON(d *deck.Deck, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	var (
		data []byte
		err  error
	)
	if r.compact {
		data, err = json.Marshal(d)
	} else {
		data, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return append(data, '\n'), nil
}
