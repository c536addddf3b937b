package io

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReadLayout decodes a JSON layout from r.
//
// The input is the document written by [WriteLayout]: a deck with
// "width", "height", "slides" and optional "warnings". A missing canvas
// size defaults to the standard 10x5.625 inches.
//
// ReadLayout returns an error if:
//   - The JSON is malformed
//   - A command's kind does not match its payload
//   - A table row has a different cell count than the table has columns
//
// Errors name the slide and command at fault. ReadLayout does not close r.
func ReadLayout(r io.Reader) (*deck.Deck, error) {
	var d deck.Deck
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if d.Width == 0 || d.Height == 0 {
		d.Width, d.Height = deck.Width, deck.Height
	}
	for _, s := range d.Slides {
		for i, c := range s.Commands {
			if err := validate(c); err != nil {
				return nil, fmt.Errorf("slide %d command %d: %w", s.Index, i, err)
			}
		}
	}
	return &d, nil
}

func validate(c deck.Command) error {
	switch c.Kind {
	case deck.KindText:
		if c.Text == nil {
			return fmt.Errorf("text command without text")
		}
	case deck.KindShape:
		if c.Shape == nil {
			return fmt.Errorf("shape command without shape")
		}
	case deck.KindTable:
		if c.Table == nil {
			return fmt.Errorf("table command without table")
		}
		for r, row := range c.Table.Rows {
			if len(row) != len(c.Table.ColWidths) {
				return fmt.Errorf("row %d has %d cells, want %d", r, len(row), len(c.Table.ColWidths))
			}
		}
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	return nil
}

// ImportLayout reads a JSON layout file at path.
//
// ImportLayout returns the same validation errors as [ReadLayout]; the
// error wraps the underlying cause with the file path for context.
func ImportLayout(path string) (*deck.Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := ReadLayout(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
