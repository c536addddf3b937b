package io

import (
	"fmt"
	"io"
	"os"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

// WriteLayout encodes a deck as indented JSON and writes it to w.
// The output can be re-imported with [ReadLayout] for round-trip rendering.
func WriteLayout(d *deck.Deck, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes a deck to a JSON file at path.
// This is a convenience wrapper around [WriteLayout] for file-based output.
func ExportLayout(d *deck.Deck, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(d, f)
}
