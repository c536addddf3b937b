package sink

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

// rsvgConvert is the librsvg converter that turns the SVG preview into PDF.
const rsvgConvert = "rsvg-convert"

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the SVG preview of d and converts it with rsvg-convert
// (apt install librsvg2-bin, brew install librsvg).
func RenderPDF(ctx context.Context, d *deck.Deck, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	return ToPDF(ctx, RenderSVG(d, r.svgOpts...))
}

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	if _, err := exec.LookPath(rsvgConvert); err != nil {
		return nil, fmt.Errorf("pdf: %s not found on PATH (install librsvg)", rsvgConvert)
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, rsvgConvert, "--format", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdf: %s: %w: %s", rsvgConvert, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
