// Package sink serializes laid-out decks.
//
// # Overview
//
// A "sink" turns a [deck.Deck] into a final output format:
//
//   - PPTX: an Office Open XML presentation, the primary output
//   - SVG: a contact-sheet preview of every slide
//   - PNG: a raster preview drawn directly with gg
//   - PDF: the SVG preview converted with rsvg-convert
//   - JSON: the layout itself, for caching and re-rendering
//
// # PPTX Output
//
// [RenderPPTX] writes a minimal package: one slide master, one blank
// layout, a theme and one slide part per slide. Every command becomes a
// shape, text box or table at its absolute position. Runs containing
// line breaks are split into runs joined by <a:br/>, and rounded
// rectangles carry the [deck.RoundedCorner] adjustment.
//
//	data, err := sink.RenderPPTX(d, sink.WithTitle("Quarterly review"))
//
// # Previews
//
// [RenderSVG] and [RenderPNG] stack slides top to bottom with a small gap.
// Text is not reflowed: each paragraph is drawn as one line clipped to its
// frame. Use [WithSlides] to preview a subset.
//
// [RenderPDF] requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
