// Package pkg holds the libraries behind html2pptx, which turns HTML slide
// decks into absolutely positioned PowerPoint layouts.
//
// # Data flow
//
//	HTML deck
//	     ↓
//	[markup]    parse, slide discovery, selector queries
//	     ↓
//	[classify]  per-slide archetype detection in priority order
//	     ↓
//	[extract]   fields and rich text read from classified elements
//	     ↓
//	[layout]    block placement on the 10x5.625 in canvas, then [transform]
//	            compresses overflowing slides
//	     ↓
//	[deck]      render commands: shapes, text frames and tables
//	     ↓
//	[sink]      PPTX, SVG, PNG, PDF and JSON output
//
// [pipeline] runs these stages with a worker pool and a [cache] in front of
// layout and rendering. [io] reads and writes the layout JSON so a layout can
// be rendered later. [style] holds the palette and TOML themes, [errors] the
// coded error type, [observability] the pipeline, cache and HTTP hooks, and
// [buildinfo] the version stamped at link time.
//
// # Quick start
//
//	doc, _ := markup.ParseString(html)
//	d := layout.LayDeck(doc, layout.DocumentStyle(doc))
//	pptx, _ := sink.RenderPPTX(d, sink.WithTitle("Q3 Review"))
//
// Most callers use the pipeline instead, which adds caching and concurrency:
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := r.Execute(ctx, pipeline.Options{HTML: html})
package pkg
