// Package io provides JSON import and export for laid-out decks.
//
// # Overview
//
// Layout is the expensive, deterministic half of a conversion; rendering
// a PPTX from a layout is cheap. Serializing the layout enables:
//
//   - Splitting conversion into "layout" and "render" CLI stages
//   - Caching layouts by the content hash of their HTML
//   - Inspecting or hand-editing positions before rendering
//
// # JSON Format
//
//	{
//	  "width": 10,
//	  "height": 5.625,
//	  "slides": [
//	    {
//	      "index": 1,
//	      "background": "000000",
//	      "commands": [
//	        {
//	          "kind": "text",
//	          "box": {"left": 0.8, "top": 0.5, "width": 8.4, "height": 1.1},
//	          "text": {
//	            "paragraphs": [{"runs": [{"text": "Welcome", "bold": true, "size": 48}]}],
//	            "auto_size": "fit_shape",
//	            "anchor": "middle",
//	            "insets": {"left": 0.12, "right": 0.12, "top": 0.08, "bottom": 0.08},
//	            "word_wrap": true
//	          }
//	        }
//	      ]
//	    }
//	  ],
//	  "warnings": []
//	}
//
// Positions are in inches, font sizes and paragraph spacing in points,
// colors are six uppercase hex digits. A command's "kind" is one of
// "text", "shape" or "table" and selects which payload is present; shapes
// may carry a "text" payload as well.
//
// # Usage
//
//	if err := io.ExportLayout(d, "deck.layout.json"); err != nil {
//	    return err
//	}
//	d, err := io.ImportLayout("deck.layout.json")
package io
