// Package deck defines the laid-out slide model: absolutely positioned render
// commands on a fixed-size canvas.
//
// A [Deck] is the output of layout and the input of every sink. It holds one
// [Slide] per source slide, in document order, and each slide holds an ordered
// list of [Command] values. A command is exactly one of three kinds:
//
//   - [KindText]: a text frame with paragraphs of formatted runs
//   - [KindTable]: a native table with per-cell paragraphs, fill and border
//   - [KindShape]: a filled shape (rectangle, rounded rectangle, right arrow),
//     optionally carrying its own text body
//
// All geometry is expressed in inches. Font sizes and border widths are points.
// Colors are six-digit uppercase hex strings without the leading '#'.
//
// Commands are write-only from the layout's point of view. The only consumer
// that reads them back inside the core is the overflow compressor, which needs
// each command's [Box].
package deck
