// Package extract pulls renderable content out of deck markup.
//
// Every function here is a pure read of a [markup.Node]: nothing mutates the
// parsed tree, and a nil or empty node yields the zero value, which
// renderers treat as "emit nothing".
//
// [Text] flattens an element to plain text the way a browser would show it
// without layout: <br> breaks lines, whitespace collapses, the result is NFC
// normalized. [RichText] keeps bold, italic and the two color spans the deck
// vocabulary knows (span.highlight, span.check). [CodeRuns] keeps whitespace
// intact and maps syntax span classes to code colors.
//
// The remaining readers ([ReadCard], [ReadFlow], [ReadStats], [ReadTable],
// ...) each know the class vocabulary of one block kind.
package extract
