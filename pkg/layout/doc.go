// Package layout turns classified slides into absolutely positioned draw
// commands.
//
// Each slide is walked top to bottom with a [Cursor]. Every block of a
// [classify.Plan] is handed to the renderer for its archetype, which
// emits commands at the cursor and reports where the next block starts.
// The cursor only moves down, and an element drawn once is never drawn
// again even if a later block encloses it.
//
// After all blocks are drawn the slide is passed to [transform.Compress],
// which scales content up from the first block when it runs past the
// bottom of the canvas.
//
// Geometry is in inches on the 10 x 5.625 canvas defined by package deck.
// Content spans [ContentLeft, ContentLeft+ContentWidth].
package layout
