// Package transform holds post-layout passes over laid-out slides.
//
// # Overflow Compression
//
// Renderers estimate text heights conservatively, so a dense slide can end
// below the canvas. [Compress] repairs this after the fact: it picks the
// first command at or below [DefaultStart] as an anchor and pulls every
// later command toward it so the lowest edge lands 0.1in above the bottom.
//
// Heights shrink with positions. Tables keep their height because their
// rows are sized by the presentation application from the text they hold.
//
// Content is never squeezed below [MinScale]; slides that would need more
// are clamped and reported with a warning.
package transform
