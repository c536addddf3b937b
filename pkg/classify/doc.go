// Package classify assigns every content element of a slide to one visual
// archetype.
//
// Classification is a single pass over [Detectors], a priority-ordered
// table. Each detector queries the slide for its selector and claims the
// matches that are still unhandled; claiming marks the element and its whole
// subtree in a [Set], so a card inside a grid is rendered by the grid and
// never again as a standalone card. The relative order of the table decides
// which archetype wins for an element that several detectors match.
//
// The result is a [Plan]: the blocks of one slide in render order. The
// layout package renders a plan; the inspect command prints or graphs it.
package classify
