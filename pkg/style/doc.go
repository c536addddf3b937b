// Package style resolves a deck's colors and fonts.
//
// A [Palette] is built once per document from the CSS custom properties
// declared in its <style> blocks ("--accent: #ff6b00"). Seven semantic
// keywords are always present: blue, success, warning, danger, accent, text
// and muted. Malformed values fall back to the built-in brand colors.
//
// Elements may override colors through marker classes ([ClassColor]) or an
// inline style attribute ([Palette.InlineColor]), which is parsed with
// github.com/aymerick/douceur.
//
// A TOML [Theme] layered on top with [Theme.Apply] replaces palette entries
// and font families:
//
//	name = "contrast"
//	accent = "#ffcc00"
//
//	[colors]
//	success = "#22c55e"
//
//	[fonts]
//	body = "Segoe UI"
//	code = "Cascadia Code"
package style
