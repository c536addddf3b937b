package deck

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color stored as six uppercase hex digits ("0078D4").
// The zero value means "unset" and lets a default apply.
type Color string

// Brand and chrome colors used across the layout.
const (
	Black      Color = "000000"
	White      Color = "FFFFFF"
	Blue       Color = "0078D4"
	Cyan       Color = "50E6FF"
	Green      Color = "00CC6A"
	Orange     Color = "FF9F0A"
	Red        Color = "FF453A"
	Purple     Color = "8B5CF6"
	Gray70     Color = "B3B3B3"
	Gray50     Color = "808080"
	DarkGray   Color = "1A1A1A"
	BorderGray Color = "333333"
	HeaderFill Color = "0D0D0D"
	StripeFill Color = "121212"
)

// Syntax colors for code blocks.
const (
	CodeBackground Color = "0D1117"
	CodeGreen      Color = "4ADE80"
	CodeBlue       Color = "60A5FA"
	CodeYellow     Color = "FBBF24"
	CodeGray       Color = "6B7380"
	CodePurple     Color = "C084FC"
	CodeString     Color = "FBBF24"
	CodeDefault    Color = "E6E6E6"
)

// ParseColor parses "#rgb", "#rrggbb", "rgb" or "rrggbb".
// It reports false for anything else.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return "", false
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return "", false
	}
	return FromColorful(c), true
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	return Color(strings.ToUpper(strings.TrimPrefix(c.Clamped().Hex(), "#")))
}

// IsZero reports whether the color is unset.
func (c Color) IsZero() bool { return c == "" }

// Or returns c, or fallback when c is unset.
func (c Color) Or(fallback Color) Color {
	if c.IsZero() {
		return fallback
	}
	return c
}

// Colorful returns the color as a go-colorful value. Unset or malformed
// colors convert to black.
func (c Color) Colorful() colorful.Color {
	col, err := colorful.Hex("#" + string(c))
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// RGB255 returns the 8-bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return c.Colorful().RGB255()
}

// CSS returns the color in "#rrggbb" form for SVG output.
func (c Color) CSS() string {
	if c.IsZero() {
		return "none"
	}
	return "#" + strings.ToLower(string(c))
}
