package style

import (
	"regexp"
	"strings"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

// Semantic color keywords every palette defines.
const (
	KeyBlue    = "blue"
	KeySuccess = "success"
	KeyWarning = "warning"
	KeyDanger  = "danger"
	KeyAccent  = "accent"
	KeyText    = "text"
	KeyMuted   = "muted"
)

// Palette is the deck-wide color table, resolved once per document and
// read-only afterwards.
type Palette struct {
	Accent deck.Color
	Vars   map[string]deck.Color
}

var cssVarPattern = regexp.MustCompile(`--([\w-]+)\s*:\s*([^;}]+)`)

// ExtractVars collects "--name: value" declarations from style sheets.
// Later declarations win.
func ExtractVars(sheets []string) map[string]string {
	vars := make(map[string]string)
	for _, css := range sheets {
		for _, m := range cssVarPattern.FindAllStringSubmatch(css, -1) {
			vars[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
		}
	}
	return vars
}

// NewPalette resolves CSS variables into a palette. The accent is taken
// from --color-accent, then --accent, then defaults to blue. Variables with
// hex values are kept; semantic keywords missing or non-hex fall back to
// their defaults.
func NewPalette(vars map[string]string) Palette {
	accent := deck.Blue
	for _, name := range []string{"color-accent", "accent"} {
		if v := vars[name]; strings.HasPrefix(v, "#") {
			if c, ok := deck.ParseColor(v); ok {
				accent = c
				break
			}
		}
	}
	defaults := semanticDefaults(accent)
	p := Palette{Accent: accent, Vars: make(map[string]deck.Color, len(vars)+len(defaults))}
	for name, v := range vars {
		if strings.HasPrefix(v, "#") {
			if c, ok := deck.ParseColor(v); ok {
				p.Vars[name] = c
			}
			continue
		}
		if c, ok := defaults[name]; ok {
			p.Vars[name] = c
		}
	}
	for name, c := range defaults {
		if _, ok := p.Vars[name]; !ok {
			p.Vars[name] = c
		}
	}
	return p
}

// DefaultPalette is the palette of a deck without color variables.
func DefaultPalette() Palette { return NewPalette(nil) }

func semanticDefaults(accent deck.Color) map[string]deck.Color {
	return map[string]deck.Color{
		KeyBlue:    deck.Blue,
		KeySuccess: deck.Green,
		KeyWarning: deck.Orange,
		KeyDanger:  deck.Red,
		KeyAccent:  accent,
		KeyText:    deck.White,
		KeyMuted:   deck.Gray70,
	}
}

// Resolve looks up a variable by name (without the leading "--").
func (p Palette) Resolve(name string) (deck.Color, bool) {
	c, ok := p.Vars[name]
	return c, ok
}

func (p Palette) get(name string, fallback deck.Color) deck.Color {
	if c, ok := p.Vars[name]; ok {
		return c
	}
	return fallback
}

func (p Palette) Success() deck.Color { return p.get(KeySuccess, deck.Green) }
func (p Palette) Warning() deck.Color { return p.get(KeyWarning, deck.Orange) }
func (p Palette) Danger() deck.Color  { return p.get(KeyDanger, deck.Red) }
func (p Palette) Text() deck.Color    { return p.get(KeyText, deck.White) }
func (p Palette) Muted() deck.Color   { return p.get(KeyMuted, deck.Gray70) }

// classColors maps color marker classes to brand colors.
var classColors = map[string]deck.Color{
	"green":     deck.Green,
	"ms-green":  deck.Green,
	"orange":    deck.Orange,
	"ms-orange": deck.Orange,
	"warning":   deck.Orange,
	"red":       deck.Red,
	"ms-red":    deck.Red,
	"ms-blue":   deck.Blue,
	"ms-cyan":   deck.Cyan,
	"ms-purple": deck.Purple,
}

// ClassColor returns the color named by the first color marker class, or
// the zero Color.
func ClassColor(classes []string) deck.Color {
	for _, c := range classes {
		if col, ok := classColors[c]; ok {
			return col
		}
	}
	return ""
}
