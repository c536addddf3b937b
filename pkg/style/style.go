package style

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/errors"
)

// Default font families.
const (
	DefaultBodyFont = "Arial"
	DefaultCodeFont = "Consolas"
)

// Fonts names the two typefaces a deck uses.
type Fonts struct {
	Body string `toml:"body" json:"body"`
	Code string `toml:"code" json:"code"`
}

// Style is everything a renderer needs besides content and position.
type Style struct {
	Palette Palette
	Fonts   Fonts
}

// New returns a style with default fonts.
func New(p Palette) Style {
	return Style{Palette: p, Fonts: Fonts{Body: DefaultBodyFont, Code: DefaultCodeFont}}
}

// Theme overrides palette entries and fonts. Colors are hex strings keyed
// by variable name ("success", "accent", "brand-teal", ...).
type Theme struct {
	Name   string            `toml:"name"`
	Accent string            `toml:"accent"`
	Colors map[string]string `toml:"colors"`
	Fonts  Fonts             `toml:"fonts"`
}

// LoadTheme reads a TOML theme file.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "read theme %s", path)
	}
	return ParseTheme(data)
}

// ParseTheme decodes a TOML theme and validates its colors.
func ParseTheme(data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode theme")
	}
	if t.Accent != "" {
		if _, ok := deck.ParseColor(t.Accent); !ok {
			return nil, errors.New(errors.ErrCodeInvalidTheme, "accent: invalid color %q", t.Accent)
		}
	}
	for _, name := range t.colorNames() {
		if _, ok := deck.ParseColor(t.Colors[name]); !ok {
			return nil, errors.New(errors.ErrCodeInvalidTheme, "colors.%s: invalid color %q", name, t.Colors[name])
		}
	}
	return &t, nil
}

func (t *Theme) colorNames() []string {
	names := make([]string, 0, len(t.Colors))
	for name := range t.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns s with the theme's overrides. A nil theme is a no-op.
func (t *Theme) Apply(s Style) Style {
	if t == nil {
		return s
	}
	vars := make(map[string]deck.Color, len(s.Palette.Vars)+len(t.Colors))
	for k, v := range s.Palette.Vars {
		vars[k] = v
	}
	for name, raw := range t.Colors {
		if c, ok := deck.ParseColor(raw); ok {
			vars[name] = c
		}
	}
	accent := s.Palette.Accent
	if c, ok := deck.ParseColor(t.Colors[KeyAccent]); ok {
		accent = c
	}
	if c, ok := deck.ParseColor(t.Accent); ok {
		accent = c
		vars[KeyAccent] = c
	}
	out := Style{Palette: Palette{Accent: accent, Vars: vars}, Fonts: s.Fonts}
	if t.Fonts.Body != "" {
		out.Fonts.Body = t.Fonts.Body
	}
	if t.Fonts.Code != "" {
		out.Fonts.Code = t.Fonts.Code
	}
	return out
}

// String implements fmt.Stringer for log output.
func (t *Theme) String() string {
	if t == nil {
		return "default"
	}
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("theme(%d colors)", len(t.Colors))
}
