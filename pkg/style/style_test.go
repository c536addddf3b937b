package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/errors"
)

func TestExtractVars(t *testing.T) {
	sheets := []string{
		":root { --accent: #FF6B00; --brand-teal : #0aa ; }",
		".x { --accent: #123456 }",
	}
	vars := ExtractVars(sheets)
	if vars["accent"] != "#123456" {
		t.Errorf("accent = %q, want later declaration to win", vars["accent"])
	}
	if vars["brand-teal"] != "#0aa" {
		t.Errorf("brand-teal = %q", vars["brand-teal"])
	}
}

func TestExtractVarsClosingBrace(t *testing.T) {
	vars := ExtractVars([]string{":root{--a:#111111;--b: #222222}", ".y{--c:#333}"})
	want := map[string]string{"a": "#111111", "b": "#222222", "c": "#333"}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("vars[%q] = %q, want %q", k, vars[k], v)
		}
	}
	if p := NewPalette(vars); p.Vars["b"] != "222222" {
		t.Errorf("palette b = %q, want 222222", p.Vars["b"])
	}
}

func TestDeclarationsWithoutTrailingSemicolon(t *testing.T) {
	tests := []struct {
		style string
		key   string
		want  string
	}{
		{"color: var(--accent)", "color", "var(--accent)"},
		{"color: red; font-size: 12px", "font-size", "12px"},
		{"  border: 1px solid #00f  ", "border", "1px solid #00f"},
	}
	for _, tt := range tests {
		if got := Declarations(tt.style)[tt.key]; got != tt.want {
			t.Errorf("Declarations(%q)[%q] = %q, want %q", tt.style, tt.key, got, tt.want)
		}
	}
}

func TestNewPalette(t *testing.T) {
	tests := []struct {
		name   string
		vars   map[string]string
		accent deck.Color
	}{
		{"default", nil, deck.Blue},
		{"accent", map[string]string{"accent": "#ff0000"}, "FF0000"},
		{"color-accent wins", map[string]string{"accent": "#ff0000", "color-accent": "#00ff00"}, "00FF00"},
		{"malformed", map[string]string{"accent": "#zz"}, deck.Blue},
		{"not hex", map[string]string{"accent": "rgb(1,2,3)"}, deck.Blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPalette(tt.vars)
			if p.Accent != tt.accent {
				t.Errorf("Accent = %q, want %q", p.Accent, tt.accent)
			}
		})
	}
}

func TestPaletteSemanticDefaults(t *testing.T) {
	p := NewPalette(map[string]string{"success": "#111111", "warning": "var(--x)"})
	if p.Success() != "111111" {
		t.Errorf("Success() = %q", p.Success())
	}
	if p.Warning() != deck.Orange {
		t.Errorf("Warning() = %q, want default", p.Warning())
	}
	if p.Danger() != deck.Red || p.Text() != deck.White || p.Muted() != deck.Gray70 {
		t.Error("semantic defaults wrong")
	}
	if c, ok := p.Resolve("accent"); !ok || c != deck.Blue {
		t.Errorf("Resolve(accent) = %q, %v", c, ok)
	}
}

func TestClassColor(t *testing.T) {
	tests := []struct {
		classes []string
		want    deck.Color
	}{
		{[]string{"card", "green"}, deck.Green},
		{[]string{"warning"}, deck.Orange},
		{[]string{"ms-purple", "red"}, deck.Purple},
		{[]string{"card"}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := ClassColor(tt.classes); got != tt.want {
			t.Errorf("ClassColor(%v) = %q, want %q", tt.classes, got, tt.want)
		}
	}
}

func TestInlineColor(t *testing.T) {
	p := NewPalette(map[string]string{"accent": "#ff0000", "brand": "#00ff00"})
	tests := []struct {
		style string
		want  deck.Color
	}{
		{"", ""},
		{"color: var(--brand)", "00FF00"},
		{"color: var(--unknown)", "FF0000"},
		{"color: #abc", "AABBCC"},
		{"border-color: var(--brand)", "00FF00"},
		{"border-color: var(--unknown)", ""},
		{"border: 1px solid #00f", "0000FF"},
		{"margin: 0", ""},
		{"color: var(--brand);", "00FF00"},
		{"font-weight: bold; color: #abc", "AABBCC"},
		{"border: 1px solid #00f;", "0000FF"},
		{"color: var(--brand); border-color: #00f", "00FF00"},
	}
	for _, tt := range tests {
		if got := p.InlineColor(tt.style); got != tt.want {
			t.Errorf("InlineColor(%q) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestParseTheme(t *testing.T) {
	data := []byte(`
name = "contrast"
accent = "#ffcc00"

[colors]
success = "#22c55e"

[fonts]
code = "Cascadia Code"
`)
	th, err := ParseTheme(data)
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	s := th.Apply(New(DefaultPalette()))
	if s.Palette.Accent != "FFCC00" {
		t.Errorf("accent = %q", s.Palette.Accent)
	}
	if s.Palette.Success() != "22C55E" {
		t.Errorf("success = %q", s.Palette.Success())
	}
	if s.Fonts.Body != DefaultBodyFont || s.Fonts.Code != "Cascadia Code" {
		t.Errorf("fonts = %+v", s.Fonts)
	}
	if th.String() != "contrast" {
		t.Errorf("String() = %q", th.String())
	}
}

func TestParseThemeInvalid(t *testing.T) {
	for _, data := range []string{
		`accent = "blue"`,
		"[colors]\nsuccess = \"#12\"",
		`accent = `,
	} {
		_, err := ParseTheme([]byte(data))
		if !errors.Is(err, errors.ErrCodeInvalidTheme) {
			t.Errorf("ParseTheme(%q) err = %v, want INVALID_THEME", data, err)
		}
	}
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.toml")
	if err := os.WriteFile(path, []byte(`accent = "#010203"`), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if th.Accent != "#010203" {
		t.Errorf("Accent = %q", th.Accent)
	}
	if _, err := LoadTheme(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing theme err = %v", err)
	}
}

func TestNilThemeApply(t *testing.T) {
	var th *Theme
	s := New(DefaultPalette())
	if got := th.Apply(s); got.Palette.Accent != s.Palette.Accent {
		t.Error("nil theme should not change style")
	}
	if th.String() != "default" {
		t.Errorf("String() = %q", th.String())
	}
}
