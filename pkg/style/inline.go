package style

import (
	"regexp"
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

var (
	varRef       = regexp.MustCompile(`var\(\s*--(\w[\w-]*)\s*\)`)
	hexLiteral   = regexp.MustCompile(`#[0-9a-fA-F]{6}\b|#[0-9a-fA-F]{3}\b`)
	inlineColor  = regexp.MustCompile(`(?:^|[;\s])color\s*:\s*([^;]+)`)
	inlineBorder = regexp.MustCompile(`(?:^|[;\s])(?:border-color|border)\s*:\s*([^;]+)`)
)

// Declarations parses an inline style attribute into property/value pairs.
// Property names are lower-cased. Malformed input falls back to a lenient
// scan for color and border declarations.
func Declarations(style string) map[string]string {
	out := make(map[string]string)
	style = strings.TrimSpace(style)
	if style == "" {
		return out
	}
	// The parser drops the value of a final declaration without ";".
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return scanDeclarations(style, out)
	}
	for _, d := range decls {
		if v := strings.TrimSpace(d.Value); v != "" {
			out[strings.ToLower(d.Property)] = v
		}
	}
	if out["color"] == "" && out["border-color"] == "" && out["border"] == "" {
		return scanDeclarations(style, out)
	}
	return out
}

func scanDeclarations(style string, out map[string]string) map[string]string {
	if m := inlineColor.FindStringSubmatch(style); m != nil {
		out["color"] = strings.TrimSpace(m[1])
	}
	if m := inlineBorder.FindStringSubmatch(style); m != nil {
		out["border-color"] = strings.TrimSpace(m[1])
	}
	return out
}

// InlineColor resolves the color an element's style attribute asks for.
// A "color" declaration wins; var() references to unknown variables
// resolve to the accent. Otherwise "border-color" or "border" is used, and
// unknown variables there resolve to nothing.
func (p Palette) InlineColor(style string) deck.Color {
	decls := Declarations(style)
	if v, ok := decls["color"]; ok {
		if name, ok := varName(v); ok {
			return p.get(name, p.Accent)
		}
		if c, ok := literal(v); ok {
			return c
		}
	}
	for _, key := range []string{"border-color", "border"} {
		v, ok := decls[key]
		if !ok {
			continue
		}
		if name, ok := varName(v); ok {
			c, _ := p.Resolve(name)
			return c
		}
		if c, ok := literal(v); ok {
			return c
		}
	}
	return ""
}

func varName(v string) (string, bool) {
	m := varRef.FindStringSubmatch(v)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func literal(v string) (deck.Color, bool) {
	m := hexLiteral.FindString(v)
	if m == "" {
		return "", false
	}
	return deck.ParseColor(m)
}
