package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/markup"
	"github.com/ramparte/amplifier-stories/pkg/style"
)

func node(t *testing.T, src, sel string) *markup.Node {
	t.Helper()
	doc, err := markup.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	n := doc.Root().Find(sel)
	if n == nil {
		t.Fatalf("no match for %q", sel)
	}
	return n
}

func TestText(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"collapse", `<p>Hello   <b>world</b><br>next   line</p>`, "Hello world\nnext line"},
		{"skip style", `<p>a<style>.x{}</style> b</p>`, "a b"},
		{"empty", `<p>   </p>`, ""},
		{"nfc", "<p>Café</p>", "Café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(node(t, tt.src, "p")); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}

func TestRichText(t *testing.T) {
	n := node(t, `<p>Plain <strong>bold</strong> and <span class="highlight">hot</span> <span class="check">ok</span></p>`, "p")
	p := style.DefaultPalette()
	got := RichText(n, p)
	want := []Run{
		{Text: "Plain "},
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "hot ", Color: deck.Cyan},
		{Text: "ok", Color: p.Success()},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RichText() mismatch (-want +got):\n%s", diff)
	}
	if !HasFormatting(got) {
		t.Error("HasFormatting() = false, want true")
	}
}

func TestRichTextLineBreak(t *testing.T) {
	n := node(t, `<p><em>first</em>  <br> second</p>`, "p")
	got := RichText(n, style.DefaultPalette())
	want := []Run{
		{Text: "first\n", Italic: true},
		{Text: "second"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RichText() mismatch (-want +got):\n%s", diff)
	}
	if HasEmphasis(got) {
		t.Error("HasEmphasis() = true for italic-only runs")
	}
}

func TestMergeRunsIdempotent(t *testing.T) {
	inputs := [][]Run{
		nil,
		{{Text: "  "}, {Text: "\n"}},
		{{Text: "  a "}, {Text: " ", Bold: true}, {Text: " b"}, {Text: "c\n "}},
		{{Text: "x", Bold: true}, {Text: "y", Bold: true}, {Text: " z ", Italic: true}, {Text: "  "}},
		{{Text: "a\n"}, {Text: " b", Color: deck.Cyan}, {Text: " ", Color: deck.Cyan}},
	}
	for i, in := range inputs {
		once := MergeRuns(in)
		twice := MergeRuns(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("input %d: MergeRuns not idempotent (-once +twice):\n%s", i, diff)
		}
		for j := 1; j < len(once); j++ {
			if once[j-1].sameFormat(once[j]) {
				t.Errorf("input %d: runs %d and %d share formatting after merge", i, j-1, j)
			}
		}
	}

	got := MergeRuns(inputs[2])
	want := []Run{{Text: "a bc"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeRuns() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitBulletLines(t *testing.T) {
	p := style.DefaultPalette()
	got := SplitBulletLines("✓ fast\n\n  ✓ small \n✗ magic", p)
	want := []Line{
		{Text: "✓ fast", Color: p.Success()},
		{Text: "✓ small", Color: p.Success()},
		{Text: "✗ magic", Color: p.Danger()},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitBulletLines() mismatch (-want +got):\n%s", diff)
	}
	if !IsBulletList(got) {
		t.Error("IsBulletList() = false, want true")
	}
	if IsBulletList(got[:1]) {
		t.Error("IsBulletList() = true for a single line")
	}
	if IsBulletList([]Line{{Text: "a"}, {Text: "b"}}) {
		t.Error("IsBulletList() = true without bullet glyphs")
	}
}

func TestReadFeatureList(t *testing.T) {
	n := node(t, `<ul class="feature-list"><li>✓ one</li><li>✓ two</li><li>✗ three</li></ul>`, "ul")
	p := style.DefaultPalette()
	got := ReadFeatureList(n, p)
	want := []Line{
		{Text: "✓ one", Color: p.Success()},
		{Text: "✓ two", Color: p.Success()},
		{Text: "✗ three", Color: p.Danger()},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadFeatureList() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCard(t *testing.T) {
	p := style.DefaultPalette()
	tests := []struct {
		name string
		src  string
		want Card
	}{
		{
			name: "generic",
			src:  `<div class="card green"><h3>Title</h3><p>Body text</p></div>`,
			want: Card{Title: "Title", Body: "Body text", TitleColor: deck.Green},
		},
		{
			name: "module",
			src:  `<div class="module-card"><div class="module-name">auth</div><div class="module-contract">login(u)</div><div class="module-purpose">Sessions</div></div>`,
			want: Card{Title: "auth", Body: "login(u)\nSessions", Module: true},
		},
		{
			name: "tool",
			src:  `<div class="tool-card"><div class="tool-name">grep</div><div class="tool-desc">search</div></div>`,
			want: Card{Title: "grep", Body: "search"},
		},
		{
			name: "bullets",
			src:  `<div class="card"><div class="card-title">T</div><ul><li>one</li><li>✓ two</li></ul></div>`,
			want: Card{Title: "T", Body: "• one\n✓ two"},
		},
		{
			name: "numbered",
			src:  `<div class="card"><span class="card-number">01</span><h3>Plan</h3></div>`,
			want: Card{Title: "01  Plan"},
		},
		{
			name: "fallback",
			src:  `<div class="card">Alpha<br>Beta<br>Gamma</div>`,
			want: Card{Title: "Alpha", Body: "Beta\nGamma"},
		},
		{
			name: "rich",
			src:  `<div class="card"><h3>T</h3><p>a <strong>b</strong></p></div>`,
			want: Card{Title: "T", BodyRuns: []Run{{Text: "a "}, {Text: "b", Bold: true}}},
		},
		{
			name: "inline color",
			src:  `<div class="card orange" style="color: var(--danger)"><h3>T</h3></div>`,
			want: Card{Title: "T", TitleColor: deck.Red},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadCard(node(t, tt.src, "div"), p)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadCard() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadGrid(t *testing.T) {
	n := node(t, `<div class="grid-3">
		<div class="card">a</div>
		<div class="wrap"><div class="tool-card">b</div></div>
		<div class="code-block">c</div>
		<p>d</p>
		<style>.x{}</style>
	</div>`, ".grid-3")
	var kinds []GridItemKind
	for _, it := range ReadGrid(n) {
		kinds = append(kinds, it.Kind)
	}
	want := []GridItemKind{GridCard, GridCard, GridCode, GridOther}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("ReadGrid() kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestGridColumns(t *testing.T) {
	tests := []struct {
		classes []string
		n, want int
	}{
		{[]string{"grid", "halves"}, 5, 2},
		{[]string{"thirds"}, 1, 3},
		{[]string{"grid-4"}, 2, 4},
		{[]string{"grid-5"}, 3, 3},
		{[]string{"grid-5"}, 7, 5},
		{[]string{"grid"}, 2, 2},
		{[]string{"tools-grid"}, 8, 3},
		{nil, 0, 1},
	}
	for _, tt := range tests {
		if got := GridColumns(tt.classes, tt.n); got != tt.want {
			t.Errorf("GridColumns(%v, %d) = %d, want %d", tt.classes, tt.n, got, tt.want)
		}
	}
}

func TestCodeLines(t *testing.T) {
	n := node(t, "<div class=\"code-block\"><pre><code><span class=\"keyword\">func</span> main() {\n  <span class=\"comment\">// hi</span>\n}\n\n</code></pre></div>", ".code-block")
	lines := TrimTrailingBlank(CodeLines(CodeRuns(CodeElement(n))))
	want := [][]CodeRun{
		{{Text: "func", Color: deck.CodeBlue}, {Text: " main() {", Color: deck.CodeDefault}},
		{{Text: "  ", Color: deck.CodeDefault}, {Text: "// hi", Color: deck.CodeGray}},
		{{Text: "}", Color: deck.CodeDefault}},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("code lines mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFlow(t *testing.T) {
	n := node(t, `<div class="flow"><div class="flow-step"><span class="step-number">1</span><span class="flow-step-title">Parse</span></div><div class="flow-step">Emit</div></div>`, ".flow")
	got := ReadFlow(n)
	want := []FlowStep{{Number: "1", Title: "Parse"}, {Title: "Emit"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadFlow() mismatch (-want +got):\n%s", diff)
	}
	if h := got[0].Heading(); h != "1. Parse" {
		t.Errorf("Heading() = %q, want %q", h, "1. Parse")
	}
}

func TestReadPrinciples(t *testing.T) {
	n := node(t, `<div class="principles-grid">
		<div class="principle"><span class="principle-number">1</span><div class="principle-content"><h3>Small</h3><p>Keep modules small.</p></div></div>
		<div class="principle">Bare</div>
	</div>`, ".principles-grid")
	got := ReadPrinciples(n)
	want := []Tenet{{Title: "1  Small", Body: "Keep modules small."}, {Title: "Bare"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadPrinciples() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadVersus(t *testing.T) {
	n := node(t, `<div class="versus">
		<div class="versus-side"><div class="versus-title red">Before</div><ul><li>a</li></ul></div>
		<div class="versus-side"><div class="versus-title">After</div><ul class="feature-list"><li>b</li><li>c</li></ul></div>
	</div>`, ".versus")
	got := ReadVersus(n)
	want := []VersusSide{
		{Title: "Before", Color: deck.Red, Items: []string{"a"}},
		{Title: "After", Items: []string{"b", "c"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadVersus() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadStats(t *testing.T) {
	n := node(t, `<div class="stat-grid"><div class="stat green"><div class="stat-number">42</div><div class="stat-label">modules</div></div><div class="stat">7x</div></div>`, ".stat-grid")
	got := ReadStats(n)
	want := []Stat{{Number: "42", Label: "modules", Color: deck.Green}, {Number: "7x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadStats() mismatch (-want +got):\n%s", diff)
	}

	big := ReadBigStat(node(t, `<div class="big-stat"><span class="big-stat-number">10</span><span class="big-stat-unit">x</span><div class="big-stat-label">faster</div></div>`, ".big-stat"))
	if got := big.Display(); got != "10 x" {
		t.Errorf("Display() = %q, want %q", got, "10 x")
	}
}

func TestReadBeforeAfter(t *testing.T) {
	n := node(t, `<div class="before-after"><div class="before-card"><div class="comparison-label">Manual</div><div class="comparison-value">3 days</div>by hand</div></div>`, ".before-after")
	before, after := ReadBeforeAfter(n)
	if diff := cmp.Diff(Comparison{Title: "Manual", Body: "3 days\nby hand"}, before); diff != "" {
		t.Errorf("before mismatch (-want +got):\n%s", diff)
	}
	if after != (Comparison{}) {
		t.Errorf("after = %+v, want zero", after)
	}
}

func TestReadTierRow(t *testing.T) {
	tests := []struct {
		name, src string
		want      []string
	}{
		{"fields", `<div class="tier-row"><span class="tier-name">Haiku</span><span class="tier-uses">routing</span><span class="tier-cost">$</span></div>`, []string{"Haiku", "routing", "$"}},
		{"partial", `<div class="tier-row"><span class="tier-name">Opus</span></div>`, []string{"Opus", "", ""}},
		{"plain text", `<div class="tier-row">Fast tier for quick lookups</div>`, []string{"Fast tier for quick lookups", "", ""}},
		{"empty", `<div class="tier-row"></div>`, []string{"", "", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadTierRow(node(t, tt.src, ".tier-row"))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadTierRow() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadQuote(t *testing.T) {
	n := node(t, `<div class="quote">Ship it.<div class="quote-attribution">Ada</div></div>`, ".quote")
	got := ReadQuote(n)
	if diff := cmp.Diff(Quote{Text: "Ship it.", Attribution: "Ada"}, got); diff != "" {
		t.Errorf("ReadQuote() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadHighlight(t *testing.T) {
	n := node(t, `<div class="highlight-box"><strong>Note</strong> keep it <em>short</em></div>`, ".highlight-box")
	got := ReadHighlight(n, style.DefaultPalette())
	want := Highlight{
		Title: "Note",
		Body:  "keep it short",
		Runs:  []Run{{Text: "keep it "}, {Text: "short", Italic: true}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadHighlight() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTable(t *testing.T) {
	n := node(t, `<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>✓</td></tr></table>`, "table")
	got := ReadTable(n)
	want := Table{Rows: [][]string{{"A", "B"}, {"1", "✓"}}, Header: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadComparisonTable(t *testing.T) {
	n := node(t, `<div class="comparison-table"><div class="header">Old</div><div class="header">New</div><div class="left">slow</div><div class="right">fast</div><div class="left">orphan</div></div>`, ".comparison-table")
	got, native := ReadComparisonTable(n)
	if native {
		t.Error("native = true, want false")
	}
	want := Table{Rows: [][]string{{"Old", "New"}, {"slow", "fast"}}, Header: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadComparisonTable() mismatch (-want +got):\n%s", diff)
	}

	n = node(t, `<div class="comparison-table"><table><tr><td>x</td></tr></table></div>`, ".comparison-table")
	if _, native := ReadComparisonTable(n); !native {
		t.Error("native = false for wrapped table")
	}
}
