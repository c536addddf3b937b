package markup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `<!doctype html><html><head><style>:root { --accent: #ff0000; }</style></head>
<body>
<div class="slide center">
  <h1 class="headline">Hi</h1>
  <div class="grid-3">
    <div class="card"><h3>A</h3><p>one</p></div>
    <div class="card wide"><h3>B</h3></div>
  </div>
</div>
<section class="slide"><p class="body-text">x</p></section>
</body></html>`

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseString(s)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func TestSlides(t *testing.T) {
	doc := mustParse(t, sample)
	slides := doc.Slides()
	if len(slides) != 2 {
		t.Fatalf("len(slides) = %d, want 2", len(slides))
	}
	if !slides[0].Centered || slides[1].Centered {
		t.Errorf("centered = %v,%v, want true,false", slides[0].Centered, slides[1].Centered)
	}
	if slides[0].Index != 1 || slides[1].Index != 2 {
		t.Errorf("indices = %d,%d", slides[0].Index, slides[1].Index)
	}
}

func TestSlidesFallbackToSection(t *testing.T) {
	doc := mustParse(t, `<section><h1>a</h1></section><section><h1>b</h1></section>`)
	if got := len(doc.Slides()); got != 2 {
		t.Errorf("len(slides) = %d, want 2", got)
	}
	doc = mustParse(t, `<div>nothing</div>`)
	if got := len(doc.Slides()); got != 0 {
		t.Errorf("len(slides) = %d, want 0", got)
	}
}

func TestFindAllExcludesSelf(t *testing.T) {
	doc := mustParse(t, `<div class="card" id="outer"><div class="card" id="inner"></div></div>`)
	outer := doc.Root().Find("#outer")
	if outer == nil {
		t.Fatal("outer not found")
	}
	got := outer.FindAll(".card")
	if len(got) != 1 || got[0].Attr("id") != "inner" {
		t.Errorf("FindAll(.card) = %v, want [inner]", got)
	}
}

func TestFindAllDocumentOrder(t *testing.T) {
	doc := mustParse(t, sample)
	var titles []string
	for _, n := range doc.Root().FindAll("h3, h1") {
		titles = append(titles, n.Raw().FirstChild.Data)
	}
	if diff := cmp.Diff([]string{"Hi", "A", "B"}, titles); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestContainsAndRanges(t *testing.T) {
	doc := mustParse(t, sample)
	grid := doc.Root().FindClass("grid-3")
	cards := grid.FindAllClass("card")
	if len(cards) != 2 {
		t.Fatalf("cards = %d", len(cards))
	}
	for _, c := range cards {
		if !grid.Contains(c) {
			t.Errorf("grid should contain %v", c)
		}
		if c.Contains(grid) {
			t.Errorf("%v should not contain grid", c)
		}
	}
	if grid.Contains(grid) {
		t.Error("a node must not contain itself")
	}
	if got := len(grid.Descendants()); got != 5 {
		t.Errorf("descendants = %d, want 5", got)
	}
	if cards[1].Parent() != grid {
		t.Errorf("parent = %v, want grid", cards[1].Parent())
	}
}

func TestClassesAndAttrs(t *testing.T) {
	doc := mustParse(t, `<p class=" a  b " style="color: red">x</p>`)
	p := doc.Root().Find("p")
	if diff := cmp.Diff([]string{"a", "b"}, p.Classes()); diff != "" {
		t.Errorf("classes (-want +got):\n%s", diff)
	}
	if !p.HasAnyClass("z", "b") || p.HasClass("c") {
		t.Error("class predicates wrong")
	}
	if p.Style() != "color: red" {
		t.Errorf("Style() = %q", p.Style())
	}
	if !strings.HasPrefix(p.String(), "p.a.b#") {
		t.Errorf("String() = %q", p.String())
	}
}

func TestStyleSheets(t *testing.T) {
	doc := mustParse(t, sample)
	sheets := doc.StyleSheets()
	if len(sheets) != 1 || !strings.Contains(sheets[0], "--accent") {
		t.Errorf("StyleSheets() = %q", sheets)
	}
}

func TestAncestorAndChildren(t *testing.T) {
	doc := mustParse(t, `<div class="versus"><div class="versus-side"><ul class="feature-list"><li>a</li><li>b</li></ul></div></div>`)
	fl := doc.Root().FindClass("feature-list")
	if fl.Ancestor("versus") == nil {
		t.Error("expected versus ancestor")
	}
	if fl.Ancestor("grid") != nil {
		t.Error("unexpected grid ancestor")
	}
	if got := len(fl.Children()); got != 2 {
		t.Errorf("children = %d, want 2", got)
	}
}

func TestNodeLookup(t *testing.T) {
	doc := mustParse(t, sample)
	for i := 0; i < doc.Len(); i++ {
		n := doc.Node(NodeID(i))
		if n.ID() != NodeID(i) {
			t.Fatalf("Node(%d).ID() = %d", i, n.ID())
		}
		if doc.Lookup(n.Raw()) != n {
			t.Fatalf("Lookup mismatch at %d", i)
		}
	}
	if doc.Node(-1) != nil || doc.Node(NodeID(doc.Len())) != nil {
		t.Error("out-of-range Node should be nil")
	}
}
