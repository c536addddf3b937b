package sink

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

func testDeck() *deck.Deck {
	d := deck.New()
	s := deck.Slide{Index: 1, Background: deck.Black}
	s.Add(
		deck.NewText(deck.Box{Left: 0.8, Top: 0.5, Width: 8.4, Height: 1}, deck.TextBody{
			Paragraphs: []deck.Paragraph{{
				Align: deck.AlignCenter,
				Runs:  []deck.Run{{Text: "first\n", Italic: true, Size: 20}, {Text: "second", Size: 20, Color: deck.Cyan}},
			}},
			AutoSize: deck.AutoSizeFitShape,
			Anchor:   deck.AnchorMiddle,
			Insets:   deck.FrameInsets,
			WordWrap: true,
		}),
		deck.NewShape(deck.Box{Left: 0.8, Top: 2, Width: 8.4, Height: 1.2},
			deck.ShapeStyle{Geometry: deck.GeometryRounded, Fill: deck.DarkGray, Border: deck.BorderGray, BorderWidth: 1},
			&deck.TextBody{Paragraphs: []deck.Paragraph{{Runs: []deck.Run{{Text: "Card", Bold: true, Size: 16}}}}}),
		deck.NewTable(deck.Box{Left: 0.8, Top: 3.5, Width: 8.4, Height: 0.7}, deck.Table{
			ColWidths: []float64{4.2, 4.2},
			Rows: [][]deck.Cell{
				{{Paragraphs: []deck.Paragraph{{Runs: []deck.Run{{Text: "a", Size: 11}}}}, Fill: deck.HeaderFill}, {}},
				{{Paragraphs: []deck.Paragraph{{Runs: []deck.Run{{Text: "b", Size: 11}}}}}, {}},
			},
		}),
	)
	d.Slides = append(d.Slides, s, deck.Slide{Index: 2, Background: deck.Black})
	return d
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = b
	}
	return files
}

func TestRenderPPTXParts(t *testing.T) {
	data, err := RenderPPTX(testDeck(), WithTitle("Demo"))
	if err != nil {
		t.Fatalf("RenderPPTX: %v", err)
	}
	files := readZip(t, data)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide2.xml.rels",
	} {
		if _, ok := files[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	if !bytes.Contains(files["docProps/core.xml"], []byte("<dc:title>Demo</dc:title>")) {
		t.Error("title not stored in core properties")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(files["ppt/presentation.xml"]); err != nil {
		t.Fatal(err)
	}
	size := doc.FindElement("//p:sldSz")
	if size == nil || size.SelectAttrValue("cx", "") != "9144000" || size.SelectAttrValue("cy", "") != "5143500" {
		t.Errorf("slide size = %v", size)
	}
	if n := len(doc.FindElements("//p:sldId")); n != 2 {
		t.Errorf("slide ids = %d, want 2", n)
	}
}

func TestRenderPPTXSlide(t *testing.T) {
	data, err := RenderPPTX(testDeck())
	if err != nil {
		t.Fatalf("RenderPPTX: %v", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(readZip(t, data)["ppt/slides/slide1.xml"]); err != nil {
		t.Fatal(err)
	}

	if bg := doc.FindElement("//p:bg//a:srgbClr"); bg == nil || bg.SelectAttrValue("val", "") != "000000" {
		t.Errorf("background = %v, want black", bg)
	}

	// The first frame holds "first", a break, then "second".
	p := doc.FindElement("//p:sp/p:txBody/a:p")
	var seq []string
	for _, el := range p.ChildElements() {
		switch el.FullTag() {
		case "a:r":
			seq = append(seq, el.SelectElement("a:t").Text())
		case "a:br":
			seq = append(seq, "<br>")
		}
	}
	if got := strings.Join(seq, "|"); got != "first|<br>|second" {
		t.Errorf("runs = %q, want first|<br>|second", got)
	}
	if p.SelectElement("a:pPr").SelectAttrValue("algn", "") != "ctr" {
		t.Error("paragraph not centered")
	}
	if doc.FindElement("//a:bodyPr[@anchor='ctr']/a:normAutofit") == nil {
		t.Error("fit_shape frame not anchored middle with normAutofit")
	}

	gd := doc.FindElement("//a:prstGeom[@prst='roundRect']/a:avLst/a:gd")
	if gd == nil || gd.SelectAttrValue("fmla", "") != "val 5000" {
		t.Errorf("rounded corner = %v, want val 5000", gd)
	}
	if sz := doc.FindElement("//a:r/a:rPr[@b='1']"); sz == nil || sz.SelectAttrValue("sz", "") != "1600" {
		t.Errorf("bold run size = %v, want 1600", sz)
	}

	rows := doc.FindElements("//a:tbl/a:tr")
	if len(rows) != 2 {
		t.Fatalf("table rows = %d, want 2", len(rows))
	}
	if h := rows[0].SelectAttrValue("h", ""); h != "320040" {
		t.Errorf("row height = %s, want 320040", h)
	}
	if len(doc.FindElements("//a:tblGrid/a:gridCol")) != 2 {
		t.Error("grid columns != 2")
	}
}

func TestRenderPPTXDeterministic(t *testing.T) {
	a, err := RenderPPTX(testDeck())
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderPPTX(testDeck())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("equal decks produced different archives")
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testDeck()))
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`id="slide-1"`,
		`id="slide-2"`,
		`>first</tspan>`,
		`>second</tspan>`,
		`fill="#50e6ff"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	one := string(RenderSVG(testDeck(), WithSlides(2)))
	if strings.Contains(one, `id="slide-1"`) || !strings.Contains(one, `id="slide-2"`) {
		t.Error("WithSlides(2) did not select slide 2 only")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testDeck(), WithScale(0.5))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testDeck())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var back deck.Deck
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Slides) != 2 || back.CommandCount() != 3 {
		t.Errorf("round trip = %d slides, %d commands", len(back.Slides), back.CommandCount())
	}
	compact, err := RenderJSON(testDeck(), WithCompact())
	if err != nil {
		t.Fatal(err)
	}
	if len(compact) >= len(data) {
		t.Error("compact output not smaller than indented")
	}
}
