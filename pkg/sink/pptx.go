package sink

import (
	"archive/zip"
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/ramparte/amplifier-stories/pkg/deck"
)

const (
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCT  = "http://schemas.openxmlformats.org/package/2006/content-types"

	relBase   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	ctPresML  = "application/vnd.openxmlformats-officedocument.presentationml."
	tableURI  = "http://schemas.openxmlformats.org/drawingml/2006/table"
	emuPerIn  = 914400
	emuPerPt  = 12700
	lang      = "en-US"
	generator = "html2pptx"
)

// zipTime is stamped on every archive entry so equal decks produce equal
// bytes.
var zipTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// PPTXOption configures PPTX rendering.
type PPTXOption func(*pptxRenderer)

type pptxRenderer struct {
	title string
}

// WithTitle sets the document title stored in the package properties.
func WithTitle(t string) PPTXOption { return func(r *pptxRenderer) { r.title = t } }

// part is one XML file of the package.
type part struct {
	name string
	doc  *etree.Document
}

// RenderPPTX writes the deck as an Office Open XML presentation.
func RenderPPTX(d *deck.Deck, opts ...PPTXOption) ([]byte, error) {
	r := pptxRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	parts := []part{
		{"[Content_Types].xml", contentTypes(len(d.Slides))},
		{"_rels/.rels", rels(
			rel{"rId1", "officeDocument", "ppt/presentation.xml"},
			rel{"rId2", "metadata/core-properties", "docProps/core.xml"},
			rel{"rId3", "extended-properties", "docProps/app.xml"},
		)},
		{"docProps/core.xml", coreProps(r.title)},
		{"docProps/app.xml", appProps(len(d.Slides))},
		{"ppt/presentation.xml", presentation(d)},
		{"ppt/_rels/presentation.xml.rels", presentationRels(len(d.Slides))},
		{"ppt/slideMasters/slideMaster1.xml", slideMaster()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", rels(
			rel{"rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"},
			rel{"rId2", "theme", "../theme/theme1.xml"},
		)},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayout()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", rels(
			rel{"rId1", "slideMaster", "../slideMasters/slideMaster1.xml"},
		)},
		{"ppt/theme/theme1.xml", theme()},
	}
	for i, s := range d.Slides {
		n := i + 1
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), rels(
				rel{"rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"},
			)},
		)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: zipTime})
		if err != nil {
			return nil, fmt.Errorf("pptx: %s: %w", p.name, err)
		}
		if _, err := p.doc.WriteTo(w); err != nil {
			return nil, fmt.Errorf("pptx: %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pptx: %w", err)
	}
	return buf.Bytes(), nil
}

func newXML(root string, namespaces ...string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	el := doc.CreateElement(root)
	for i := 0; i+1 < len(namespaces); i += 2 {
		el.CreateAttr(namespaces[i], namespaces[i+1])
	}
	return doc, el
}

func pmlRoot(root string) (*etree.Document, *etree.Element) {
	return newXML(root, "xmlns:a", nsA, "xmlns:r", nsR, "xmlns:p", nsP)
}

func emu(in float64) string { return fmt.Sprint(int64(math.Round(in * emuPerIn))) }

func pt100(pt float64) string { return fmt.Sprint(int64(math.Round(pt * 100))) }

type rel struct {
	id, kind, target string
}

func rels(rs ...rel) *etree.Document {
	doc, root := newXML("Relationships", "xmlns", nsRel)
	for _, r := range rs {
		kind := relBase + r.kind
		if r.kind == "metadata/core-properties" {
			kind = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
		}
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", r.id)
		el.CreateAttr("Type", kind)
		el.CreateAttr("Target", r.target)
	}
	return doc
}

func contentTypes(slides int) *etree.Document {
	doc, root := newXML("Types", "xmlns", nsCT)
	for _, kv := range [][2]string{
		{"rels", "application/vnd.openxmlformats-package.relationships+xml"},
		{"xml", "application/xml"},
	} {
		el := root.CreateElement("Default")
		el.CreateAttr("Extension", kv[0])
		el.CreateAttr("ContentType", kv[1])
	}

	override := func(part, ct string) {
		el := root.CreateElement("Override")
		el.CreateAttr("PartName", part)
		el.CreateAttr("ContentType", ct)
	}
	override("/ppt/presentation.xml", ctPresML+"presentation.main+xml")
	override("/ppt/slideMasters/slideMaster1.xml", ctPresML+"slideMaster+xml")
	override("/ppt/slideLayouts/slideLayout1.xml", ctPresML+"slideLayout+xml")
	override("/ppt/theme/theme1.xml", "application/vnd.openxmlformats-officedocument.theme+xml")
	override("/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml")
	override("/docProps/app.xml", "application/vnd.openxmlformats-officedocument.extended-properties+xml")
	for i := 1; i <= slides; i++ {
		override(fmt.Sprintf("/ppt/slides/slide%d.xml", i), ctPresML+"slide+xml")
	}
	return doc
}

func coreProps(title string) *etree.Document {
	doc, root := newXML("cp:coreProperties",
		"xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		"xmlns:dc", "http://purl.org/dc/elements/1.1/",
		"xmlns:dcterms", "http://purl.org/dc/terms/",
		"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	if title != "" {
		root.CreateElement("dc:title").SetText(title)
	}
	root.CreateElement("dc:creator").SetText(generator)
	return doc
}

func appProps(slides int) *etree.Document {
	doc, root := newXML("Properties", "xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	root.CreateElement("Application").SetText(generator)
	root.CreateElement("Slides").SetText(fmt.Sprint(slides))
	return doc
}

func presentation(d *deck.Deck) *etree.Document {
	doc, root := pmlRoot("p:presentation")
	root.CreateAttr("saveSubsetFonts", "1")
	master := root.CreateElement("p:sldMasterIdLst").CreateElement("p:sldMasterId")
	master.CreateAttr("id", "2147483648")
	master.CreateAttr("r:id", "rId1")
	if len(d.Slides) > 0 {
		list := root.CreateElement("p:sldIdLst")
		for i := range d.Slides {
			el := list.CreateElement("p:sldId")
			el.CreateAttr("id", fmt.Sprint(256+i))
			el.CreateAttr("r:id", fmt.Sprintf("rId%d", i+2))
		}
	}
	w, h := d.Width, d.Height
	if w == 0 || h == 0 {
		w, h = deck.Width, deck.Height
	}
	size := root.CreateElement("p:sldSz")
	size.CreateAttr("cx", emu(w))
	size.CreateAttr("cy", emu(h))
	notes := root.CreateElement("p:notesSz")
	notes.CreateAttr("cx", "6858000")
	notes.CreateAttr("cy", "9144000")
	return doc
}

func presentationRels(slides int) *etree.Document {
	rs := []rel{{"rId1", "slideMaster", "slideMasters/slideMaster1.xml"}}
	for i := 1; i <= slides; i++ {
		rs = append(rs, rel{fmt.Sprintf("rId%d", i+1), "slide", fmt.Sprintf("slides/slide%d.xml", i)})
	}
	rs = append(rs, rel{fmt.Sprintf("rId%d", slides+2), "theme", "theme/theme1.xml"})
	return rels(rs...)
}

// spTree adds an empty shape tree with its required group properties.
func spTree(parent *etree.Element) *etree.Element {
	tree := parent.CreateElement("p:spTree")
	nv := tree.CreateElement("p:nvGrpSpPr")
	id := nv.CreateElement("p:cNvPr")
	id.CreateAttr("id", "1")
	id.CreateAttr("name", "")
	nv.CreateElement("p:cNvGrpSpPr")
	nv.CreateElement("p:nvPr")
	xfrm := tree.CreateElement("p:grpSpPr").CreateElement("a:xfrm")
	for _, tag := range []string{"a:off", "a:ext", "a:chOff", "a:chExt"} {
		el := xfrm.CreateElement(tag)
		if strings.HasSuffix(tag, "ff") {
			el.CreateAttr("x", "0")
			el.CreateAttr("y", "0")
		} else {
			el.CreateAttr("cx", "0")
			el.CreateAttr("cy", "0")
		}
	}
	return tree
}

func slideMaster() *etree.Document {
	doc, root := pmlRoot("p:sldMaster")
	spTree(root.CreateElement("p:cSld"))
	clr := root.CreateElement("p:clrMap")
	for _, kv := range [][2]string{
		{"bg1", "lt1"}, {"tx1", "dk1"}, {"bg2", "lt2"}, {"tx2", "dk2"},
		{"accent1", "accent1"}, {"accent2", "accent2"}, {"accent3", "accent3"},
		{"accent4", "accent4"}, {"accent5", "accent5"}, {"accent6", "accent6"},
		{"hlink", "hlink"}, {"folHlink", "folHlink"},
	} {
		clr.CreateAttr(kv[0], kv[1])
	}
	layout := root.CreateElement("p:sldLayoutIdLst").CreateElement("p:sldLayoutId")
	layout.CreateAttr("id", "2147483649")
	layout.CreateAttr("r:id", "rId1")
	return doc
}

func slideLayout() *etree.Document {
	doc, root := pmlRoot("p:sldLayout")
	root.CreateAttr("type", "blank")
	root.CreateAttr("preserve", "1")
	csld := root.CreateElement("p:cSld")
	csld.CreateAttr("name", "Blank")
	spTree(csld)
	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

func srgb(parent *etree.Element, tag string, c deck.Color) {
	parent.CreateElement(tag).CreateElement("a:srgbClr").CreateAttr("val", string(c))
}

func theme() *etree.Document {
	doc, root := newXML("a:theme", "xmlns:a", nsA)
	root.CreateAttr("name", generator)
	elems := root.CreateElement("a:themeElements")

	scheme := elems.CreateElement("a:clrScheme")
	scheme.CreateAttr("name", generator)
	for _, kv := range []struct {
		tag string
		c   deck.Color
	}{
		{"a:dk1", deck.Black}, {"a:lt1", deck.White}, {"a:dk2", deck.DarkGray}, {"a:lt2", deck.Gray70},
		{"a:accent1", deck.Blue}, {"a:accent2", deck.Cyan}, {"a:accent3", deck.Green},
		{"a:accent4", deck.Orange}, {"a:accent5", deck.Red}, {"a:accent6", deck.Purple},
		{"a:hlink", deck.Cyan}, {"a:folHlink", deck.Purple},
	} {
		srgb(scheme, kv.tag, kv.c)
	}

	fonts := elems.CreateElement("a:fontScheme")
	fonts.CreateAttr("name", generator)
	for _, tag := range []string{"a:majorFont", "a:minorFont"} {
		f := fonts.CreateElement(tag)
		for _, script := range []string{"a:latin", "a:ea", "a:cs"} {
			face := ""
			if script == "a:latin" {
				face = "Arial"
			}
			f.CreateElement(script).CreateAttr("typeface", face)
		}
	}

	fmtScheme := elems.CreateElement("a:fmtScheme")
	fmtScheme.CreateAttr("name", generator)
	fills := fmtScheme.CreateElement("a:fillStyleLst")
	lines := fmtScheme.CreateElement("a:lnStyleLst")
	effects := fmtScheme.CreateElement("a:effectStyleLst")
	bgs := fmtScheme.CreateElement("a:bgFillStyleLst")
	for i := 0; i < 3; i++ {
		fills.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
		ln := lines.CreateElement("a:ln")
		ln.CreateAttr("w", fmt.Sprint(6350*(i+1)))
		ln.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
		effects.CreateElement("a:effectStyle").CreateElement("a:effectLst")
		bgs.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}
	return doc
}

// slideXML converts one laid-out slide into a slide part.
func slideXML(s deck.Slide) *etree.Document {
	doc, root := pmlRoot("p:sld")
	csld := root.CreateElement("p:cSld")
	bg := csld.CreateElement("p:bg").CreateElement("p:bgPr")
	srgb(bg, "a:solidFill", s.Background.Or(deck.Black))
	bg.CreateElement("a:effectLst")

	tree := spTree(csld)
	for i, c := range s.Commands {
		id := i + 2
		switch c.Kind {
		case deck.KindTable:
			writeTable(tree, id, c)
		default:
			writeShape(tree, id, c)
		}
	}
	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

func xfrm(parent *etree.Element, tag string, b deck.Box) {
	x := parent.CreateElement(tag)
	off := x.CreateElement("a:off")
	off.CreateAttr("x", emu(b.Left))
	off.CreateAttr("y", emu(b.Top))
	ext := x.CreateElement("a:ext")
	ext.CreateAttr("cx", emu(b.Width))
	ext.CreateAttr("cy", emu(b.Height))
}

var presets = map[deck.Geometry]string{
	deck.GeometryRect:       "rect",
	deck.GeometryRounded:    "roundRect",
	deck.GeometryRightArrow: "rightArrow",
}

func writeShape(tree *etree.Element, id int, c deck.Command) {
	sp := tree.CreateElement("p:sp")
	nv := sp.CreateElement("p:nvSpPr")
	cnv := nv.CreateElement("p:cNvPr")
	cnv.CreateAttr("id", fmt.Sprint(id))
	name := fmt.Sprintf("Shape %d", id)
	if c.Kind == deck.KindText {
		name = fmt.Sprintf("TextBox %d", id)
	}
	cnv.CreateAttr("name", name)
	sppr := nv.CreateElement("p:cNvSpPr")
	if c.Kind == deck.KindText {
		sppr.CreateAttr("txBox", "1")
	}
	nv.CreateElement("p:nvPr")

	pr := sp.CreateElement("p:spPr")
	xfrm(pr, "a:xfrm", c.Box)
	geom := deck.GeometryRect
	if c.Shape != nil {
		geom = c.Shape.Geometry
	}
	prst := pr.CreateElement("a:prstGeom")
	prst.CreateAttr("prst", presets[geom])
	av := prst.CreateElement("a:avLst")
	if geom == deck.GeometryRounded {
		gd := av.CreateElement("a:gd")
		gd.CreateAttr("name", "adj")
		gd.CreateAttr("fmla", fmt.Sprintf("val %d", int(deck.RoundedCorner*100000)))
	}
	if c.Shape != nil && !c.Shape.Fill.IsZero() {
		srgb(pr, "a:solidFill", c.Shape.Fill)
	} else {
		pr.CreateElement("a:noFill")
	}
	ln := pr.CreateElement("a:ln")
	if c.Shape != nil && !c.Shape.Border.IsZero() {
		ln.CreateAttr("w", fmt.Sprint(int64(math.Round(c.Shape.BorderWidth*emuPerPt))))
		srgb(ln, "a:solidFill", c.Shape.Border)
	} else {
		ln.CreateElement("a:noFill")
	}

	body := c.Text
	if body == nil {
		body = &deck.TextBody{AutoSize: deck.AutoSizeNone, Anchor: deck.AnchorMiddle, Insets: deck.FrameInsets}
	}
	writeTextBody(sp, "p:txBody", *body)
}

func anchorAttr(a deck.Anchor) string {
	if a == deck.AnchorMiddle {
		return "ctr"
	}
	return "t"
}

func writeTextBody(parent *etree.Element, tag string, b deck.TextBody) {
	tx := parent.CreateElement(tag)
	pr := tx.CreateElement("a:bodyPr")
	if b.WordWrap {
		pr.CreateAttr("wrap", "square")
	} else {
		pr.CreateAttr("wrap", "none")
	}
	pr.CreateAttr("lIns", emu(b.Insets.Left))
	pr.CreateAttr("tIns", emu(b.Insets.Top))
	pr.CreateAttr("rIns", emu(b.Insets.Right))
	pr.CreateAttr("bIns", emu(b.Insets.Bottom))
	pr.CreateAttr("anchor", anchorAttr(b.Anchor))
	switch b.AutoSize {
	case deck.AutoSizeFitShape:
		pr.CreateElement("a:normAutofit")
	case deck.AutoSizeFitText:
		pr.CreateElement("a:spAutoFit")
	}
	tx.CreateElement("a:lstStyle")
	writeParagraphs(tx, b.Paragraphs)
}

func writeParagraphs(tx *etree.Element, paras []deck.Paragraph) {
	if len(paras) == 0 {
		tx.CreateElement("a:p")
		return
	}
	for _, p := range paras {
		ap := tx.CreateElement("a:p")
		ppr := ap.CreateElement("a:pPr")
		if p.Align == deck.AlignCenter {
			ppr.CreateAttr("algn", "ctr")
		} else {
			ppr.CreateAttr("algn", "l")
		}
		if p.SpaceBefore > 0 {
			ppr.CreateElement("a:spcBef").CreateElement("a:spcPts").CreateAttr("val", pt100(p.SpaceBefore))
		}
		if p.SpaceAfter > 0 {
			ppr.CreateElement("a:spcAft").CreateElement("a:spcPts").CreateAttr("val", pt100(p.SpaceAfter))
		}
		for _, r := range p.Runs {
			for i, seg := range strings.Split(r.Text, "\n") {
				if i > 0 {
					runProps(ap.CreateElement("a:br"), "a:rPr", r)
				}
				if seg == "" {
					continue
				}
				ar := ap.CreateElement("a:r")
				runProps(ar, "a:rPr", r)
				ar.CreateElement("a:t").SetText(seg)
			}
		}
	}
}

func runProps(parent *etree.Element, tag string, r deck.Run) {
	pr := parent.CreateElement(tag)
	pr.CreateAttr("lang", lang)
	if r.Size > 0 {
		pr.CreateAttr("sz", pt100(r.Size))
	}
	if r.Bold {
		pr.CreateAttr("b", "1")
	}
	if r.Italic {
		pr.CreateAttr("i", "1")
	}
	pr.CreateAttr("dirty", "0")
	if !r.Color.IsZero() {
		srgb(pr, "a:solidFill", r.Color)
	}
	if r.Font != "" {
		pr.CreateElement("a:latin").CreateAttr("typeface", r.Font)
		pr.CreateElement("a:cs").CreateAttr("typeface", r.Font)
	}
}

func writeTable(tree *etree.Element, id int, c deck.Command) {
	t := c.Table
	gf := tree.CreateElement("p:graphicFrame")
	nv := gf.CreateElement("p:nvGraphicFramePr")
	cnv := nv.CreateElement("p:cNvPr")
	cnv.CreateAttr("id", fmt.Sprint(id))
	cnv.CreateAttr("name", fmt.Sprintf("Table %d", id))
	nv.CreateElement("p:cNvGraphicFramePr").CreateElement("a:graphicFrameLocks").CreateAttr("noGrp", "1")
	nv.CreateElement("p:nvPr")
	xfrm(gf, "p:xfrm", c.Box)

	data := gf.CreateElement("a:graphic").CreateElement("a:graphicData")
	data.CreateAttr("uri", tableURI)
	tbl := data.CreateElement("a:tbl")
	tpr := tbl.CreateElement("a:tblPr")
	tpr.CreateAttr("firstRow", "1")
	tpr.CreateAttr("bandRow", "1")
	grid := tbl.CreateElement("a:tblGrid")
	for _, w := range t.ColWidths {
		grid.CreateElement("a:gridCol").CreateAttr("w", emu(w))
	}

	rowHeight := 0.0
	if len(t.Rows) > 0 {
		rowHeight = c.Box.Height / float64(len(t.Rows))
	}
	for _, row := range t.Rows {
		tr := tbl.CreateElement("a:tr")
		tr.CreateAttr("h", emu(rowHeight))
		for _, cell := range row {
			tc := tr.CreateElement("a:tc")
			writeTextBody(tc, "a:txBody", deck.TextBody{Paragraphs: cell.Paragraphs, WordWrap: true, Anchor: cell.Anchor, Insets: cell.Insets})
			pr := tc.CreateElement("a:tcPr")
			pr.CreateAttr("marL", emu(cell.Insets.Left))
			pr.CreateAttr("marR", emu(cell.Insets.Right))
			pr.CreateAttr("marT", emu(cell.Insets.Top))
			pr.CreateAttr("marB", emu(cell.Insets.Bottom))
			pr.CreateAttr("anchor", anchorAttr(cell.Anchor))
			for _, side := range []string{"a:lnL", "a:lnR", "a:lnT", "a:lnB"} {
				ln := pr.CreateElement(side)
				if cell.Border.IsZero() {
					ln.CreateAttr("w", "0")
					ln.CreateElement("a:noFill")
					continue
				}
				ln.CreateAttr("w", fmt.Sprint(int64(math.Round(cell.BorderWidth*emuPerPt))))
				srgb(ln, "a:solidFill", cell.Border)
			}
			if cell.Fill.IsZero() {
				pr.CreateElement("a:noFill")
			} else {
				srgb(pr, "a:solidFill", cell.Fill)
			}
		}
	}
}
