package deck

// Kind identifies which payload of a [Command] is populated.
type Kind string

const (
	KindText  Kind = "text"
	KindTable Kind = "table"
	KindShape Kind = "shape"
)

// Geometry is the outline of a [ShapeStyle].
type Geometry string

const (
	GeometryRect       Geometry = "rect"
	GeometryRounded    Geometry = "rounded"
	GeometryRightArrow Geometry = "right-arrow"
)

// RoundedCorner is the corner adjustment applied to rounded rectangles,
// as a fraction of the shorter side.
const RoundedCorner = 0.05

// Align is horizontal paragraph alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Anchor is vertical text anchoring inside a frame or cell.
type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorMiddle Anchor = "middle"
)

// AutoSize controls how a renderer reconciles text with its frame.
type AutoSize string

const (
	AutoSizeNone     AutoSize = "none"
	AutoSizeFitShape AutoSize = "fit_shape" // shrink text to fit the shape
	AutoSizeFitText  AutoSize = "fit_text"  // grow the shape to fit the text
)

// Box is an axis-aligned rectangle in inches.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns Top+Height.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Right returns Left+Width.
func (b Box) Right() float64 { return b.Left + b.Width }

// Insets are inner text margins in inches.
type Insets struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Standard insets.
var (
	FrameInsets = Insets{Left: 0.12, Right: 0.12, Top: 0.08, Bottom: 0.08}
	CardInsets  = Insets{Left: 0.12, Right: 0.12, Top: 0.1, Bottom: 0.1}
	CellInsets  = Insets{Left: 0.08, Right: 0.08, Top: 0.04, Bottom: 0.04}
)

// Run is a span of uniformly formatted text.
type Run struct {
	Text   string  `json:"text"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Color  Color   `json:"color,omitempty"`
	Font   string  `json:"font,omitempty"`
	Size   float64 `json:"size"`
}

// Paragraph is a line-broken block of runs. Spacing is in points.
type Paragraph struct {
	Runs        []Run   `json:"runs"`
	Align       Align   `json:"align,omitempty"`
	SpaceBefore float64 `json:"space_before,omitempty"`
	SpaceAfter  float64 `json:"space_after,omitempty"`
}

// Text returns the concatenated text of all runs.
func (p Paragraph) Text() string {
	var n int
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range p.Runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

// TextBody is the text content of a frame or shape.
type TextBody struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	AutoSize   AutoSize    `json:"auto_size"`
	Anchor     Anchor      `json:"anchor"`
	Insets     Insets      `json:"insets"`
	WordWrap   bool        `json:"word_wrap"`
}

// Cell is one table cell.
type Cell struct {
	Paragraphs  []Paragraph `json:"paragraphs"`
	Fill        Color       `json:"fill,omitempty"`
	Border      Color       `json:"border,omitempty"`
	BorderWidth float64     `json:"border_width,omitempty"`
	Insets      Insets      `json:"insets"`
	Anchor      Anchor      `json:"anchor"`
}

// Table is a native table. Every row has len(ColWidths) cells.
type Table struct {
	ColWidths []float64 `json:"col_widths"`
	Rows      [][]Cell  `json:"rows"`
}

// ShapeStyle describes a filled shape. An unset Border means no outline.
type ShapeStyle struct {
	Geometry    Geometry `json:"geometry"`
	Fill        Color    `json:"fill,omitempty"`
	Border      Color    `json:"border,omitempty"`
	BorderWidth float64  `json:"border_width,omitempty"`
}

// Command is one positioned drawing instruction. Exactly one of Text, Table
// or Shape is set according to Kind; a shape may also carry Text.
type Command struct {
	Kind  Kind        `json:"kind"`
	Box   Box         `json:"box"`
	Text  *TextBody   `json:"text,omitempty"`
	Table *Table      `json:"table,omitempty"`
	Shape *ShapeStyle `json:"shape,omitempty"`
}

// NewText returns a text frame command.
func NewText(box Box, body TextBody) Command {
	return Command{Kind: KindText, Box: box, Text: &body}
}

// NewTable returns a table command.
func NewTable(box Box, t Table) Command {
	return Command{Kind: KindTable, Box: box, Table: &t}
}

// NewShape returns a shape command with an optional text body.
func NewShape(box Box, style ShapeStyle, body *TextBody) Command {
	return Command{Kind: KindShape, Box: box, Shape: &style, Text: body}
}

// Texts returns every string carried by the command, in paragraph order.
// Table cells are visited row-major.
func (c Command) Texts() []string {
	var out []string
	if c.Text != nil {
		for _, p := range c.Text.Paragraphs {
			out = append(out, p.Text())
		}
	}
	if c.Table != nil {
		for _, row := range c.Table.Rows {
			for _, cell := range row {
				for _, p := range cell.Paragraphs {
					out = append(out, p.Text())
				}
			}
		}
	}
	return out
}
