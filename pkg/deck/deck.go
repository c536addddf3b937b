package deck

// Canvas dimensions in inches (16:9).
const (
	Width  = 10.0
	Height = 5.625
)

// Deck is a laid-out presentation.
type Deck struct {
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Slides   []Slide  `json:"slides"`
	Warnings []string `json:"warnings,omitempty"`
}

// New returns an empty deck on the standard canvas.
func New() *Deck {
	return &Deck{Width: Width, Height: Height}
}

// Slide is one page of absolutely positioned commands.
type Slide struct {
	Index      int       `json:"index"`
	Centered   bool      `json:"centered,omitempty"`
	Background Color     `json:"background"`
	Commands   []Command `json:"commands"`
}

// Add appends commands to the slide.
func (s *Slide) Add(cmds ...Command) {
	s.Commands = append(s.Commands, cmds...)
}

// Bottom returns the lowest edge of any command, or 0 for an empty slide.
func (s *Slide) Bottom() float64 {
	var bottom float64
	for _, c := range s.Commands {
		bottom = max(bottom, c.Box.Bottom())
	}
	return bottom
}

// CommandCount returns the total number of commands across all slides.
func (d *Deck) CommandCount() int {
	var n int
	for _, s := range d.Slides {
		n += len(s.Commands)
	}
	return n
}
