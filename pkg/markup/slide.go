package markup

// Slide is one slide container of a deck.
type Slide struct {
	Index    int   // 1-based position in the deck
	Node     *Node // the container element
	Centered bool  // carries "center" or "title-slide"
}

// Slides returns the deck's slides: every div.slide or section.slide, or,
// if there are none, every <section>.
func (d *Document) Slides() []Slide {
	root := d.Root()
	if root == nil {
		return nil
	}
	nodes := root.FindAll("div.slide, section.slide")
	if len(nodes) == 0 {
		nodes = root.FindAll("section")
	}
	out := make([]Slide, len(nodes))
	for i, n := range nodes {
		out[i] = Slide{
			Index:    i + 1,
			Node:     n,
			Centered: n.HasAnyClass("center", "title-slide"),
		}
	}
	return out
}
