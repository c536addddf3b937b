package classify

import "fmt"

// Archetype is the closed set of visual block kinds a slide can contain.
type Archetype int

const (
	Header Archetype = iota
	ArchitectureDiagram
	ComparisonTable
	CardGrid
	Card
	Principles
	Principle
	CodeBlock
	Flow
	Tenets
	Versus
	Table
	FeatureList
	NotificationStack
	Stats
	BigStat
	TierStack
	TierRows
	Diagram
	BeforeAfter
	TokenDisplay
	GoodBad
	SummaryRows
	BodyText
	TitleMeta
	HighlightBox
	Quote
	SmallText
	Fallback

	numArchetypes
)

var archetypeNames = [numArchetypes]string{
	Header:              "header",
	ArchitectureDiagram: "architecture-diagram",
	ComparisonTable:     "comparison-table",
	CardGrid:            "card-grid",
	Card:                "card",
	Principles:          "principles",
	Principle:           "principle",
	CodeBlock:           "code-block",
	Flow:                "flow",
	Tenets:              "tenets",
	Versus:              "versus",
	Table:               "table",
	FeatureList:         "feature-list",
	NotificationStack:   "notification-stack",
	Stats:               "stats",
	BigStat:             "big-stat",
	TierStack:           "tier-stack",
	TierRows:            "tier-rows",
	Diagram:             "diagram",
	BeforeAfter:         "before-after",
	TokenDisplay:        "token-display",
	GoodBad:             "good-bad",
	SummaryRows:         "summary-rows",
	BodyText:            "body-text",
	TitleMeta:           "title-meta",
	HighlightBox:        "highlight-box",
	Quote:               "quote",
	SmallText:           "small-text",
	Fallback:            "fallback",
}

func (a Archetype) String() string {
	if a < 0 || a >= numArchetypes {
		return fmt.Sprintf("Archetype(%d)", int(a))
	}
	return archetypeNames[a]
}

// Archetypes returns every archetype in declaration order.
func Archetypes() []Archetype {
	out := make([]Archetype, numArchetypes)
	for i := range out {
		out[i] = Archetype(i)
	}
	return out
}

// PartKind is the role of one element merged into the header frame.
type PartKind int

const (
	PartLabel PartKind = iota
	PartSectionTitle
	PartHeadline
	PartMedium
	PartSubhead
	PartBody
)

var partNames = []string{"label", "section-title", "headline", "medium-headline", "subhead", "body-text"}

func (k PartKind) String() string {
	if k < 0 || int(k) >= len(partNames) {
		return fmt.Sprintf("PartKind(%d)", int(k))
	}
	return partNames[k]
}
