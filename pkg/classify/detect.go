package classify

import (
	"github.com/ramparte/amplifier-stories/pkg/extract"
	"github.com/ramparte/amplifier-stories/pkg/markup"
)

// Mode controls how a detector turns matches into blocks.
type Mode int

const (
	// ModeEach emits one block per unhandled match.
	ModeEach Mode = iota
	// ModeAggregate emits a single block holding every unhandled match.
	ModeAggregate
	// ModePair emits one block from the first unhandled match of Selector
	// and the first unhandled match of Pair. Either may be missing.
	ModePair
	// ModeHeader merges headings and intro text into the header frame.
	ModeHeader
	// ModeFallback takes leftover direct children of the slide.
	ModeFallback
)

// Detector recognizes one archetype.
type Detector struct {
	Archetype Archetype
	Mode      Mode
	Selector  string
	Pair      string

	// Accept filters matches. Rejected matches stay unhandled.
	Accept func(*markup.Node) bool
	// Silent marks matches handled without emitting a block.
	Silent func(*markup.Node) bool
}

// GridClasses mark a container as a card grid.
var GridClasses = []string{"thirds", "halves", "fourths", "grid", "grid-2", "grid-3", "grid-4", "grid-5", "tools-grid", "split"}

var excludedGrids = []string{"principles-grid", "stat-grid", "velocity-grid"}

// Detectors lists the archetype detectors in priority order. Earlier
// detectors claim elements first; a claimed element and everything inside it
// is invisible to later detectors.
var Detectors = []Detector{
	{Archetype: Header, Mode: ModeHeader},
	{Archetype: ArchitectureDiagram, Selector: ".architecture-diagram"},
	{Archetype: ComparisonTable, Selector: ".comparison-table"},
	{
		Archetype: CardGrid,
		Selector:  markup.ClassSelector(GridClasses...),
		Accept:    func(n *markup.Node) bool { return !n.HasAnyClass(excludedGrids...) },
	},
	{
		Archetype: Card,
		Selector:  markup.ClassSelector(extract.CardClasses...),
		Accept: func(n *markup.Node) bool {
			p := n.Parent()
			return p == nil || !p.HasAnyClass(GridClasses...)
		},
	},
	{Archetype: Principles, Selector: ".principles-grid"},
	{Archetype: Principle, Selector: ".principle"},
	{Archetype: CodeBlock, Selector: ".code-block"},
	{Archetype: Flow, Selector: ".flow-diagram, .workflow, .flow"},
	{Archetype: Tenets, Mode: ModeAggregate, Selector: ".tenet"},
	{Archetype: Versus, Selector: ".versus"},
	{Archetype: Table, Selector: "table"},
	{
		Archetype: FeatureList,
		Selector:  ".feature-list",
		Silent:    func(n *markup.Node) bool { return n.Ancestor("versus") != nil },
	},
	{Archetype: NotificationStack, Selector: ".notification-stack"},
	{Archetype: Stats, Selector: ".stat-grid, .stat-row, .velocity-grid"},
	{Archetype: BigStat, Mode: ModeAggregate, Selector: ".big-stat"},
	{Archetype: TierStack, Selector: ".tier-stack"},
	{Archetype: TierRows, Mode: ModeAggregate, Selector: ".tier-row"},
	{
		Archetype: Diagram,
		Selector:  ".diagram",
		Accept: func(n *markup.Node) bool {
			return !n.HasAnyClass("architecture-diagram", "flow-diagram")
		},
	},
	{Archetype: BeforeAfter, Selector: ".before-after"},
	{Archetype: TokenDisplay, Selector: ".token-display"},
	{Archetype: GoodBad, Mode: ModePair, Selector: ".good-pattern", Pair: ".bad-pattern"},
	{Archetype: SummaryRows, Mode: ModeAggregate, Selector: ".summary-row"},
	{Archetype: BodyText, Selector: ".body-text"},
	{Archetype: TitleMeta, Selector: ".title-meta"},
	{Archetype: HighlightBox, Selector: ".highlight-box"},
	{Archetype: Quote, Selector: ".quote"},
	{Archetype: SmallText, Selector: ".small-text"},
	{Archetype: Fallback, Mode: ModeFallback},
}

// headerTriggers end the run of intro body-text merged into the header.
var headerTriggers = []string{
	"code-block", "architecture-diagram", "comparison-table",
	"thirds", "halves", "fourths", "grid", "grid-2", "grid-3", "grid-4", "grid-5", "tools-grid",
	"flow-diagram", "workflow", "flow", "notification-stack",
	"stat-grid", "stat-row", "velocity-grid", "tier-stack",
	"before-after", "versus", "diagram", "principles-grid",
	"card", "module-card", "tool-card",
}

// Vocabulary is the set of marker classes the classifier and extractors
// understand. Other classes are ignored.
var Vocabulary = []string{
	// slides
	"slide", "center", "title-slide",
	// header
	"section-label", "section-number", "section-title", "headline", "big-text",
	"medium-headline", "subhead",
	// containers
	"architecture-diagram", "comparison-table", "header", "left", "right",
	"thirds", "halves", "fourths", "grid", "grid-2", "grid-3", "grid-4", "grid-5", "tools-grid", "split",
	"card", "module-card", "tool-card", "track-card",
	"card-title", "card-header", "card-name", "card-number",
	"card-body", "card-desc", "card-description", "card-content", "card-text", "bullet-list",
	"module-name", "module-contract", "module-purpose", "tool-name", "tool-desc",
	"principles-grid", "principle", "principle-number", "principle-num", "principle-content", "principle-text",
	"code-block",
	"flow-diagram", "workflow", "flow", "flow-box", "flow-step", "workflow-step", "step",
	"step-number", "flow-step-number", "workflow-step-number",
	"flow-step-title", "workflow-step-title", "step-title",
	"flow-step-desc", "workflow-step-desc", "step-desc",
	"tenet", "tenet-title", "tenet-text",
	"versus", "versus-side", "versus-title",
	"feature-list",
	"notification-stack", "notification", "allowed", "blocked", "notification-title", "notification-body",
	"stat-grid", "stat-row", "velocity-grid", "stat", "velocity-stat",
	"stat-number", "stat-value", "velocity-number", "stat-label", "velocity-label",
	"big-stat", "big-stat-number", "big-stat-unit", "big-stat-label",
	"tier-stack", "tier", "tier-label", "tier-title", "tier-desc", "tier-tokens",
	"tier-row", "tier-name", "tier-uses", "tier-cost",
	"diagram", "diagram-box", "diagram-box-title", "diagram-box-content",
	"before-after", "before-card", "after-card", "comparison-label", "comparison-value",
	"token-display",
	"good-pattern", "bad-pattern",
	"summary-row", "summary-cell",
	"body-text", "title-meta", "highlight-box", "quote", "quote-attribution", "quote-attr", "small-text",
	// inline
	"highlight", "check",
	"keyword", "string", "comment", "type", "func", "number",
	"code-keyword", "code-string", "code-comment", "code-type", "code-func", "code-number",
	"layer-kernel", "layer-foundation", "layer-apps", "layer-modules",
	// colors
	"green", "ms-green", "orange", "ms-orange", "warning", "red", "ms-red",
	"ms-blue", "ms-cyan", "ms-purple",
}
