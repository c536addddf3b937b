package layout

import (
	"github.com/ramparte/amplifier-stories/pkg/classify"
	"github.com/ramparte/amplifier-stories/pkg/deck"
	"github.com/ramparte/amplifier-stories/pkg/extract"
)

// renderFeatureList draws list items as one frame, coloring ✓ and ✗ lines.
func renderFeatureList(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	lines := extract.ReadFeatureList(b.Node(), c.Palette)
	if len(lines) == 0 {
		return nil, top
	}
	h := max(0.5, float64(len(lines))*0.35)
	paras := make([]deck.Paragraph, len(lines))
	for i, l := range lines {
		paras[i] = c.body(14, l.Color.Or(deck.White)).spaced(2, 2).text(l.Text)
	}
	cmd := textFrame(deck.Box{Left: ContentLeft, Top: top, Width: ContentWidth, Height: h}, deck.AutoSizeFitShape, paras...)
	return []deck.Command{cmd}, top + h + GapNormal
}

// renderNotifications stacks narrow notification cards.
func renderNotifications(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	items := extract.ReadNotifications(b.Node())
	if len(items) == 0 {
		return nil, top
	}
	var cmds []deck.Command
	y := top
	for _, n := range items {
		border, fill, icon := deck.BorderGray, deck.DarkGray, "•"
		switch n.Variant {
		case extract.NotificationAllowed:
			border, fill, icon = c.Palette.Success(), "0A1A0A", "✓"
		case extract.NotificationBlocked:
			border, fill, icon = c.Palette.Danger(), "1A0A0A", "✗"
		}
		title := icon
		if n.Title != "" {
			title = icon + "  " + n.Title
		}
		cmd, _ := c.cardFrame(deck.Box{Left: 2.0, Top: y, Width: 6.0, Height: 0.5}, card{
			Title:      title,
			Body:       n.Body,
			TitleSize:  12,
			BodySize:   10,
			TitleColor: border,
			Fill:       fill,
			Border:     border,
		})
		cmds = append(cmds, cmd)
		y += 0.5 + GapTight
	}
	return cmds, y + GapNormal
}

// renderStats draws a row of figures with labels below.
func renderStats(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	stats := extract.ReadStats(b.Node())
	if len(stats) == 0 {
		return nil, top
	}
	width := ContentWidth / float64(len(stats))
	cmds := make([]deck.Command, 0, len(stats))
	for i, s := range stats {
		paras := []deck.Paragraph{
			c.body(40, s.Color.Or(deck.Cyan)).bold().aligned(deck.AlignCenter).spaced(0, 2).text(s.Number),
		}
		if s.Label != "" {
			paras = append(paras, c.body(12, deck.Gray70).aligned(deck.AlignCenter).spaced(2, 0).text(s.Label))
		}
		box := deck.Box{Left: ContentLeft + float64(i)*width, Top: top, Width: width, Height: 0.9}
		cmds = append(cmds, middle(textFrame(box, deck.AutoSizeNone, paras...)))
	}
	return cmds, top + 1.0 + GapNormal
}

// renderBigStats draws every big-stat of the slide in one row.
func renderBigStats(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	var stats []extract.BigStat
	for _, n := range b.Nodes {
		if s := extract.ReadBigStat(n); s.Display() != "" || s.Label != "" {
			stats = append(stats, s)
		}
	}
	if len(stats) == 0 {
		return nil, top
	}
	width := ContentWidth / float64(len(stats))
	cmds := make([]deck.Command, 0, len(stats))
	for i, s := range stats {
		var paras []deck.Paragraph
		if d := s.Display(); d != "" {
			paras = append(paras, c.body(56, deck.Cyan).bold().aligned(deck.AlignCenter).spaced(0, 4).text(d))
		}
		if s.Label != "" {
			paras = append(paras, c.body(18, deck.Gray70).aligned(deck.AlignCenter).spaced(2, 0).text(s.Label))
		}
		box := deck.Box{Left: ContentLeft + float64(i)*width, Top: top, Width: width, Height: 1.2}
		cmds = append(cmds, middle(textFrame(box, deck.AutoSizeNone, paras...)))
	}
	return cmds, top + 1.4 + GapNormal
}

// renderTierStack draws each tier as a full-width card.
func renderTierStack(c canvas, b classify.Block, top float64) ([]deck.Command, float64) {
	tiers := extract.ReadTiers(b.Node())
	if len(tiers) == 0 {
		return nil, top
	}
	var cmds []deck.Command
	y := top
	for _, t := range tiers {
		accent := t.Accent.Or(c.Palette.Accent)
		if cmd, ok := c.cardFrame(deck.Box{Left: ContentLeft, Top: y, Width: ContentWidth, Height: 0.6}, card{
			Title:     t.Heading(),
			Body:      t.Body(),
			TitleSize: 14,
			BodySize:  11,
			Accent:    accent,
			Border:    accent,
		}); ok {
			cmds = append(cmds, cmd)
		}
		y += 0.6 + GapTight
	}
	return cmds, y + GapNormal
}
