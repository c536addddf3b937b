package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ramparte/amplifier-stories/pkg/classify"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// SlideBrowserModel is the bubbletea model for browsing classified slides.
// The table lists slides; enter toggles the block tree of the current one.
type SlideBrowserModel struct {
	Plans    []classify.Plan
	Cursor   int
	Height   int
	Offset   int
	Expanded bool
}

// NewSlideBrowserModel creates a browser over plans.
func NewSlideBrowserModel(plans []classify.Plan) SlideBrowserModel {
	return SlideBrowserModel{Plans: plans, Height: 12}
}

func (m SlideBrowserModel) Init() tea.Cmd {
	return nil
}

func (m SlideBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Plans)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height/2 - 4
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SlideBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Slides"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ blocks  q quit"))
	b.WriteString("\n\n")

	if len(m.Plans) == 0 {
		b.WriteString(StyleWarning.Render("No slides found"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Plans))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		p := m.Plans[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(p.Slide.Index),
			strings.Trim(slideTitle(p), `"`),
			strconv.Itoa(len(p.Blocks)),
			archetypeSummary(p),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Title", "Blocks", "Archetypes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 4 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Plans))))
	b.WriteString("\n")

	if m.Expanded {
		b.WriteString("\n")
		b.WriteString(listSelectedStyle.Render(slideLabel(m.Plans[m.Cursor])))
		b.WriteString("\n")
		b.WriteString(planTree("blocks", m.Plans[m.Cursor:m.Cursor+1]))
	}
	return b.String()
}

// archetypeSummary lists a plan's archetypes in order with repeat counts,
// e.g. "header, card ×3, quote".
func archetypeSummary(p classify.Plan) string {
	var parts []string
	for i := 0; i < len(p.Blocks); {
		a := p.Blocks[i].Archetype
		j := i
		for j < len(p.Blocks) && p.Blocks[j].Archetype == a {
			j++
		}
		if n := j - i; n > 1 {
			parts = append(parts, fmt.Sprintf("%s ×%d", a, n))
		} else {
			parts = append(parts, a.String())
		}
		i = j
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}
