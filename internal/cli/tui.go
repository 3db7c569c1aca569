package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RouteBrowserModel - Interactive route browsing
// =============================================================================

// RouteBrowserModel is the bubbletea model for browsing narrative routes.
// The list scrolls within Height rows; enter expands the selected route into
// its full label sequence.
type RouteBrowserModel struct {
	Routes   []routeSummary
	Cursor   int
	Expanded bool
	Height   int
	Offset   int
}

// newRouteBrowser creates a browser over the given route summaries.
func newRouteBrowser(summaries []routeSummary) RouteBrowserModel {
	return RouteBrowserModel{
		Routes: summaries,
		Height: 15,
	}
}

func (m RouteBrowserModel) Init() tea.Cmd {
	return nil
}

func (m RouteBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Expanded = false
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Routes)-1 {
				m.Cursor++
				m.Expanded = false
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RouteBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Routes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Routes) {
		end = len(m.Routes)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Routes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%s %s %s", cursor, swatch(r.Color), r.ID,
			listDimStyle.Render(fmt.Sprintf("(%d labels)", len(r.Labels))))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.Expanded && m.Cursor < len(m.Routes) {
		b.WriteString("\n")
		b.WriteString(m.renderDetail(m.Routes[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Routes))))

	return b.String()
}

// renderDetail renders the full label sequence of one route, one step per
// line with the edge kind that led to it.
func (m RouteBrowserModel) renderDetail(r routeSummary) string {
	var b strings.Builder
	for i, label := range r.Labels {
		if i == 0 {
			b.WriteString("  " + StyleValue.Render(label))
		} else {
			kind := ""
			if i-1 < len(r.Kinds) {
				kind = r.Kinds[i-1]
			}
			b.WriteString("  " + listDimStyle.Render(iconArrow+" "+kind) + " " + StyleValue.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
