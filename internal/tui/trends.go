package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
)

// trendsModel shows cumulative progress per activity description, taken
// from the latest report that mentions each activity.
type trendsModel struct {
	eng    *engine.Engine
	width  int
	height int

	trends []engine.ActivityTrend
	cursor int
}

func newTrendsModel(eng *engine.Engine) trendsModel {
	return trendsModel{eng: eng}
}

func (m *trendsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type trendsDataMsg struct {
	trends []engine.ActivityTrend
}

func (m trendsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return trendsDataMsg{trends: m.eng.ActivityTrends()}
	}
}

func (m trendsModel) update(msg tea.Msg) (trendsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsDataMsg:
		m.trends = msg.trends
		if m.cursor >= len(m.trends) {
			m.cursor = max(0, len(m.trends)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.trends)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m trendsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Activity Trends")
	if p := m.eng.ActiveProject(); p != nil {
		title += mutedStyle.Render("  " + p.Name)
	}

	if len(m.trends) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No activities recorded yet."),
		)
		return panelStyle.Width(w).Render(content)
	}

	barWidth := w - 46
	if barWidth < 10 {
		barWidth = 10
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, t := range m.trends {
		pct := percent(t.Done, t.TotalVolume)
		style := normalItemStyle
		cursor := "  "
		if i == m.cursor {
			style = selectedItemStyle
			cursor = "> "
		}

		label := style.Render(fmt.Sprintf("%-28s", truncate(t.Description, 28)))
		bar := renderProgressBar(pct, barWidth)
		amount := mutedStyle.Render(fmt.Sprintf(" %g/%g %s", t.Done, t.TotalVolume, t.Unit))

		rows = append(rows, cursor+label+" "+bar+fmt.Sprintf(" %5.1f%%", pct)+amount)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderProgressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	style := highlightStyle
	if pct >= 100 {
		style = successStyle
	}
	return style.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}
