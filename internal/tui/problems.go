package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// problemsModel lists every obstacle across the active project's reports.
// Resolving closes every open occurrence of the same description at once.
type problemsModel struct {
	eng    *engine.Engine
	width  int
	height int

	obstacles []engine.ObstacleRef
	cursor    int
	openOnly  bool

	formActive bool
	form       *huh.Form
	target     engine.ObstacleRef
	notes      *string
	confirm    *bool
}

func newProblemsModel(eng *engine.Engine) problemsModel {
	notes := ""
	confirm := false
	return problemsModel{eng: eng, openOnly: true, notes: &notes, confirm: &confirm}
}

func (m *problemsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type problemsDataMsg struct {
	obstacles []engine.ObstacleRef
}

func (m problemsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return problemsDataMsg{obstacles: m.eng.ActiveObstacles()}
	}
}

func (m problemsModel) visible() []engine.ObstacleRef {
	if !m.openOnly {
		return m.obstacles
	}
	var out []engine.ObstacleRef
	for _, ref := range m.obstacles {
		if ref.Obstacle.Status == model.StatusOpen {
			out = append(out, ref)
		}
	}
	return out
}

func (m problemsModel) update(msg tea.Msg) (problemsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case problemsDataMsg:
		m.obstacles = msg.obstacles
		if m.cursor >= len(m.visible()) {
			m.cursor = max(0, len(m.visible())-1)
		}
		return m, nil

	case tea.KeyMsg:
		visible := m.visible()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Solve):
			if m.cursor < len(visible) && visible[m.cursor].Obstacle.Status == model.StatusOpen {
				return m.showResolveForm(visible[m.cursor])
			}
		}
		if msg.String() == "f" {
			m.openOnly = !m.openOnly
			m.cursor = 0
		}
	}
	return m, nil
}

func (m problemsModel) showResolveForm(ref engine.ObstacleRef) (problemsModel, tea.Cmd) {
	m.target = ref
	*m.notes = ""
	*m.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Resolution notes").
				Description(truncate(ref.Obstacle.Description, 60)).
				Value(m.notes),
			huh.NewConfirm().
				Title("Resolve this obstacle?").
				Description("Every open occurrence with the same description is closed.").
				Affirmative("Resolve").
				Negative("Cancel").
				Value(m.confirm),
		),
	).WithShowHelp(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m problemsModel) updateForm(msg tea.Msg) (problemsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if !*m.confirm {
			return m, nil
		}
		today := time.Now().Format("2006-01-02")
		if err := m.eng.SolveObstacle(m.target.ReportID, m.target.Obstacle.ID, today, *m.notes); err != nil {
			return m, func() tea.Msg { return errorStatus(err) }
		}
		return m, tea.Batch(
			m.refresh(),
			func() tea.Msg { return dataChangedMsg{} },
			func() tea.Msg { return statusMsg{text: "Obstacle resolved"} },
		)
	}
	return m, cmd
}

func (m problemsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Resolve Obstacle"), "", m.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	filter := "open"
	if !m.openOnly {
		filter = "all"
	}
	title := titleStyle.Render("Problems") + mutedStyle.Render("  showing "+filter)

	visible := m.visible()
	if len(visible) == 0 {
		text := "No open obstacles. Nice."
		if !m.openOnly {
			text = "No obstacles recorded."
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "", successStyle.Render("  "+text),
			"", mutedStyle.Render("  f: toggle open/all"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-8s %-12s %-10s %-8s %s", "Status", "Reported", "Type", "Priority", "Description")))

	for i, ref := range visible {
		o := ref.Obstacle
		badge := warningStyle.Render("open  ")
		if o.Status == model.StatusClosed {
			badge = successStyle.Render("closed")
		}
		priority := o.Priority
		if o.Priority == "high" {
			priority = errorStyle.Render(o.Priority)
		}
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s",
			cursor, badge,
			style.Render(fmt.Sprintf("%-12s %-10s %-8s", ref.ReportDate, truncate(o.Type, 10), priority)),
			style.Render(truncate(o.Description, max(10, w-50))),
		))
		if o.Status == model.StatusClosed && o.ResolutionDate != "" {
			rows = append(rows, mutedStyle.Render("           resolved "+o.ResolutionDate+": "+truncate(o.ResolutionNotes, 50)))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  s: resolve  f: toggle open/all"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
