package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

type projectsModel struct {
	eng    *engine.Engine
	width  int
	height int

	projects []model.Project
	activeID string
	cursor   int

	formActive bool
	form       *huh.Form
	fName      *string
	renameID   string // empty means the form creates a new project

	// Delete confirmation
	confirming bool
	deleteID   string
}

func newProjectsModel(eng *engine.Engine) projectsModel {
	name := ""
	return projectsModel{eng: eng, fName: &name}
}

func (m *projectsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type projectsDataMsg struct {
	projects []model.Project
	activeID string
}

func (m projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		data := m.eng.Data()
		return projectsDataMsg{projects: data.Projects, activeID: data.ActiveProjectID}
	}
}

func (m projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	if m.confirming {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		m.projects = msg.projects
		m.activeID = msg.activeID
		if m.cursor >= len(m.projects) {
			m.cursor = max(0, len(m.projects)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm("", "")
		case key.Matches(msg, keys.Edit):
			if m.cursor < len(m.projects) {
				p := m.projects[m.cursor]
				return m.showForm(p.ID, p.Name)
			}
		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.projects) {
				if err := m.eng.SwitchProject(m.projects[m.cursor].ID); err != nil {
					return m, func() tea.Msg { return errorStatus(err) }
				}
				return m, tea.Batch(
					m.refresh(),
					func() tea.Msg { return dataChangedMsg{} },
					func() tea.Msg {
						return statusMsg{text: "Switched to " + m.projects[m.cursor].Name}
					},
				)
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.projects) {
				m.confirming = true
				m.deleteID = m.projects[m.cursor].ID
			}
		}
	}
	return m, nil
}

func (m projectsModel) showForm(id, name string) (projectsModel, tea.Cmd) {
	m.renameID = id
	*m.fName = name
	title := "New Project"
	if id != "" {
		title = "Rename Project"
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(m.fName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		).Title(title),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
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
		name := strings.TrimSpace(*m.fName)

		if m.renameID != "" {
			if err := m.eng.RenameProject(m.renameID, name); err != nil {
				return m, func() tea.Msg { return errorStatus(err) }
			}
		} else {
			if _, err := m.eng.CreateProject(name); err != nil {
				return m, func() tea.Msg { return errorStatus(err) }
			}
		}
		return m, tea.Batch(m.refresh(), func() tea.Msg { return dataChangedMsg{} })
	}
	return m, cmd
}

func (m projectsModel) updateConfirm(msg tea.Msg) (projectsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.confirming = false
		if err := m.eng.DeleteProject(m.deleteID); err != nil {
			return m, func() tea.Msg { return errorStatus(err) }
		}
		return m, tea.Batch(
			m.refresh(),
			func() tea.Msg { return dataChangedMsg{} },
			func() tea.Msg { return statusMsg{text: "Project deleted"} },
		)
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m projectsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := "New Project"
		if m.renameID != "" {
			title = "Rename Project"
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(title), "", m.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	if m.confirming {
		var name string
		var reports, docs int
		data := m.eng.Data()
		for _, p := range data.Projects {
			if p.ID == m.deleteID {
				name = p.Name
			}
		}
		for _, r := range data.Reports {
			if r.ProjectID == m.deleteID {
				reports++
			}
		}
		for _, d := range data.Documents {
			if d.ProjectID == m.deleteID {
				docs++
			}
		}
		rows := []string{
			titleStyle.Render("Delete Project"),
			"",
			errorStyle.Render(fmt.Sprintf("  Delete %q with %d reports and %d documents?", name, reports, docs)),
			"  Attached files are removed as well. This cannot be undone.",
			"",
			mutedStyle.Render("  y: delete  n/esc: cancel"),
		}
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	title := titleStyle.Render("Projects")
	if len(m.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	data := m.eng.Data()
	for i, p := range m.projects {
		reports := 0
		for _, r := range data.Reports {
			if r.ProjectID == p.ID {
				reports++
			}
		}
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := "  "
		if p.ID == m.activeID {
			marker = successStyle.Render("● ")
		}
		rows = append(rows, fmt.Sprintf("%s%s%s %s",
			cursor, marker,
			style.Render(fmt.Sprintf("%-30s", truncate(p.Name, 30))),
			mutedStyle.Render(fmt.Sprintf("%d reports", reports)),
		))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: rename  enter: switch  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
