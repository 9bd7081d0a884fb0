package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/store"
)

type settingsModel struct {
	eng    *engine.Engine
	store  *store.Store
	width  int
	height int

	theme string

	formActive bool
	form       *huh.Form
	fTheme     *string
	fUser      *string

	// Reset confirmation
	confirming bool
}

func newSettingsModel(eng *engine.Engine, st *store.Store) settingsModel {
	theme := st.Theme()
	fTheme, fUser := theme, ""
	return settingsModel{
		eng:    eng,
		store:  st,
		theme:  theme,
		fTheme: &fTheme,
		fUser:  &fUser,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	if m.confirming {
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Edit):
		return m.showForm()
	case key.Matches(keyMsg, keys.Delete):
		m.confirming = true
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.fTheme = m.theme
	*m.fUser = engine.DefaultUser

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Sepia", "sepia"),
				).
				Value(m.fTheme),
			huh.NewInput().
				Title("History author name").
				Description("Recorded on every report change.").
				Value(m.fUser),
		).Title("Settings"),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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

		if *m.fUser != "" {
			m.eng.SetUser(*m.fUser)
		}

		if *m.fTheme != m.theme {
			if err := m.store.SetTheme(*m.fTheme); err != nil {
				return m, func() tea.Msg { return errorStatus(err) }
			}
			m.theme = *m.fTheme
			applyTheme(m.theme)
			return m, func() tea.Msg { return themeChangedMsg{theme: m.theme} }
		}
		return m, func() tea.Msg { return statusMsg{text: "Settings saved"} }
	}
	return m, cmd
}

func (m settingsModel) updateConfirm(msg tea.Msg) (settingsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.confirming = false
		if err := m.eng.Reset(); err != nil {
			return m, func() tea.Msg { return errorStatus(err) }
		}
		return m, tea.Batch(
			func() tea.Msg { return dataChangedMsg{} },
			func() tea.Msg { return statusMsg{text: "All data erased"} },
		)
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Settings"), "", m.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	data := m.eng.Data()
	counts := fmt.Sprintf("%d projects, %d reports, %d documents",
		len(data.Projects), len(data.Reports), len(data.Documents))

	if m.confirming {
		rows := []string{
			titleStyle.Render("Erase All Data"),
			"",
			errorStyle.Render("  This erases every project, report and attachment."),
			mutedStyle.Render("  Current data: " + counts),
			"",
			mutedStyle.Render("  y: erase everything  n/esc: cancel"),
		}
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		"  Theme:    " + highlightStyle.Render(m.theme),
		"  Database: " + mutedStyle.Render(describePath(store.DefaultDBPath)),
		"",
		mutedStyle.Render("  " + counts),
		"",
		mutedStyle.Render("  e: edit settings  d: erase all data"),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func describePath(f func() (string, error)) string {
	p, err := f()
	if err != nil {
		return "unavailable"
	}
	return p
}
