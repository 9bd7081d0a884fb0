package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	eng    *engine.Engine
	width  int
	height int

	activeView viewState
	showHelp   bool

	reports   reportsModel
	dashboard dashboardModel
	problems  problemsModel
	trends    trendsModel
	documents documentsModel
	projects  projectsModel
	settings  settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(eng *engine.Engine, st *store.Store) App {
	applyTheme(st.Theme())

	h := help.New()
	h.ShowAll = false

	return App{
		eng:        eng,
		activeView: viewReports,
		reports:    newReportsModel(eng),
		dashboard:  newDashboardModel(eng),
		problems:   newProblemsModel(eng),
		trends:     newTrendsModel(eng),
		documents:  newDocumentsModel(eng),
		projects:   newProjectsModel(eng),
		settings:   newSettingsModel(eng, st),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.reports.refresh(),
		a.dashboard.refresh(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.reports.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.problems.setSize(a.width, contentHeight)
		a.trends.setSize(a.width, contentHeight)
		a.documents.setSize(a.width, contentHeight)
		a.projects.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// A capturing child (form or confirmation overlay) sees every key.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewReports)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewProblems)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewTrends)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewDocuments)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewProjects)
		case key.Matches(msg, keys.Tab7):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			// Never cycle away from a nested report view with tab;
			// it is too easy to hit while typing dates.
			if a.activeView == viewReports && a.reports.mode != reportsList {
				return a.updateActiveView(msg)
			}
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}
		return a.updateActiveView(msg)

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case reportSavedMsg:
		a.status = "Report " + msg.report.Date + " saved"
		a.statusError = false
		return a, nil

	case backupWrittenMsg:
		a.status = "Backup written to " + msg.path
		a.statusError = false
		return a, nil

	case backupStagedMsg:
		// The reports view renders the confirmation overlay.
		a.activeView = viewReports
		return a, nil

	case themeChangedMsg:
		a.status = "Theme set to " + msg.theme
		a.statusError = false
		return a, nil

	case dataChangedMsg:
		// Fan out so every derived view re-reads the snapshot.
		return a, tea.Batch(
			a.reports.refresh(),
			a.dashboard.refresh(),
			a.problems.refresh(),
			a.trends.refresh(),
			a.documents.refresh(),
			a.projects.refresh(),
		)
	}

	return a.updateAllViews(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewReports:
		return a, a.reports.refresh()
	case viewDashboard:
		return a, a.dashboard.refresh()
	case viewProblems:
		return a, a.problems.refresh()
	case viewTrends:
		return a, a.trends.refresh()
	case viewDocuments:
		return a, a.documents.refresh()
	case viewProjects:
		return a, a.projects.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewProblems:
		a.problems, cmd = a.problems.update(msg)
	case viewTrends:
		a.trends, cmd = a.trends.update(msg)
	case viewDocuments:
		a.documents, cmd = a.documents.update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

// updateAllViews routes data messages to every child so background refreshes
// land no matter which tab is active.
func (a App) updateAllViews(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.reports, cmd = a.reports.update(msg)
	cmds = append(cmds, cmd)
	a.dashboard, cmd = a.dashboard.update(msg)
	cmds = append(cmds, cmd)
	a.problems, cmd = a.problems.update(msg)
	cmds = append(cmds, cmd)
	a.trends, cmd = a.trends.update(msg)
	cmds = append(cmds, cmd)
	a.documents, cmd = a.documents.update(msg)
	cmds = append(cmds, cmd)
	a.projects, cmd = a.projects.update(msg)
	cmds = append(cmds, cmd)
	a.settings, cmd = a.settings.update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a App) isCapturing() bool {
	switch a.activeView {
	case viewReports:
		return a.reports.formActive || a.reports.confirmingRestore
	case viewProblems:
		return a.problems.formActive
	case viewDocuments:
		return a.documents.formActive
	case viewProjects:
		return a.projects.formActive || a.projects.confirming
	case viewSettings:
		return a.settings.formActive || a.settings.confirming
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewReports:
		content = a.reports.view()
	case viewDashboard:
		content = a.dashboard.view()
	case viewProblems:
		content = a.problems.view()
	case viewTrends:
		content = a.trends.view()
	case viewDocuments:
		content = a.documents.view()
	case viewProjects:
		content = a.projects.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("daily-report")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)
	right := status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
