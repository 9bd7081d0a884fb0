package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/export"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

type reportsMode int

const (
	reportsList reportsMode = iota
	reportsDetail
	reportsForm
)

type reportsModel struct {
	eng    *engine.Engine
	width  int
	height int

	mode    reportsMode
	reports []model.DailyReport
	cursor  int

	// The report currently shown in detail or edited in the form.
	selected model.DailyReport

	formActive bool
	form       *huh.Form
	formType   string // "report", "activity", "personnel", "machinery", "obstacle", "restore"

	// Form field pointers (survive value copies)
	fDate        *string
	fWeather     *string
	fTemperature *string
	fStartTime   *string
	fEndTime     *string
	fClient      *string
	fContractor  *string
	fConsultant  *string
	fPersonnel   *string
	fSupervisor  *string
	fClientOp    *string

	fDesc        *string
	fUnit        *string
	fDoneToday   *string
	fCount       *string
	fHours       *string
	fObsType     *string
	fPriority    *string
	fWorkFront   *string
	fTotalVolume *string

	fPath *string

	confirmingRestore bool
}

func newReportsModel(eng *engine.Engine) reportsModel {
	m := reportsModel{eng: eng}
	for _, p := range []**string{
		&m.fDate, &m.fWeather, &m.fTemperature, &m.fStartTime, &m.fEndTime,
		&m.fClient, &m.fContractor, &m.fConsultant,
		&m.fPersonnel, &m.fSupervisor, &m.fClientOp,
		&m.fDesc, &m.fUnit, &m.fDoneToday, &m.fCount, &m.fHours,
		&m.fObsType, &m.fPriority, &m.fWorkFront, &m.fTotalVolume,
		&m.fPath,
	} {
		s := ""
		*p = &s
	}
	return m
}

func (m *reportsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type reportsDataMsg struct {
	reports []model.DailyReport
}

func (m reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return reportsDataMsg{reports: m.eng.ActiveReports()}
	}
}

func (m reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	if m.confirmingRestore {
		return m.updateRestoreConfirm(msg)
	}

	switch msg := msg.(type) {
	case reportsDataMsg:
		m.reports = msg.reports
		if m.cursor >= len(m.reports) {
			m.cursor = max(0, len(m.reports)-1)
		}
		// Keep the detail view in sync with the saved state.
		if m.mode == reportsDetail {
			if r := m.eng.Data().FindReport(m.selected.ID); r != nil {
				m.selected = *r
			} else {
				m.mode = reportsList
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case reportsDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m reportsModel) updateList(msg tea.KeyMsg) (reportsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.reports)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.reports) > 0 {
			m.selected = m.reports[m.cursor]
			m.mode = reportsDetail
		}
	case key.Matches(msg, keys.New):
		today := time.Now().Format("2006-01-02")
		if existing := m.eng.FindReportByDate(today); existing != nil {
			m.selected = *existing
			return m.showReportForm()
		}
		report, err := m.eng.NewReport(today)
		if err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Create or select a project first.", isError: true}
			}
		}
		m.selected = report
		return m.showReportForm()
	case key.Matches(msg, keys.Delete):
		if len(m.reports) > 0 {
			id := m.reports[m.cursor].ID
			if err := m.eng.DeleteReport(id); err != nil {
				return m, func() tea.Msg { return errorStatus(err) }
			}
			return m, tea.Batch(m.refresh(), func() tea.Msg { return dataChangedMsg{} })
		}
	case key.Matches(msg, keys.Backup):
		return m, m.writeBackup()
	case key.Matches(msg, keys.Restore):
		return m.showRestoreForm()
	case key.Matches(msg, keys.Export):
		return m, m.exportCSV()
	}
	return m, nil
}

func (m reportsModel) updateDetail(msg tea.KeyMsg) (reportsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.mode = reportsList
		return m, nil
	case key.Matches(msg, keys.Edit):
		return m.showReportForm()
	case key.Matches(msg, keys.Delete):
		if err := m.eng.DeleteReport(m.selected.ID); err != nil {
			return m, func() tea.Msg { return errorStatus(err) }
		}
		m.mode = reportsList
		return m, tea.Batch(m.refresh(), func() tea.Msg { return dataChangedMsg{} })
	}

	switch msg.String() {
	case "a":
		return m.showItemForm("activity")
	case "p":
		return m.showItemForm("personnel")
	case "m":
		return m.showItemForm("machinery")
	case "o":
		return m.showItemForm("obstacle")
	}
	return m, nil
}

func (m reportsModel) showReportForm() (reportsModel, tea.Cmd) {
	r := m.selected
	*m.fDate = r.Date
	*m.fWeather = r.Weather
	*m.fTemperature = strconv.FormatFloat(r.Temperature, 'f', -1, 64)
	*m.fStartTime = r.StartTime
	*m.fEndTime = r.EndTime
	*m.fClient = r.Client
	*m.fContractor = r.Contractor
	*m.fConsultant = r.Consultant
	*m.fPersonnel = r.ExecutivePersonnel
	*m.fSupervisor = r.SupervisorOpinion
	*m.fClientOp = r.ClientOpinion
	m.formType = "report"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.fDate),
			huh.NewInput().Title("Weather").Value(m.fWeather),
			huh.NewInput().Title("Temperature (°C)").Value(m.fTemperature),
			huh.NewInput().Title("Start time").Value(m.fStartTime),
			huh.NewInput().Title("End time").Value(m.fEndTime),
		).Title("Day"),
		huh.NewGroup(
			huh.NewInput().Title("Client").Value(m.fClient),
			huh.NewInput().Title("Contractor").Value(m.fContractor),
			huh.NewInput().Title("Consultant").Value(m.fConsultant),
		).Title("Parties"),
		huh.NewGroup(
			huh.NewInput().Title("Executive personnel").Value(m.fPersonnel),
			huh.NewText().Title("Supervisor opinion").Value(m.fSupervisor),
			huh.NewText().Title("Client opinion").Value(m.fClientOp),
		).Title("Notes"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m reportsModel) showItemForm(kind string) (reportsModel, tea.Cmd) {
	m.formType = kind
	*m.fDesc = ""
	*m.fUnit = ""
	*m.fDoneToday = "0"
	*m.fTotalVolume = "0"
	*m.fWorkFront = ""
	*m.fCount = "1"
	*m.fHours = "0"
	*m.fObsType = "equipment"
	*m.fPriority = "medium"

	var group *huh.Group
	switch kind {
	case "activity":
		group = huh.NewGroup(
			huh.NewInput().Title("Description").Value(m.fDesc),
			huh.NewInput().Title("Unit").Value(m.fUnit),
			huh.NewInput().Title("Done today").Value(m.fDoneToday),
			huh.NewInput().Title("Total volume").Value(m.fTotalVolume),
			huh.NewInput().Title("Work front").Value(m.fWorkFront),
		).Title("New Activity")
	case "personnel":
		group = huh.NewGroup(
			huh.NewInput().Title("Description").Value(m.fDesc),
			huh.NewInput().Title("Count").Value(m.fCount),
		).Title("New Personnel")
	case "machinery":
		group = huh.NewGroup(
			huh.NewInput().Title("Description").Value(m.fDesc),
			huh.NewInput().Title("Count").Value(m.fCount),
			huh.NewInput().Title("Hours worked").Value(m.fHours),
		).Title("New Machinery")
	case "obstacle":
		group = huh.NewGroup(
			huh.NewInput().Title("Description").Value(m.fDesc),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Equipment", "equipment"),
					huh.NewOption("Material", "material"),
					huh.NewOption("Personnel", "personnel"),
					huh.NewOption("Weather", "weather"),
					huh.NewOption("Other", "other"),
				).Value(m.fObsType),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("High", "high"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Low", "low"),
				).Value(m.fPriority),
		).Title("New Obstacle")
	}

	m.form = huh.NewForm(group).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m reportsModel) showRestoreForm() (reportsModel, tea.Cmd) {
	*m.fPath = ""
	m.formType = "restore"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Backup file path").Value(m.fPath),
		).Title("Restore Backup"),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m reportsModel) updateForm(msg tea.Msg) (reportsModel, tea.Cmd) {
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
		switch m.formType {
		case "report":
			return m.submitReportForm()
		case "restore":
			return m.submitRestoreForm()
		default:
			return m.submitItemForm()
		}
	}
	return m, cmd
}

func (m reportsModel) submitReportForm() (reportsModel, tea.Cmd) {
	r := m.selected.Clone()
	if *m.fDate != "" {
		r.Date = *m.fDate
	}
	r.Weather = *m.fWeather
	if temp, err := strconv.ParseFloat(*m.fTemperature, 64); err == nil {
		r.Temperature = temp
	}
	r.StartTime = *m.fStartTime
	r.EndTime = *m.fEndTime
	r.Client = *m.fClient
	r.Contractor = *m.fContractor
	r.Consultant = *m.fConsultant
	r.ExecutivePersonnel = *m.fPersonnel
	r.SupervisorOpinion = *m.fSupervisor
	r.ClientOpinion = *m.fClientOp

	saved, err := m.eng.SaveReport(r)
	if err != nil {
		return m, func() tea.Msg { return errorStatus(err) }
	}
	m.selected = saved
	m.mode = reportsDetail
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return dataChangedMsg{} },
		func() tea.Msg { return reportSavedMsg{report: saved} },
	)
}

func (m reportsModel) submitItemForm() (reportsModel, tea.Cmd) {
	if *m.fDesc == "" {
		return m, nil
	}
	r := m.selected.Clone()
	switch m.formType {
	case "activity":
		done, _ := strconv.ParseFloat(*m.fDoneToday, 64)
		total, _ := strconv.ParseFloat(*m.fTotalVolume, 64)
		prev := 0.0
		for _, a := range r.PerformedActivities {
			if a.Description == *m.fDesc {
				prev = a.DonePrevious + a.DoneToday
			}
		}
		r.PerformedActivities = append(r.PerformedActivities, model.Activity{
			ID:           model.NewID("act"),
			Description:  *m.fDesc,
			Unit:         *m.fUnit,
			DoneToday:    done,
			DonePrevious: prev,
			Remaining:    total - prev - done,
			TotalVolume:  total,
			WorkFront:    *m.fWorkFront,
		})
	case "personnel":
		count, _ := strconv.Atoi(*m.fCount)
		r.HumanResources = append(r.HumanResources, model.HumanResource{
			ID:          model.NewID("hr"),
			Description: *m.fDesc,
			Count:       count,
		})
	case "machinery":
		count, _ := strconv.Atoi(*m.fCount)
		hours, _ := strconv.ParseFloat(*m.fHours, 64)
		r.Machinery = append(r.Machinery, model.Machinery{
			ID:          model.NewID("mach"),
			Description: *m.fDesc,
			Count:       count,
			HoursWorked: hours,
		})
	case "obstacle":
		r.Obstacles = append(r.Obstacles, model.Obstacle{
			ID:          model.NewID("obs"),
			Description: *m.fDesc,
			DateAdded:   r.Date,
			Type:        *m.fObsType,
			Priority:    *m.fPriority,
			Status:      model.StatusOpen,
		})
	}

	saved, err := m.eng.SaveReport(r)
	if err != nil {
		return m, func() tea.Msg { return errorStatus(err) }
	}
	m.selected = saved
	return m, tea.Batch(m.refresh(), func() tea.Msg { return dataChangedMsg{} })
}

func (m reportsModel) submitRestoreForm() (reportsModel, tea.Cmd) {
	data, err := export.ReadBackup(*m.fPath)
	if err != nil {
		return m, func() tea.Msg { return errorStatus(err) }
	}
	m.eng.StageRestore(data)
	m.confirmingRestore = true
	return m, func() tea.Msg { return backupStagedMsg{} }
}

func (m reportsModel) updateRestoreConfirm(msg tea.Msg) (reportsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.confirmingRestore = false
		pending := m.eng.PendingRestore()
		if err := m.eng.ConfirmRestore(); err != nil {
			return m, func() tea.Msg { return errorStatus(err) }
		}
		text := "Backup restored"
		if pending != nil {
			text = fmt.Sprintf("Backup restored: %d projects, %d reports, %d documents",
				len(pending.Projects), len(pending.Reports), len(pending.Documents))
		}
		m.mode = reportsList
		return m, tea.Batch(
			m.refresh(),
			func() tea.Msg { return dataChangedMsg{} },
			func() tea.Msg { return statusMsg{text: text} },
		)
	case "n", "N", "esc":
		m.confirmingRestore = false
		m.eng.CancelRestore()
		return m, func() tea.Msg { return statusMsg{text: "Restore cancelled"} }
	}
	return m, nil
}

func (m reportsModel) writeBackup() tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, fmt.Sprintf("daily-report-backup-%s.json", time.Now().Format("2006-01-02")))
		if err := export.WriteBackup(m.eng.Data(), path); err != nil {
			return errorStatus(err)
		}
		return backupWrittenMsg{path: path}
	}
}

func (m reportsModel) exportCSV() tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, fmt.Sprintf("daily-reports-%s.csv", time.Now().Format("2006-01-02")))
		if err := export.ReportsToCSV(m.eng.ActiveReports(), path); err != nil {
			return errorStatus(err)
		}
		return statusMsg{text: "Exported to " + path}
	}
}

// --- Rendering ---

func (m reportsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("Report")
		if m.formType == "restore" {
			title = titleStyle.Render("Restore Backup")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}
	if m.confirmingRestore {
		return m.renderRestoreConfirm()
	}
	if m.mode == reportsDetail {
		return m.renderDetail()
	}
	return m.renderList()
}

func (m reportsModel) renderList() string {
	w := m.width - 4
	title := titleStyle.Render("Daily Reports")
	if p := m.eng.ActiveProject(); p != nil {
		title += mutedStyle.Render("  " + p.Name)
	}

	if len(m.reports) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No reports yet. Press n to create today's report."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	header := mutedStyle.Render(fmt.Sprintf("  %-12s %-10s %-12s %-9s %s", "Date", "Day", "Weather", "Temp", "Obstacles"))
	rows = append(rows, header)

	for i, r := range m.reports {
		open := 0
		for _, o := range r.Obstacles {
			if o.Status == model.StatusOpen {
				open++
			}
		}
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		obstacles := mutedStyle.Render("-")
		if open > 0 {
			obstacles = warningStyle.Render(fmt.Sprintf("%d open", open))
		}
		row := style.Render(fmt.Sprintf("%s%-12s %-10s %-12s %-9s", cursor, r.Date, truncate(r.Day, 10), truncate(r.Weather, 12), fmt.Sprintf("%g°C", r.Temperature))) + obstacles
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: view  d: delete  b: backup  r: restore  x: export csv"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m reportsModel) renderDetail() string {
	w := m.width - 4
	r := m.selected

	title := titleStyle.Render(fmt.Sprintf("Report %s", r.Date))
	if r.Day != "" {
		title += mutedStyle.Render("  " + r.Day)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Weather: %s, %g°C   Hours: %s–%s", r.Weather, r.Temperature, r.StartTime, r.EndTime))
	if r.Client != "" || r.Contractor != "" {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Client: %s   Contractor: %s   Consultant: %s", r.Client, r.Contractor, r.Consultant)))
	}
	rows = append(rows, "")

	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  Activities (%d)", len(r.PerformedActivities))))
	for _, a := range r.PerformedActivities {
		rows = append(rows, fmt.Sprintf("    %s: %g %s today, %g/%g total", truncate(a.Description, 30), a.DoneToday, a.Unit, a.DonePrevious+a.DoneToday, a.TotalVolume))
	}
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  Personnel (%d)", len(r.HumanResources))))
	for _, hr := range r.HumanResources {
		rows = append(rows, fmt.Sprintf("    %s × %d", truncate(hr.Description, 30), hr.Count))
	}
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  Machinery (%d)", len(r.Machinery))))
	for _, mach := range r.Machinery {
		rows = append(rows, fmt.Sprintf("    %s × %d, %gh", truncate(mach.Description, 30), mach.Count, mach.HoursWorked))
	}
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  Obstacles (%d)", len(r.Obstacles))))
	for _, o := range r.Obstacles {
		badge := warningStyle.Render("open")
		if o.Status == model.StatusClosed {
			badge = successStyle.Render("closed")
		}
		rows = append(rows, fmt.Sprintf("    [%s] %s", badge, truncate(o.Description, 40)))
	}

	if r.ExecutivePersonnel != "" {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  Personnel: "+truncate(r.ExecutivePersonnel, 60)))
	}

	rows = append(rows, "")
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  History (%d)", len(r.History))))
	shown := min(len(r.History), 5)
	for _, h := range r.History[:shown] {
		ts := h.Timestamp
		if t, err := time.Parse(time.RFC3339, h.Timestamp); err == nil {
			ts = t.Local().Format("2006-01-02 15:04")
		}
		firstLine := h.Details
		if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
			firstLine = firstLine[:i] + " …"
		}
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %s  %s by %s: %s", ts, h.Action, h.User, truncate(firstLine, 50))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: edit  a: +activity  p: +personnel  m: +machinery  o: +obstacle  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m reportsModel) renderRestoreConfirm() string {
	w := m.width - 4
	pending := m.eng.PendingRestore()
	var stats string
	if pending != nil {
		stats = fmt.Sprintf("%d projects, %d reports, %d documents",
			len(pending.Projects), len(pending.Reports), len(pending.Documents))
	}

	rows := []string{
		titleStyle.Render("Restore Backup"),
		"",
		errorStyle.Render("  This replaces ALL current data and attachments."),
		"  Backup contains: " + stats,
		"",
		mutedStyle.Render("  y: restore  n/esc: cancel"),
	}
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
