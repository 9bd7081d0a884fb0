package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// dashboardModel shows project-wide aggregates: one bar per report day plus
// headline counters for personnel, machinery and open obstacles.
type dashboardModel struct {
	eng    *engine.Engine
	width  int
	height int

	summaries []engine.DaySummary
	reports   []model.DailyReport
	chart     barchart.Model
}

func newDashboardModel(eng *engine.Engine) dashboardModel {
	return dashboardModel{
		eng:   eng,
		chart: barchart.New(60, 10),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	summaries []engine.DaySummary
	reports   []model.DailyReport
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return dashboardDataMsg{
			summaries: d.eng.DailySummaries(),
			reports:   d.eng.ActiveReports(),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.summaries = msg.summaries
		d.reports = msg.reports
		d.buildChart()
		return d, nil
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if d.height > 30 {
		chartHeight = 14
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	// Most recent two weeks of report days, oldest first.
	summaries := d.summaries
	if len(summaries) > 14 {
		summaries = summaries[len(summaries)-14:]
	}

	var bars []barchart.BarData
	for _, s := range summaries {
		label := s.Date
		if t, err := time.Parse("2006-01-02", s.Date); err == nil {
			label = t.Format("Jan 02")
		}
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "volume",
				Value: s.ActivityVolume,
				Style: style,
			}},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	w := d.width - 4

	project := d.eng.ActiveProject()
	if project == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Dashboard"),
			"",
			mutedStyle.Render("No active project. Press 6 to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	header := titleStyle.Render("Dashboard") + mutedStyle.Render("  "+project.Name)

	counters := d.renderCounters()
	chartTitle := highlightStyle.Render("  Activity volume per day")
	chartView := d.chart.View()
	table := d.renderSummaryTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", counters, "", chartTitle, chartView, "", table,
		),
	)
}

func (d dashboardModel) renderCounters() string {
	var personnel, machinery, open int
	var volume float64
	for _, s := range d.summaries {
		personnel += s.Personnel
		machinery += s.MachineryCount
		volume += s.ActivityVolume
		open += s.OpenObstacles
	}

	openText := successStyle.Render("0")
	if open > 0 {
		openText = warningStyle.Render(fmt.Sprintf("%d", open))
	}

	return fmt.Sprintf("  Reports: %s   Person-days: %s   Machine-days: %s   Volume: %s   Open obstacles: %s",
		highlightStyle.Render(fmt.Sprintf("%d", len(d.reports))),
		highlightStyle.Render(fmt.Sprintf("%d", personnel)),
		highlightStyle.Render(fmt.Sprintf("%d", machinery)),
		highlightStyle.Render(fmt.Sprintf("%g", volume)),
		openText,
	)
}

func (d dashboardModel) renderSummaryTable(w int) string {
	if len(d.summaries) == 0 {
		return mutedStyle.Render("  No reports yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s %10s %10s", "Date", "Personnel", "Machinery", "Volume", "Open")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 56))))

	// Newest first in the table.
	for i := len(d.summaries) - 1; i >= 0; i-- {
		s := d.summaries[i]
		rows = append(rows, fmt.Sprintf("  %-12s %10d %10d %10g %10d",
			s.Date, s.Personnel, s.MachineryCount, s.ActivityVolume, s.OpenObstacles,
		))
		if len(rows) > 10 {
			break
		}
	}

	return strings.Join(rows, "\n")
}
