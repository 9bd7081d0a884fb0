package engine

import (
	"time"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// SaveReport upserts a report. When a report with the same id already
// exists, the tracked fields are diffed against it and one "updated" history
// entry is prepended describing the changes. When the report is new and
// arrived without a history (the template normally seeds one), exactly one
// "created" entry is seeded. Returns the report as saved.
func (e *Engine) SaveReport(report model.DailyReport) (model.DailyReport, error) {
	saved := report.Clone()
	old := e.data.FindReport(report.ID)

	now := time.Now().UTC().Format(time.RFC3339)
	if old != nil {
		entry := model.HistoryEntry{
			ID:        model.NewID("hist"),
			Timestamp: now,
			User:      e.user,
			Action:    model.ActionUpdated,
			Details:   changeDetails(*old, saved),
		}
		saved.History = append([]model.HistoryEntry{entry}, saved.History...)
	} else if len(saved.History) == 0 {
		// The template seeds the created entry; this is a fallback.
		saved.History = []model.HistoryEntry{{
			ID:        model.NewID("hist"),
			Timestamp: now,
			User:      e.user,
			Action:    model.ActionCreated,
			Details:   "Report created.",
		}}
	}

	next := e.data.Clone()
	replaced := false
	for i := range next.Reports {
		if next.Reports[i].ID == saved.ID {
			next.Reports[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		next.Reports = append([]model.DailyReport{saved}, next.Reports...)
	}
	return saved, e.apply(next)
}

// DeleteReport removes a report by id. Unknown ids are a no-op.
func (e *Engine) DeleteReport(id string) error {
	next := e.data.Clone()
	reports := next.Reports[:0]
	for _, r := range next.Reports {
		if r.ID != id {
			reports = append(reports, r)
		}
	}
	next.Reports = reports
	return e.apply(next)
}

// SolveObstacle resolves an obstacle identified by report and obstacle id.
// Resolution matches by description text, not id: every open obstacle with
// the same description text, in any report, is closed with the given
// resolution fields. The same obstacle recurs across daily reports, and one
// resolution closes all open occurrences. Missing report or obstacle is a
// no-op.
func (e *Engine) SolveObstacle(reportID, obstacleID, resolutionDate, resolutionNotes string) error {
	report := e.data.FindReport(reportID)
	if report == nil {
		return nil
	}
	var description string
	found := false
	for _, o := range report.Obstacles {
		if o.ID == obstacleID {
			description = o.Description
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	next := e.data.Clone()
	for i := range next.Reports {
		for j := range next.Reports[i].Obstacles {
			o := &next.Reports[i].Obstacles[j]
			if o.Description == description && o.Status == model.StatusOpen {
				o.Status = model.StatusClosed
				o.ResolutionDate = resolutionDate
				o.ResolutionNotes = resolutionNotes
			}
		}
	}
	return e.apply(next)
}

// NewReport builds a report template for the active project, carrying
// forward details from its most recent report.
func (e *Engine) NewReport(date string) (model.DailyReport, error) {
	p := e.ActiveProject()
	if p == nil {
		return model.DailyReport{}, ErrNoActiveProject
	}
	var last *model.DailyReport
	if reports := e.ActiveReports(); len(reports) > 0 {
		last = &reports[0]
	}
	return model.NewReportTemplate(*p, last, date, e.user), nil
}

// FindReportByDate returns the active project's report for the given date,
// or nil. The model permits duplicate dates; the first in date-sorted order
// wins.
func (e *Engine) FindReportByDate(date string) *model.DailyReport {
	reports := e.ActiveReports()
	for i := range reports {
		if reports[i].Date == date {
			return &reports[i]
		}
	}
	return nil
}
