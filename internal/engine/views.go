package engine

import (
	"sort"
	"time"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// ActiveProject returns the currently selected project, or nil when none.
func (e *Engine) ActiveProject() *model.Project {
	if e.data.ActiveProjectID == "" {
		return nil
	}
	return e.data.FindProject(e.data.ActiveProjectID)
}

// ActiveReports returns the active project's reports sorted by date
// descending. Dates are ISO YYYY-MM-DD strings, so lexicographic order is
// chronological order.
func (e *Engine) ActiveReports() []model.DailyReport {
	p := e.ActiveProject()
	if p == nil {
		return nil
	}
	var reports []model.DailyReport
	for _, r := range e.data.Reports {
		if r.ProjectID == p.ID {
			reports = append(reports, r)
		}
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Date > reports[j].Date
	})
	return reports
}

// ActiveDocuments returns the active project's documents, newest upload
// first.
func (e *Engine) ActiveDocuments() []model.ProjectDocument {
	p := e.ActiveProject()
	if p == nil {
		return nil
	}
	var docs []model.ProjectDocument
	for _, d := range e.data.Documents {
		if d.ProjectID == p.ID {
			docs = append(docs, d)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return uploadTime(docs[i]).After(uploadTime(docs[j]))
	})
	return docs
}

func uploadTime(d model.ProjectDocument) time.Time {
	t, _ := time.Parse(time.RFC3339, d.UploadDate)
	return t
}

// ObstacleRef locates one obstacle occurrence inside a report.
type ObstacleRef struct {
	ReportID   string
	ReportDate string
	Obstacle   model.Obstacle
}

// ActiveObstacles returns every obstacle of the active project's reports in
// date-sorted report order, for the problem log.
func (e *Engine) ActiveObstacles() []ObstacleRef {
	var refs []ObstacleRef
	for _, r := range e.ActiveReports() {
		for _, o := range r.Obstacles {
			refs = append(refs, ObstacleRef{ReportID: r.ID, ReportDate: r.Date, Obstacle: o})
		}
	}
	return refs
}

// DaySummary aggregates one report day for the dashboard.
type DaySummary struct {
	Date           string
	Personnel      int
	MachineryCount int
	ActivityVolume float64
	OpenObstacles  int
}

// DailySummaries aggregates the active project's reports per day, oldest
// first, for dashboard charts.
func (e *Engine) DailySummaries() []DaySummary {
	reports := e.ActiveReports()
	summaries := make([]DaySummary, 0, len(reports))
	for i := len(reports) - 1; i >= 0; i-- {
		r := reports[i]
		s := DaySummary{Date: r.Date}
		for _, hr := range r.HumanResources {
			s.Personnel += hr.Count
		}
		for _, m := range r.Machinery {
			s.MachineryCount += m.Count
		}
		for _, a := range r.PerformedActivities {
			s.ActivityVolume += a.DoneToday
		}
		for _, o := range r.Obstacles {
			if o.Status == model.StatusOpen {
				s.OpenObstacles++
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// ActivityTrend is the cumulative progress of one activity description
// across the active project's reports.
type ActivityTrend struct {
	Description string
	Unit        string
	TotalVolume float64
	Done        float64 // donePrevious + doneToday of the latest occurrence
}

// ActivityTrends derives per-activity progress from the most recent report
// that mentions each activity description.
func (e *Engine) ActivityTrends() []ActivityTrend {
	seen := make(map[string]bool)
	var trends []ActivityTrend
	for _, r := range e.ActiveReports() { // newest first
		for _, a := range r.PerformedActivities {
			if seen[a.Description] {
				continue
			}
			seen[a.Description] = true
			trends = append(trends, ActivityTrend{
				Description: a.Description,
				Unit:        a.Unit,
				TotalVolume: a.TotalVolume,
				Done:        a.DonePrevious + a.DoneToday,
			})
		}
	}
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Description < trends[j].Description
	})
	return trends
}
