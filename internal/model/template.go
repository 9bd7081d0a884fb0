package model

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a prefixed unique identifier, e.g. "rep-3f1a...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// weekdayName maps a YYYY-MM-DD date to its weekday name, or "" if the date
// does not parse.
func weekdayName(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// NewReportTemplate builds a fresh report for the given project and date,
// seeded with exactly one "created" history entry. Stable site facts
// (client, contractor, consultant, working hours, weather) carry forward
// from the most recent report so the user only edits what changed.
func NewReportTemplate(p Project, last *DailyReport, date, user string) DailyReport {
	r := DailyReport{
		ID:                  NewID("rep"),
		ProjectID:           p.ID,
		ProjectName:         p.Name,
		Date:                date,
		Day:                 weekdayName(date),
		StartTime:           "08:00",
		EndTime:             "17:00",
		PerformedActivities: []Activity{},
		HumanResources:      []HumanResource{},
		Machinery:           []Machinery{},
		Obstacles:           []Obstacle{},
		History: []HistoryEntry{{
			ID:        NewID("hist"),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			User:      user,
			Action:    ActionCreated,
			Details:   "Report created.",
		}},
	}
	if last != nil {
		r.Client = last.Client
		r.Contractor = last.Contractor
		r.Consultant = last.Consultant
		r.Weather = last.Weather
		r.Temperature = last.Temperature
		r.StartTime = last.StartTime
		r.EndTime = last.EndTime
	}
	return r
}
