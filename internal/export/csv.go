package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// ReportsToCSV writes one row per report: date, weather, working hours and
// headline counts. Reports are written in the order given.
func ReportsToCSV(reports []model.DailyReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{
		"Date", "Day", "Weather", "Temperature", "Start", "End",
		"Activities", "Personnel", "Machinery", "Open Obstacles",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range reports {
		personnel := 0
		for _, hr := range r.HumanResources {
			personnel += hr.Count
		}
		machines := 0
		for _, m := range r.Machinery {
			machines += m.Count
		}
		open := 0
		for _, o := range r.Obstacles {
			if o.Status == model.StatusOpen {
				open++
			}
		}

		row := []string{
			r.Date,
			r.Day,
			r.Weather,
			fmt.Sprintf("%g", r.Temperature),
			r.StartTime,
			r.EndTime,
			fmt.Sprintf("%d", len(r.PerformedActivities)),
			fmt.Sprintf("%d", personnel),
			fmt.Sprintf("%d", machines),
			fmt.Sprintf("%d", open),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
