package tui

import (
	"fmt"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// viewState represents the currently active view.
type viewState int

const (
	viewReports viewState = iota
	viewDashboard
	viewProblems
	viewTrends
	viewDocuments
	viewProjects
	viewSettings
)

var viewNames = []string{"Reports", "Dashboard", "Problems", "Trends", "Documents", "Projects", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// dataChangedMsg tells every view to re-derive from the current snapshot.
type dataChangedMsg struct{}

type reportSavedMsg struct {
	report model.DailyReport
}

type backupWrittenMsg struct {
	path string
}

type backupStagedMsg struct{}

type themeChangedMsg struct {
	theme string
}

// --- Helpers ---

func errorStatus(err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// percent returns done/total as 0-100, clamped.
func percent(done, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p := done / total * 100
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}

func truncate(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
