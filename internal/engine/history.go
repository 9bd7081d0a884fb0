package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// noChangesDetail is the detail text used when a report is re-saved with no
// tracked field differing.
const noChangesDetail = "Report saved without significant changes."

// jsonEqual compares two values by their JSON encoding: order-sensitive,
// deep, and field-by-field. Any reordering, addition, removal or item-level
// change counts as a difference.
func jsonEqual(a, b any) bool {
	aj, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(aj) == string(bj)
}

// changeDetails diffs the fixed set of tracked fields between two versions
// of a report and composes the audit detail text. Scalar fields compare by
// value; list fields compare by deep structural equality.
func changeDetails(old, new model.DailyReport) string {
	var changes []string

	if old.Weather != new.Weather {
		changes = append(changes, fmt.Sprintf("- Weather changed from '%s' to '%s'.", old.Weather, new.Weather))
	}
	if old.Temperature != new.Temperature {
		changes = append(changes, fmt.Sprintf("- Temperature changed from '%g' to '%g'.", old.Temperature, new.Temperature))
	}
	if old.StartTime != new.StartTime {
		changes = append(changes, "- Start time changed.")
	}
	if old.EndTime != new.EndTime {
		changes = append(changes, "- End time changed.")
	}
	if old.ExecutivePersonnel != new.ExecutivePersonnel {
		changes = append(changes, "- Executive personnel updated.")
	}
	if old.SupervisorOpinion != new.SupervisorOpinion {
		changes = append(changes, "- Supervisor opinion updated.")
	}
	if old.ClientOpinion != new.ClientOpinion {
		changes = append(changes, "- Client opinion updated.")
	}

	if !jsonEqual(old.PerformedActivities, new.PerformedActivities) {
		changes = append(changes, "- Performed activities list updated.")
	}
	if !jsonEqual(old.HumanResources, new.HumanResources) {
		changes = append(changes, "- Human resources list updated.")
	}
	if !jsonEqual(old.Machinery, new.Machinery) {
		changes = append(changes, "- Machinery list updated.")
	}
	if !jsonEqual(old.Obstacles, new.Obstacles) {
		changes = append(changes, "- Obstacles list updated.")
	}

	if len(changes) == 0 {
		return noChangesDetail
	}
	return strings.Join(changes, "\n")
}
