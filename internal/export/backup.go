// Package export writes and reads backup files and exports report tables.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// WriteBackup serializes the full snapshot to path as indented JSON. The
// backup file is also what Restore consumes.
func WriteBackup(data model.AppData, path string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// ReadBackup parses a backup file into a snapshot. The content is taken
// verbatim; restoring it is the caller's two-phase decision.
func ReadBackup(path string) (model.AppData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.AppData{}, fmt.Errorf("read backup file: %w", err)
	}
	var data model.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.AppData{}, fmt.Errorf("parse backup file: %w", err)
	}
	if data.Version == 0 {
		return model.AppData{}, fmt.Errorf("backup file %s has no version field", path)
	}
	if data.Projects == nil {
		data.Projects = []model.Project{}
	}
	if data.Reports == nil {
		data.Reports = []model.DailyReport{}
	}
	if data.Documents == nil {
		data.Documents = []model.ProjectDocument{}
	}
	return data, nil
}
