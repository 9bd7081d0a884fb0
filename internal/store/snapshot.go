package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// Load returns the persisted snapshot. A missing or unreadable snapshot
// yields the empty version-2 skeleton; this boundary never fails upward.
func (s *Store) Load() model.AppData {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM snapshot WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Empty()
	}
	if err != nil {
		return model.Empty()
	}

	var data model.AppData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return model.Empty()
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
	return data
}

// Save serializes the whole snapshot, replacing the previous one.
func (s *Store) Save(data model.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO snapshot (id, data, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		string(raw), now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
