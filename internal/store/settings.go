package store

import "fmt"

// Themes the UI knows how to render.
var Themes = []string{"light", "dark", "sepia"}

const defaultTheme = "dark"

// Theme returns the persisted theme preference. Unknown or missing values
// fall back to the default.
func (s *Store) Theme() string {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'theme'`).Scan(&value)
	if err != nil {
		return defaultTheme
	}
	for _, t := range Themes {
		if value == t {
			return value
		}
	}
	return defaultTheme
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(theme string) error {
	valid := false
	for _, t := range Themes {
		if theme == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown theme %q", theme)
	}
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES ('theme', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		theme,
	)
	return err
}
