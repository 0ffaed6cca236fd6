package state

import (
	"database/sql"
	"errors"
)

// Prefs are the user settings that survive restarts.
type Prefs struct {
	Volume    int
	LoadSpeed bool
}

// DefaultPrefs is returned before anything was saved.
func DefaultPrefs() Prefs {
	return Prefs{Volume: 100}
}

// GetPrefs returns the saved preferences.
func (m *Manager) GetPrefs() (Prefs, error) {
	var p Prefs
	row := m.db.QueryRow(`SELECT volume, load_speed FROM preferences WHERE id = 1`)
	err := row.Scan(&p.Volume, &p.LoadSpeed)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultPrefs(), nil
	}
	if err != nil {
		return Prefs{}, err
	}
	return p, nil
}

// SavePrefs persists p.
func (m *Manager) SavePrefs(p Prefs) error {
	_, err := m.db.Exec(`
		INSERT INTO preferences (id, volume, load_speed)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			load_speed = excluded.load_speed
	`, p.Volume, p.LoadSpeed)
	return err
}
