package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/loopmark/internal/db"
)

// RecentVideo is a previously opened video.
type RecentVideo struct {
	Path         string
	OpenedAt     time.Time
	LastPosition time.Duration
	ActiveGroup  int
	// SavedGroups maps group index to the number of bookmarks it held when
	// last saved.
	SavedGroups map[int]int
}

// RecordOpen marks path as opened at openedAt, keeping its resume position.
func (m *Manager) RecordOpen(path string, openedAt time.Time) error {
	_, err := m.db.Exec(`
		INSERT INTO recent_videos (path, opened_at)
		VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at
	`, path, openedAt.Unix())
	return err
}

// RecordGroup remembers the active group of path and, when saved is true,
// that group g was just persisted with occupied bookmarks.
func (m *Manager) RecordGroup(path string, g, occupied int, saved bool) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO recent_videos (path, opened_at, active_group)
			VALUES (?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET active_group = excluded.active_group
		`, path, time.Now().Unix(), g)
		if err != nil || !saved {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO saved_groups (video_path, group_index, occupied, saved_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(video_path, group_index) DO UPDATE SET
				occupied = excluded.occupied,
				saved_at = excluded.saved_at
		`, path, g, occupied, time.Now().Unix())
		return err
	})
}

// ForgetGroup drops the saved-group record of path's group g.
func (m *Manager) ForgetGroup(path string, g int) error {
	_, err := m.db.Exec(`DELETE FROM saved_groups WHERE video_path = ? AND group_index = ?`, path, g)
	return err
}

// GetRecent returns the video at path, or nil if it was never opened.
func (m *Manager) GetRecent(path string) (*RecentVideo, error) {
	row := m.db.QueryRow(`
		SELECT path, opened_at, last_position_ms, active_group
		FROM recent_videos WHERE path = ?
	`, path)
	v, err := scanRecent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // never opened is not an error
	}
	if err != nil {
		return nil, err
	}
	if err := m.loadSavedGroups([]*RecentVideo{v}); err != nil {
		return nil, err
	}
	return v, nil
}

// ListRecent returns up to limit videos, most recently opened first.
func (m *Manager) ListRecent(limit int) ([]RecentVideo, error) {
	rows, err := m.db.Query(`
		SELECT path, opened_at, last_position_ms, active_group
		FROM recent_videos
		ORDER BY opened_at DESC, path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ptrs []*RecentVideo
	for rows.Next() {
		v, err := scanRecent(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := m.loadSavedGroups(ptrs); err != nil {
		return nil, err
	}

	out := make([]RecentVideo, len(ptrs))
	for i, v := range ptrs {
		out[i] = *v
	}
	return out, nil
}

// ForgetVideo removes path and its saved-group records.
func (m *Manager) ForgetVideo(path string) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM saved_groups WHERE video_path = ?`, path); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM recent_videos WHERE path = ?`, path)
		return err
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecent(s scanner) (*RecentVideo, error) {
	var (
		v        RecentVideo
		opened   int64
		position sql.NullInt64
	)
	if err := s.Scan(&v.Path, &opened, &position, &v.ActiveGroup); err != nil {
		return nil, err
	}
	v.OpenedAt = time.Unix(opened, 0)
	v.LastPosition = time.Duration(dbutil.NullInt64Value(position)) * time.Millisecond
	v.SavedGroups = map[int]int{}
	return &v, nil
}

func (m *Manager) loadSavedGroups(videos []*RecentVideo) error {
	for _, v := range videos {
		rows, err := m.db.Query(`
			SELECT group_index, occupied FROM saved_groups WHERE video_path = ?
		`, v.Path)
		if err != nil {
			return err
		}
		for rows.Next() {
			var g, n int
			if err := rows.Scan(&g, &n); err != nil {
				rows.Close()
				return err
			}
			v.SavedGroups[g] = n
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func saveResumePosition(db *sql.DB, p ResumePosition) error {
	_, err := db.Exec(`
		INSERT INTO recent_videos (path, opened_at, last_position_ms)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET last_position_ms = excluded.last_position_ms
	`, p.Path, time.Now().Unix(), p.Position.Milliseconds())
	return err
}
