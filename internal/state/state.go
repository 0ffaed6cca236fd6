// Package state persists what the player remembers between runs: user
// preferences and recently opened videos with their resume positions.
// Bookmarks themselves live in the per-video group files.
package state

import (
	"database/sql"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	dbutil "github.com/llehouerou/loopmark/internal/db"
)

const (
	appName      = "loopmark"
	dbFileName   = "loopmark.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *ResumePosition
}

// ResumePosition is the last playback position of a video.
type ResumePosition struct {
	Path     string
	Position time.Duration
}

// Open opens the database under the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at path; dbutil.MemoryPath gives a private
// in-memory store.
func OpenPath(path string) (*Manager, error) {
	db, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending position
	if pending != nil {
		_ = saveResumePosition(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SaveResumePosition records pos for path. Writes are debounced since the
// position changes on every poll.
func (m *Manager) SaveResumePosition(path string, pos time.Duration) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &ResumePosition{Path: path, Position: pos}

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveResumePosition(m.db, *pending)
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
