package state

import (
	"database/sql"
	"time"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	GetPrefs() (Prefs, error)
	SavePrefs(p Prefs) error
	RecordOpen(path string, openedAt time.Time) error
	RecordGroup(path string, g, occupied int, saved bool) error
	ForgetGroup(path string, g int) error
	SaveResumePosition(path string, pos time.Duration)
	GetRecent(path string) (*RecentVideo, error)
	ListRecent(limit int) ([]RecentVideo, error)
	ForgetVideo(path string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
