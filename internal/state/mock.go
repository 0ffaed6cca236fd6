package state

import (
	"database/sql"
	"slices"
	"time"
)

// Mock is a test double for Manager.
type Mock struct {
	prefs   Prefs
	recent  map[string]*RecentVideo
	saveErr error
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{prefs: DefaultPrefs(), recent: map[string]*RecentVideo{}}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetPrefs() (Prefs, error) { return m.prefs, nil }

func (m *Mock) SavePrefs(p Prefs) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.prefs = p
	return nil
}

func (m *Mock) video(path string) *RecentVideo {
	v, ok := m.recent[path]
	if !ok {
		v = &RecentVideo{Path: path, SavedGroups: map[int]int{}}
		m.recent[path] = v
	}
	return v
}

func (m *Mock) RecordOpen(path string, openedAt time.Time) error {
	m.video(path).OpenedAt = openedAt
	return nil
}

func (m *Mock) RecordGroup(path string, g, occupied int, saved bool) error {
	v := m.video(path)
	v.ActiveGroup = g
	if saved {
		v.SavedGroups[g] = occupied
	}
	return nil
}

func (m *Mock) ForgetGroup(path string, g int) error {
	if v, ok := m.recent[path]; ok {
		delete(v.SavedGroups, g)
	}
	return nil
}

func (m *Mock) SaveResumePosition(path string, pos time.Duration) {
	m.video(path).LastPosition = pos
}

func (m *Mock) GetRecent(path string) (*RecentVideo, error) {
	v, ok := m.recent[path]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	cp := *v
	return &cp, nil
}

func (m *Mock) ListRecent(limit int) ([]RecentVideo, error) {
	out := make([]RecentVideo, 0, len(m.recent))
	for _, v := range m.recent {
		out = append(out, *v)
	}
	slices.SortFunc(out, func(a, b RecentVideo) int { return b.OpenedAt.Compare(a.OpenedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) ForgetVideo(path string) error {
	delete(m.recent, path)
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPrefs(p Prefs) { m.prefs = p }

func (m *Mock) SetSaveError(err error) { m.saveErr = err }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
