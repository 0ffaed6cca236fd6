package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbutil "github.com/llehouerou/loopmark/internal/db"
)

func setupTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(dbutil.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestPrefs_DefaultsAndSave(t *testing.T) {
	m := setupTestManager(t)

	p, err := m.GetPrefs()
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefs(), p)

	require.NoError(t, m.SavePrefs(Prefs{Volume: 140, LoadSpeed: true}))
	require.NoError(t, m.SavePrefs(Prefs{Volume: 150, LoadSpeed: true}))

	p, err = m.GetPrefs()
	require.NoError(t, err)
	assert.Equal(t, Prefs{Volume: 150, LoadSpeed: true}, p)
}

func TestRecent_OrderAndLimit(t *testing.T) {
	m := setupTestManager(t)
	base := time.Unix(1_700_000_000, 0)

	require.NoError(t, m.RecordOpen("/v/a.mp4", base))
	require.NoError(t, m.RecordOpen("/v/b.mp4", base.Add(time.Hour)))
	require.NoError(t, m.RecordOpen("/v/c.mp4", base.Add(2*time.Hour)))
	// Re-opening moves a video to the front.
	require.NoError(t, m.RecordOpen("/v/a.mp4", base.Add(3*time.Hour)))

	list, err := m.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/v/a.mp4", list[0].Path)
	assert.Equal(t, "/v/c.mp4", list[1].Path)
	assert.Equal(t, base.Add(3*time.Hour).Unix(), list[0].OpenedAt.Unix())
}

func TestRecordGroup(t *testing.T) {
	m := setupTestManager(t)
	require.NoError(t, m.RecordOpen("/v/a.mp4", time.Now()))

	require.NoError(t, m.RecordGroup("/v/a.mp4", 2, 0, false))
	v, err := m.GetRecent("/v/a.mp4")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 2, v.ActiveGroup)
	assert.Empty(t, v.SavedGroups)

	require.NoError(t, m.RecordGroup("/v/a.mp4", 2, 5, true))
	require.NoError(t, m.RecordGroup("/v/a.mp4", 0, 1, true))
	require.NoError(t, m.RecordGroup("/v/a.mp4", 2, 7, true))

	v, err = m.GetRecent("/v/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, 2, v.ActiveGroup)
	assert.Equal(t, map[int]int{0: 1, 2: 7}, v.SavedGroups)

	require.NoError(t, m.ForgetGroup("/v/a.mp4", 0))
	v, err = m.GetRecent("/v/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2: 7}, v.SavedGroups)
}

func TestGetRecent_Unknown(t *testing.T) {
	m := setupTestManager(t)
	v, err := m.GetRecent("/nowhere.mkv")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestForgetVideo(t *testing.T) {
	m := setupTestManager(t)
	require.NoError(t, m.RecordOpen("/v/a.mp4", time.Now()))
	require.NoError(t, m.RecordGroup("/v/a.mp4", 1, 3, true))

	require.NoError(t, m.ForgetVideo("/v/a.mp4"))

	v, err := m.GetRecent("/v/a.mp4")
	require.NoError(t, err)
	assert.Nil(t, v)

	var n int
	require.NoError(t, m.DB().QueryRow(`SELECT COUNT(*) FROM saved_groups`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestSaveResumePosition_FlushedOnClose(t *testing.T) {
	path := t.TempDir() + "/state.db"
	m, err := OpenPath(path)
	require.NoError(t, err)
	require.NoError(t, m.RecordOpen("/v/a.mp4", time.Now()))

	m.SaveResumePosition("/v/a.mp4", 10*time.Second)
	m.SaveResumePosition("/v/a.mp4", 75*time.Second)
	require.NoError(t, m.Close())

	m, err = OpenPath(path)
	require.NoError(t, err)
	defer m.Close()
	v, err := m.GetRecent("/v/a.mp4")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 75*time.Second, v.LastPosition)
}

func TestSchema_Idempotent(t *testing.T) {
	m := setupTestManager(t)
	require.NoError(t, initSchema(m.DB()))

	var version int
	require.NoError(t, m.DB().QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestMock_MirrorsManager(t *testing.T) {
	m := NewMock()
	base := time.Unix(1_700_000_000, 0)
	require.NoError(t, m.RecordOpen("/a", base))
	require.NoError(t, m.RecordOpen("/b", base.Add(time.Minute)))
	require.NoError(t, m.RecordGroup("/a", 3, 4, true))
	m.SaveResumePosition("/a", time.Second)

	list, err := m.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/b", list[0].Path)

	v, err := m.GetRecent("/a")
	require.NoError(t, err)
	assert.Equal(t, 3, v.ActiveGroup)
	assert.Equal(t, time.Second, v.LastPosition)
	assert.Equal(t, map[int]int{3: 4}, v.SavedGroups)

	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())
}
