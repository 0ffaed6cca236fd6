package player

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/loopmark/internal/dispatch"
	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/keyseq"
	"github.com/llehouerou/loopmark/internal/media"
	"github.com/llehouerou/loopmark/internal/playback"
	"github.com/llehouerou/loopmark/internal/session"
	"github.com/llehouerou/loopmark/internal/slots"
	"github.com/llehouerou/loopmark/internal/state"
)

type testEnv struct {
	p       *Player
	backend *media.Mock
	prefs   *state.Mock
	sub     *playback.Subscription
	video   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := media.NewMock()
	prefs := state.NewMock()
	p := New(keymap.NewRegistry(zerolog.Nop()), backend, prefs, zerolog.Nop(), Options{})
	env := &testEnv{
		p:       p,
		backend: backend,
		prefs:   prefs,
		sub:     p.Subscribe(),
		video:   filepath.Join(t.TempDir(), "lesson.mp4"),
	}
	t.Cleanup(p.Close)
	return env
}

func (e *testEnv) open(t *testing.T) {
	t.Helper()
	pending, err := e.p.Open(e.video)
	require.NoError(t, err)
	require.Nil(t, pending)
	e.drain()
}

// saveAt bookmarks slot i at pos.
func (e *testEnv) saveAt(t *testing.T, i int, pos time.Duration) {
	t.Helper()
	e.backend.Advance(pos)
	e.p.SaveSlot(i)
	require.True(t, e.p.Store().Slot(i).Valid)
}

// drain empties every subscription channel and returns the statuses.
func (e *testEnv) drain() []playback.Status {
	var out []playback.Status
	for {
		select {
		case st := <-e.sub.Status:
			out = append(out, st)
		case <-e.sub.SlotChanged:
		case <-e.sub.GroupChanged:
		case <-e.sub.LoopModeChanged:
		case <-e.sub.BindingsChanged:
		default:
			return out
		}
	}
}

func key(r rune, mods keyseq.Modifier) keyseq.Chord {
	return keyseq.NewRune(r, mods)
}

func TestNew_AppliesPreferences(t *testing.T) {
	backend := media.NewMock()
	prefs := state.NewMock()
	prefs.SetPrefs(state.Prefs{Volume: 80, LoadSpeed: true})

	p := New(keymap.NewRegistry(zerolog.Nop()), backend, prefs, zerolog.Nop(), Options{})
	defer p.Close()

	assert.Equal(t, 80, backend.Volume())
	assert.True(t, p.Session().LoadSpeed)
}

func TestOpen_RecordsAndRestores(t *testing.T) {
	env := newTestEnv(t)
	abs, err := filepath.Abs(env.video)
	require.NoError(t, err)
	require.NoError(t, env.prefs.RecordGroup(abs, 2, 0, false))
	env.prefs.SaveResumePosition(abs, 42*time.Second)

	env.open(t)

	assert.Equal(t, []string{abs}, env.backend.Loads())
	assert.Equal(t, abs, env.p.Video())
	assert.Equal(t, 2, env.p.Store().ActiveGroup())
	assert.Equal(t, 42*time.Second, env.backend.Position())

	rec, err := env.prefs.GetRecent(abs)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.OpenedAt.IsZero())
}

func TestOpen_LoadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetLoadError(errors.New("codec"))

	_, err := env.p.Open(env.video)

	require.Error(t, err)
	assert.Empty(t, env.p.Video())
	statuses := env.drain()
	require.Len(t, statuses, 1)
	assert.Error(t, statuses[0].Err)
	assert.Contains(t, statuses[0].Text, "Failed to open video 'lesson.mp4'")
}

func TestHandleKey_SlotOperations(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)

	env.backend.Advance(5 * time.Second)
	out, pending := env.p.HandleKey(key('2', keyseq.ModCtrl))
	assert.Nil(t, pending)
	assert.Equal(t, dispatch.SaveSlot, out.Kind)
	assert.Equal(t, 5*time.Second, env.p.Store().Slot(1).Start)

	select {
	case e := <-env.sub.SlotChanged:
		assert.Equal(t, playback.SlotSaved, e.Op)
		assert.Equal(t, 1, e.Slot)
	default:
		t.Fatal("expected a slot event")
	}

	env.backend.Advance(9 * time.Second)
	env.p.HandleKey(key('2', keyseq.ModAlt))
	assert.True(t, env.p.Store().Slot(1).IsLoop())
	assert.Equal(t, 9*time.Second, env.p.Store().Slot(1).End)

	env.backend.Advance(30 * time.Second)
	out, _ = env.p.HandleKey(key('2', keyseq.ModNone))
	assert.Equal(t, dispatch.LoadSlot, out.Kind)
	assert.Equal(t, 5*time.Second, env.backend.Position())
	assert.Equal(t, 1, env.p.Session().LoopSlot)

	out, _ = env.p.HandleKey(key('@', keyseq.ModShift))
	assert.Equal(t, dispatch.DeleteSlot, out.Kind)
	assert.False(t, env.p.Store().Slot(1).Valid)
}

func TestHandleKey_RejectionsReportStatus(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)

	tests := []struct {
		name string
		key  keyseq.Chord
		want error
	}{
		{"load empty slot", key('3', keyseq.ModNone), session.ErrEmptySlot},
		{"loop end on empty slot", key('3', keyseq.ModAlt), session.ErrEmptySlot},
		{"persist inactive group", keyseq.New(keyseq.KeyF2, keyseq.ModCtrl), session.ErrNotActiveGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.p.HandleKey(tt.key)
			statuses := env.drain()
			require.Len(t, statuses, 1)
			assert.ErrorIs(t, statuses[0].Err, tt.want)
			assert.Contains(t, statuses[0].Text, "Failed to")
		})
	}
}

func TestHandleKey_Unhandled(t *testing.T) {
	env := newTestEnv(t)
	out, pending := env.p.HandleKey(key('Q', keyseq.ModCtrl))
	assert.Equal(t, dispatch.Unhandled, out.Kind)
	assert.Nil(t, pending)
	assert.Empty(t, env.drain())
}

func TestExecute_VolumeAndSpeed(t *testing.T) {
	env := newTestEnv(t)

	for range 3 {
		env.p.Execute(keymap.ActionSpeedUp)
	}
	assert.InDelta(t, 1.3, env.backend.PlaybackRate(), 1e-9)

	for range 100 {
		env.p.Execute(keymap.ActionSpeedDown)
	}
	assert.InDelta(t, media.MinRate, env.backend.PlaybackRate(), 1e-9)

	for range 30 {
		env.p.Execute(keymap.ActionVolumeUp)
	}
	assert.Equal(t, media.MaxVolume, env.backend.Volume())
	prefs, err := env.prefs.GetPrefs()
	require.NoError(t, err)
	assert.Equal(t, media.MaxVolume, prefs.Volume)

	env.p.Execute(keymap.ActionVolumeDown)
	assert.Equal(t, media.MaxVolume-DefaultVolumeStep, env.backend.Volume())
}

func TestExecute_ToggleLoadSpeedPersists(t *testing.T) {
	env := newTestEnv(t)

	env.p.Execute(keymap.ActionToggleLoadSpeed)

	assert.True(t, env.p.Session().LoadSpeed)
	prefs, err := env.prefs.GetPrefs()
	require.NoError(t, err)
	assert.True(t, prefs.LoadSpeed)

	env.prefs.SetSaveError(errors.New("disk full"))
	env.drain()
	env.p.Execute(keymap.ActionToggleLoadSpeed)
	statuses := env.drain()
	require.NotEmpty(t, statuses)
	assert.Contains(t, statuses[0].Text, "Failed to save preferences")
}

func TestExecute_SeekAndReturn(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)
	env.backend.Advance(20 * time.Second)

	env.p.Execute(keymap.ActionSeekForward)
	assert.Equal(t, 30*time.Second, env.backend.Position())

	env.backend.Advance(2 * time.Minute)
	env.p.Execute(keymap.ActionReturnToLastPosition)
	assert.Equal(t, 30*time.Second, env.backend.Position())

	env.backend.Advance(3 * time.Second)
	env.p.Execute(keymap.ActionSeekBackward)
	assert.Equal(t, time.Duration(0), env.backend.Position(), "seek clamps at zero")
}

func TestExecute_ReturnWithoutMarkIsNoop(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)
	env.backend.ResetCalls()

	env.p.Execute(keymap.ActionReturnToLastPosition)

	assert.Empty(t, env.backend.Seeks())
}

func TestExecute_PlayPause(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)

	env.p.Execute(keymap.ActionPlayPause)
	assert.Equal(t, media.Playing, env.backend.State())
	env.p.Execute(keymap.ActionPlayPause)
	assert.Equal(t, media.Paused, env.backend.State())
	env.p.Execute(keymap.ActionStop)
	assert.Equal(t, media.Stopped, env.backend.State())
}

func TestCycleLoopMode(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)

	assert.Equal(t, session.LoopSingle, env.p.CycleLoopMode())
	assert.Equal(t, session.NoLoop, env.p.CycleLoopMode(), "no loops: LoopAll falls back")

	var changes []playback.LoopModeChange
	for range 2 {
		changes = append(changes, <-env.sub.LoopModeChanged)
	}
	assert.Equal(t, session.LoopSingle, changes[0].Current)
	assert.Equal(t, session.NoLoop, changes[1].Current)

	statuses := env.drain()
	require.Len(t, statuses, 2)
	assert.NoError(t, statuses[0].Err)
	assert.ErrorIs(t, statuses[1].Err, session.ErrNoLoops)
}

func TestTick_LoopsAndRecordsResume(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)
	env.saveAt(t, 0, 10*time.Second)
	env.backend.Advance(20 * time.Second)
	env.p.SetLoopEnd(0)

	env.p.CycleLoopMode()
	require.Equal(t, session.LoopSingle, env.p.LoopMode())
	env.backend.Play()
	env.backend.Advance(20 * time.Second)

	env.p.Tick()

	assert.Equal(t, 10*time.Second, env.backend.Position())
	rec, err := env.prefs.GetRecent(env.p.Video())
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, rec.LastPosition)
}

func TestSwitchGroup_DirtyNeedsConfirmation(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)
	env.saveAt(t, 0, time.Second)
	require.True(t, env.p.Store().Dirty())

	pending := env.p.Execute(keymap.ActionStateGroup2)

	require.NotNil(t, pending)
	assert.Contains(t, pending.Message, "Group 1 has unsaved changes")
	assert.Equal(t, 0, env.p.Store().ActiveGroup(), "declining keeps the group")

	pending.Accept()
	assert.Equal(t, 1, env.p.Store().ActiveGroup())
	assert.False(t, env.p.Store().Slot(0).Valid)

	pending.Accept()
	assert.Equal(t, 1, env.p.Store().ActiveGroup(), "accepting twice runs once")

	rec, err := env.prefs.GetRecent(env.p.Video())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ActiveGroup)
}

func TestSwitchGroup_CleanRunsAtOnce(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)

	pending := env.p.SwitchGroup(3)

	assert.Nil(t, pending)
	assert.Equal(t, 3, env.p.Store().ActiveGroup())
	assert.Nil(t, env.p.SwitchGroup(3), "switching to the active group does nothing")
}

func TestPersistAndDeleteGroup(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)
	env.saveAt(t, 0, time.Second)
	env.saveAt(t, 4, 2*time.Second)

	_, pending := env.p.HandleKey(keyseq.New(keyseq.KeyF1, keyseq.ModCtrl))
	require.Nil(t, pending)
	assert.False(t, env.p.Store().Dirty())

	path, err := slots.GroupPath(env.p.Video(), 0)
	require.NoError(t, err)
	assert.FileExists(t, path)
	rec, err := env.prefs.GetRecent(env.p.Video())
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 2}, rec.SavedGroups)

	out, pending := env.p.HandleKey(keyseq.New(keyseq.KeyF1, keyseq.ModAlt))
	assert.Equal(t, dispatch.DeleteGroup, out.Kind)
	require.NotNil(t, pending, "deleting a group always asks")
	assert.FileExists(t, path)

	pending.Accept()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	group := env.p.Store().Group()
	assert.Equal(t, 0, group.Occupied())
	rec, err = env.prefs.GetRecent(env.p.Video())
	require.NoError(t, err)
	assert.Empty(t, rec.SavedGroups)
}

func TestDeleteGroup_NoVideo(t *testing.T) {
	env := newTestEnv(t)

	pending := env.p.DeleteGroup(0)

	assert.Nil(t, pending)
	statuses := env.drain()
	require.Len(t, statuses, 1)
	assert.ErrorIs(t, statuses[0].Err, session.ErrNoVideo)
}

func TestGuardDirty(t *testing.T) {
	env := newTestEnv(t)
	env.open(t)
	ran := 0

	assert.Nil(t, env.p.GuardDirty("Quit", func() { ran++ }))
	assert.Equal(t, 1, ran)

	env.saveAt(t, 0, time.Second)
	pending := env.p.GuardDirty("Quit", func() { ran++ })
	require.NotNil(t, pending)
	assert.Equal(t, 1, ran)
	pending.Accept()
	assert.Equal(t, 2, ran)

	var nilPending *Pending
	assert.NotPanics(t, nilPending.Accept)
}

func TestSetBindings_PublishesChange(t *testing.T) {
	env := newTestEnv(t)

	err := env.p.SetBindings(keymap.ActionStop, []keyseq.Chord{key('S', keyseq.ModNone)})
	require.NoError(t, err)

	select {
	case <-env.sub.BindingsChanged:
	default:
		t.Fatal("expected a bindings event")
	}
	out, _ := env.p.HandleKey(key('S', keyseq.ModNone))
	assert.Equal(t, dispatch.RunAction, out.Kind)
	assert.Equal(t, keymap.ActionStop, out.Action)

	err = env.p.SetBindings(keymap.ActionStop, []keyseq.Chord{keyseq.New(keyseq.KeySpace, keyseq.ModNone)})
	assert.ErrorIs(t, err, keymap.ErrChordInUse)
}

func TestFormatPosition(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00.000"},
		{1500 * time.Millisecond, "0:01.500"},
		{61*time.Minute + 2*time.Second + 3*time.Millisecond, "61:02.003"},
		{-time.Second, "0:00.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPosition(tt.in))
	}
}
