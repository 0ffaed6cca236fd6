package player

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/loopmark/internal/dispatch"
	"github.com/llehouerou/loopmark/internal/errmsg"
	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/keyseq"
	"github.com/llehouerou/loopmark/internal/media"
	"github.com/llehouerou/loopmark/internal/playback"
	"github.com/llehouerou/loopmark/internal/session"
	"github.com/llehouerou/loopmark/internal/slots"
	"github.com/llehouerou/loopmark/internal/state"
)

// HandleKey resolves c and runs its effect. The returned Pending is non-nil
// when the effect waits for a confirmation.
func (p *Player) HandleKey(c keyseq.Chord) (dispatch.Outcome, *Pending) {
	out := p.dispatcher.Resolve(c)
	switch out.Kind {
	case dispatch.RunAction:
		return out, p.Execute(out.Action)
	case dispatch.SaveSlot:
		p.SaveSlot(out.Slot)
	case dispatch.SetLoopEnd:
		p.SetLoopEnd(out.Slot)
	case dispatch.DeleteSlot:
		p.DeleteSlot(out.Slot)
	case dispatch.LoadSlot:
		p.LoadSlot(out.Slot)
	case dispatch.PersistGroup:
		p.PersistGroup(out.Group)
	case dispatch.DeleteGroup:
		return out, p.DeleteGroup(out.Group)
	case dispatch.Unhandled:
	}
	return out, nil
}

// Execute runs a global command.
func (p *Player) Execute(a keymap.Action) *Pending {
	switch a {
	case keymap.ActionPlayPause:
		p.togglePlay()
	case keymap.ActionStop:
		p.backend.Stop()
	case keymap.ActionSeekForward:
		p.seekBy(p.opts.SeekStep)
	case keymap.ActionSeekBackward:
		p.seekBy(-p.opts.SeekStep)
	case keymap.ActionVolumeUp:
		p.changeVolume(p.opts.VolumeStep)
	case keymap.ActionVolumeDown:
		p.changeVolume(-p.opts.VolumeStep)
	case keymap.ActionSpeedUp:
		p.changeSpeed(p.opts.SpeedStep)
	case keymap.ActionSpeedDown:
		p.changeSpeed(-p.opts.SpeedStep)
	case keymap.ActionToggleLoadSpeed:
		p.toggleLoadSpeed()
	case keymap.ActionCycleLoopMode:
		p.CycleLoopMode()
	case keymap.ActionReturnToLastPosition:
		p.returnToLastPosition()
	case keymap.ActionStateGroup1, keymap.ActionStateGroup2,
		keymap.ActionStateGroup3, keymap.ActionStateGroup4:
		g, _ := a.StateGroup()
		return p.SwitchGroup(g)
	case keymap.ActionSaveState, keymap.ActionSetLoopEnd, keymap.ActionDeleteState,
		keymap.ActionStateKeys:
		// Resolved by the dispatcher into slot outcomes.
	}
	return nil
}

// Open loads path into the backend and reads its first group. Saved state of
// a previously opened video (active group, resume position) is restored.
// With unsaved edits the open waits for a confirmation.
func (p *Player) Open(path string) (*Pending, error) {
	if p.store.Dirty() {
		return p.GuardDirty("Open another video", func() { _ = p.open(path) }), nil
	}
	return nil, p.open(path)
}

func (p *Player) open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		p.fail(errmsg.OpVideoOpen, err)
		return err
	}
	if err := p.backend.Load(abs); err != nil {
		p.status(errmsg.FormatWith(errmsg.OpVideoOpen, filepath.Base(abs), err), err)
		return fmt.Errorf("load %s: %w", abs, err)
	}

	prev := p.loop.Mode()
	if err := p.store.OpenVideo(abs); err != nil {
		// The video stays open with an empty group.
		p.log.Warn().Err(err).Str("path", abs).Msg("failed to read first group")
	}
	p.publishLoopReset(prev)

	if err := p.prefs.RecordOpen(abs, p.now()); err != nil {
		p.log.Warn().Err(err).Msg("failed to record recent video")
	}
	p.restore(abs)

	p.bus.PublishGroup(playback.GroupChange{
		Op:       playback.GroupOpened,
		Group:    p.store.ActiveGroup(),
		Occupied: p.occupied(),
	})
	p.status("Opened "+filepath.Base(abs), nil)
	p.log.Info().Str("path", abs).Msg("video opened")
	return nil
}

func (p *Player) restore(path string) {
	rec, err := p.prefs.GetRecent(path)
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to read recent video")
		return
	}
	if rec == nil {
		return
	}
	if rec.ActiveGroup != 0 && slots.ValidGroup(rec.ActiveGroup) {
		if err := p.store.SwitchGroup(rec.ActiveGroup); err != nil {
			p.log.Warn().Err(err).Int("group", rec.ActiveGroup+1).Msg("failed to restore group")
		}
	}
	if rec.LastPosition > 0 && rec.LastPosition < p.backend.Duration() {
		p.backend.SetPosition(rec.LastPosition)
	}
}

func (p *Player) togglePlay() {
	if !p.backend.HasMedia() {
		return
	}
	if p.backend.State().IsPlaying() {
		p.backend.Pause()
		return
	}
	p.backend.Play()
}

func (p *Player) seekBy(delta time.Duration) {
	if !p.backend.HasMedia() {
		return
	}
	p.JumpTo(p.backend.Position() + delta)
}

// JumpTo seeks to pos, clamped to the media, and marks it as the position
// ReturnToLastPosition goes back to.
func (p *Player) JumpTo(pos time.Duration) {
	if !p.backend.HasMedia() {
		p.fail(errmsg.OpPlaybackSeek, media.ErrNoMedia)
		return
	}
	pos = min(max(pos, 0), p.backend.Duration())
	p.backend.SetPosition(pos)
	p.sess.MarkPosition(pos)
}

func (p *Player) returnToLastPosition() {
	pos, ok := p.sess.LastPosition()
	if !ok || !p.backend.HasMedia() {
		return
	}
	p.backend.SetPosition(pos)
	p.status("Back to "+FormatPosition(pos), nil)
}

func (p *Player) changeVolume(delta int) {
	v := media.ClampVolume(p.backend.Volume() + delta)
	p.backend.SetVolume(v)
	p.savePrefs()
	p.status(fmt.Sprintf("Volume %d%%", v), nil)
}

func (p *Player) changeSpeed(delta float64) {
	rate := math.Round((p.backend.PlaybackRate()+delta)*100) / 100
	rate = media.ClampRate(rate)
	p.backend.SetPlaybackRate(rate)
	p.status("Speed "+humanize.FtoaWithDigits(rate, 2)+"x", nil)
}

func (p *Player) toggleLoadSpeed() {
	p.sess.LoadSpeed = !p.sess.LoadSpeed
	p.savePrefs()
	if p.sess.LoadSpeed {
		p.status("Load speed: on", nil)
	} else {
		p.status("Load speed: off", nil)
	}
}

func (p *Player) savePrefs() {
	err := p.prefs.SavePrefs(state.Prefs{
		Volume:    p.backend.Volume(),
		LoadSpeed: p.sess.LoadSpeed,
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to save preferences")
		p.status(errmsg.Format(errmsg.OpPrefsSave, err), err)
	}
}

// CycleLoopMode advances NoLoop → LoopSingle → LoopAll → NoLoop.
func (p *Player) CycleLoopMode() session.LoopMode {
	prev := p.loop.Mode()
	mode, err := p.loop.Cycle()
	p.bus.PublishLoopMode(playback.LoopModeChange{
		Previous: prev,
		Current:  mode,
		Slot:     p.sess.LoopSlot,
	})
	if err != nil {
		p.fail(errmsg.OpLoopMode, err)
		return mode
	}
	p.status("Loop mode: "+mode.String(), nil)
	return mode
}

// publishLoopReset reports a loop reset done by the store.
func (p *Player) publishLoopReset(prev session.LoopMode) {
	if prev == p.loop.Mode() {
		return
	}
	p.bus.PublishLoopMode(playback.LoopModeChange{
		Previous: prev,
		Current:  p.loop.Mode(),
		Slot:     session.NoSlot,
	})
}

func (p *Player) occupied() int {
	g := p.store.Group()
	return g.Occupied()
}

// FormatPosition renders a media position as m:ss.mmm.
func FormatPosition(d time.Duration) string {
	d = max(d, 0)
	m := int(d / time.Minute)
	s := int(d % time.Minute / time.Second)
	ms := int(d % time.Second / time.Millisecond)
	return fmt.Sprintf("%d:%02d.%03d", m, s, ms)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
