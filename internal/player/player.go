// Package player is the bookmark player core: it owns the keybind registry,
// the slot store and the loop controller of one media backend, turns key
// chords into operations and reports every outcome on an event bus.
package player

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/loopmark/internal/dispatch"
	"github.com/llehouerou/loopmark/internal/errmsg"
	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/media"
	"github.com/llehouerou/loopmark/internal/playback"
	"github.com/llehouerou/loopmark/internal/session"
	"github.com/llehouerou/loopmark/internal/state"
)

// Options tunes the player. Zero values pick the defaults.
type Options struct {
	SeekStep   time.Duration
	VolumeStep int
	SpeedStep  float64
	// Tolerance is how early before a loop end the poll re-seeks.
	Tolerance time.Duration
	Store     session.Options
}

const (
	DefaultSeekStep   = 10 * time.Second
	DefaultVolumeStep = 5
	DefaultSpeedStep  = 0.1
)

func (o Options) withDefaults() Options {
	if o.SeekStep <= 0 {
		o.SeekStep = DefaultSeekStep
	}
	if o.VolumeStep <= 0 {
		o.VolumeStep = DefaultVolumeStep
	}
	if o.SpeedStep <= 0 {
		o.SpeedStep = DefaultSpeedStep
	}
	return o
}

// Player wires the registry, dispatcher, store and loop controller around a
// backend. It is not safe for concurrent use: every method runs on the
// caller's event loop.
type Player struct {
	keys       *keymap.Registry
	dispatcher *dispatch.Dispatcher
	backend    media.Backend
	sess       *session.Session
	store      *session.Store
	loop       *session.Controller
	bus        *playback.Bus
	prefs      state.Interface
	log        zerolog.Logger
	opts       Options
	now        func() time.Time
}

// New builds a player. Saved preferences are applied to the backend and the
// session at once; a preference read failure is logged and the defaults are
// kept.
func New(
	keys *keymap.Registry,
	backend media.Backend,
	prefs state.Interface,
	log zerolog.Logger,
	opts Options,
) *Player {
	opts = opts.withDefaults()
	sess := session.New()
	store := session.NewStore(backend, sess, log, opts.Store)
	p := &Player{
		keys:       keys,
		dispatcher: dispatch.New(keys),
		backend:    backend,
		sess:       sess,
		store:      store,
		loop:       session.NewController(store, backend, opts.Tolerance, log),
		bus:        playback.NewBus(),
		prefs:      prefs,
		log:        log.With().Str("component", "player").Logger(),
		opts:       opts,
		now:        time.Now,
	}
	keys.OnChange(p.bus.PublishBindings)
	p.applyPrefs()
	return p
}

func (p *Player) applyPrefs() {
	prefs, err := p.prefs.GetPrefs()
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to load preferences")
		p.status(errmsg.Format(errmsg.OpPrefsLoad, err), err)
		prefs = state.DefaultPrefs()
	}
	p.backend.SetVolume(prefs.Volume)
	p.sess.LoadSpeed = prefs.LoadSpeed
}

// Subscribe returns a subscription to the player's events.
func (p *Player) Subscribe() *playback.Subscription {
	return p.bus.Subscribe()
}

// Keys returns the keybind registry.
func (p *Player) Keys() *keymap.Registry { return p.keys }

// Backend returns the media backend.
func (p *Player) Backend() media.Backend { return p.backend }

// Store returns the slot store.
func (p *Player) Store() *session.Store { return p.store }

// Session returns the playback session.
func (p *Player) Session() *session.Session { return p.sess }

// LoopMode returns the current loop mode.
func (p *Player) LoopMode() session.LoopMode { return p.loop.Mode() }

// Video returns the loaded video path, or "".
func (p *Player) Video() string { return p.store.Video() }

// Tick is the position poll. It drives looping and records the resume
// position of the loaded video.
func (p *Player) Tick() {
	p.loop.Tick()
	if p.store.Video() != "" && p.backend.State().IsPlaying() {
		p.prefs.SaveResumePosition(p.store.Video(), p.backend.Position())
	}
}

// Close stops playback, flushes the resume position and closes the event
// bus. Unsaved slot edits are discarded; callers guard with GuardDirty.
func (p *Player) Close() {
	if p.store.Video() != "" && p.backend.HasMedia() {
		p.prefs.SaveResumePosition(p.store.Video(), p.backend.Position())
	}
	p.backend.Stop()
	p.store.CloseVideo()
	p.bus.Close()
}

func (p *Player) status(text string, err error) {
	p.bus.PublishStatus(playback.Status{Text: text, Err: err})
}

func (p *Player) fail(op errmsg.Op, err error) {
	p.log.Debug().Err(err).Str("op", string(op)).Msg("operation rejected")
	p.status(errmsg.Format(op, err), err)
}
