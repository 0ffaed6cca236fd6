package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/loopmark/internal/media"
	"github.com/llehouerou/loopmark/internal/slots"
)

// Store errors. All of them leave slot data untouched.
var (
	ErrNoVideo            = errors.New("no video loaded")
	ErrSlotRange          = errors.New("slot index out of range")
	ErrGroupRange         = errors.New("group index out of range")
	ErrEmptySlot          = errors.New("slot is empty")
	ErrLoopEndBeforeStart = errors.New("loop end must be after start")
	ErrNotActiveGroup     = errors.New("group is not the active group")
)

// Options tunes the Store. Zero values pick the defaults.
type Options struct {
	// SettleDelay is how long Save waits after pausing before it captures
	// the preview frame.
	SettleDelay time.Duration
	// PreviewWidth and PreviewHeight bound the stored thumbnail.
	PreviewWidth  uint
	PreviewHeight uint
}

const (
	DefaultSettleDelay   = 200 * time.Millisecond
	DefaultPreviewWidth  = 320
	DefaultPreviewHeight = 180
)

// Store owns the resident group of the loaded video. Only the active group
// lives in memory; other groups exist only in their files.
type Store struct {
	backend media.Backend
	sess    *Session
	log     zerolog.Logger
	opts    Options
	sleep   func(time.Duration)

	video string
	group slots.Group
	dirty bool
}

// NewStore creates a store with no video loaded.
func NewStore(backend media.Backend, sess *Session, log zerolog.Logger, opts Options) *Store {
	if opts.SettleDelay == 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.PreviewWidth == 0 {
		opts.PreviewWidth = DefaultPreviewWidth
	}
	if opts.PreviewHeight == 0 {
		opts.PreviewHeight = DefaultPreviewHeight
	}
	return &Store{
		backend: backend,
		sess:    sess,
		log:     log.With().Str("component", "store").Logger(),
		opts:    opts,
		sleep:   time.Sleep,
		group:   slots.NewGroup(),
	}
}

// Session returns the session the store mutates.
func (s *Store) Session() *Session { return s.sess }

// Video returns the path of the loaded video, or "".
func (s *Store) Video() string { return s.video }

// Group returns a copy of the active group.
func (s *Store) Group() slots.Group { return s.group }

// ActiveGroup returns the active group index.
func (s *Store) ActiveGroup() int { return s.sess.ActiveGroup }

// Dirty reports whether the active group has edits not yet persisted.
func (s *Store) Dirty() bool { return s.dirty }

// OpenVideo makes path the loaded video: group 0 becomes active and is read
// from its file, and looping is reset. The previous video's group is
// discarded without being persisted.
func (s *Store) OpenVideo(path string) error {
	if path == "" {
		return ErrNoVideo
	}
	s.video = path
	s.sess.ActiveGroup = 0
	s.sess.ResetLoop()
	s.sess.ClearLastPosition()
	return s.readActive()
}

// CloseVideo discards the resident group and forgets the video.
func (s *Store) CloseVideo() {
	s.video = ""
	s.group = slots.NewGroup()
	s.dirty = false
	s.sess.ResetLoop()
	s.sess.ClearLastPosition()
}

// SwitchGroup makes g the active group, reading it from its file (a missing
// file yields an empty group). Unpersisted edits of the previous group are
// lost. Switching to the active group is a no-op.
func (s *Store) SwitchGroup(g int) error {
	if !slots.ValidGroup(g) {
		return fmt.Errorf("%w: %d", ErrGroupRange, g)
	}
	if g == s.sess.ActiveGroup {
		return nil
	}
	s.sess.ActiveGroup = g
	s.sess.ResetLoop()
	return s.readActive()
}

func (s *Store) readActive() error {
	s.group = slots.NewGroup()
	s.dirty = false
	if s.video == "" {
		return nil
	}
	path, err := slots.GroupPath(s.video, s.sess.ActiveGroup)
	if err != nil {
		return err
	}
	g, exists, err := slots.LoadGroupFile(path, s.log)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to read group file")
		return err
	}
	s.group = g
	s.log.Debug().
		Int("group", s.sess.ActiveGroup+1).
		Bool("exists", exists).
		Int("slots", g.Occupied()).
		Msg("group loaded")
	return nil
}

// Save bookmarks the current position and speed in slot i, replacing any
// loop range it held. A playing backend is paused and given the settle delay
// before the preview frame is captured; it stays paused afterwards.
func (s *Store) Save(i int) error {
	if !slots.ValidIndex(i) {
		return fmt.Errorf("%w: %d", ErrSlotRange, i)
	}
	if !s.backend.HasMedia() {
		return media.ErrNoMedia
	}
	pos := s.backend.Position()
	rate := s.backend.PlaybackRate()

	if s.backend.State().IsPlaying() {
		s.backend.Pause()
		s.sleep(s.opts.SettleDelay)
	}

	frame, err := s.backend.CaptureFrame(pos)
	if err != nil {
		return fmt.Errorf("%w: %w", media.ErrCaptureFailed, err)
	}

	s.group[i] = slots.PlaybackState{
		Start:   pos,
		Speed:   slots.ClampSpeed(rate),
		Valid:   true,
		Preview: slots.Thumbnail(frame, s.opts.PreviewWidth, s.opts.PreviewHeight),
	}
	s.dirty = true
	s.log.Debug().Int("slot", i+1).Dur("start", pos).Float64("speed", rate).Msg("slot saved")
	return nil
}

// SetLoopEnd sets the current position as the end of slot i's loop range.
// The slot must be occupied and the position must follow its start.
func (s *Store) SetLoopEnd(i int) error {
	if !slots.ValidIndex(i) {
		return fmt.Errorf("%w: %d", ErrSlotRange, i)
	}
	if !s.group[i].Valid {
		return fmt.Errorf("%w: %d", ErrEmptySlot, i+1)
	}
	if !s.backend.HasMedia() {
		return media.ErrNoMedia
	}
	pos := s.backend.Position()
	if pos <= s.group[i].Start {
		return ErrLoopEndBeforeStart
	}
	s.group[i].End = pos
	s.group[i].HasEnd = true
	s.dirty = true
	s.log.Debug().Int("slot", i+1).Dur("end", pos).Msg("loop end set")
	return nil
}

// Delete empties slot i in memory.
func (s *Store) Delete(i int) error {
	if !slots.ValidIndex(i) {
		return fmt.Errorf("%w: %d", ErrSlotRange, i)
	}
	if s.group[i].Valid {
		s.dirty = true
	}
	s.group[i] = slots.Empty()
	s.log.Debug().Int("slot", i+1).Msg("slot deleted")
	return nil
}

// Slot returns slot i, or an empty state when i is out of range.
func (s *Store) Slot(i int) slots.PlaybackState {
	if !slots.ValidIndex(i) {
		return slots.Empty()
	}
	return s.group[i]
}

// Load recalls slot i: it seeks to the slot's start, restores its speed when
// the session asks for it, and tracks the slot for looping. Out-of-range or
// empty slots return an empty state and an error without touching playback.
func (s *Store) Load(i int) (slots.PlaybackState, error) {
	if !slots.ValidIndex(i) {
		return slots.Empty(), fmt.Errorf("%w: %d", ErrSlotRange, i)
	}
	st := s.group[i]
	if !st.Valid {
		return slots.Empty(), fmt.Errorf("%w: %d", ErrEmptySlot, i+1)
	}
	if !s.backend.HasMedia() {
		return slots.Empty(), media.ErrNoMedia
	}
	s.backend.SetPosition(st.Start)
	if s.sess.LoadSpeed {
		s.backend.SetPlaybackRate(st.Speed)
	}
	s.sess.LoopSlot = i
	s.log.Debug().Int("slot", i+1).Dur("start", st.Start).Msg("slot loaded")
	return st, nil
}

// Set replaces slot i, as a slot editor does. Speed is clamped; an occupied
// slot with a loop range needs End > Start. An unoccupied state empties the
// slot.
func (s *Store) Set(i int, st slots.PlaybackState) error {
	if !slots.ValidIndex(i) {
		return fmt.Errorf("%w: %d", ErrSlotRange, i)
	}
	if !st.Valid {
		return s.Delete(i)
	}
	st.Start = max(st.Start, 0)
	if st.HasEnd && st.End <= st.Start {
		return ErrLoopEndBeforeStart
	}
	if !st.HasEnd {
		st.End = 0
	}
	st.Speed = slots.ClampSpeed(st.Speed)
	s.group[i] = st
	s.dirty = true
	return nil
}

// PersistGroup writes the active group to its file. Only the active group is
// resident, so g must be the active index.
func (s *Store) PersistGroup(g int) error {
	if !slots.ValidGroup(g) {
		return fmt.Errorf("%w: %d", ErrGroupRange, g)
	}
	if s.video == "" {
		return ErrNoVideo
	}
	if g != s.sess.ActiveGroup {
		return fmt.Errorf("%w: switch to group %d first", ErrNotActiveGroup, g+1)
	}
	path, err := slots.GroupPath(s.video, g)
	if err != nil {
		return err
	}
	if err := slots.SaveGroupFile(path, &s.group); err != nil {
		return err
	}
	s.dirty = false
	s.log.Info().Int("group", g+1).Str("path", path).Msg("group saved")
	return nil
}

// DeleteGroup removes group g's file and, when g is active, empties the
// resident group and stops looping.
func (s *Store) DeleteGroup(g int) error {
	if !slots.ValidGroup(g) {
		return fmt.Errorf("%w: %d", ErrGroupRange, g)
	}
	if s.video == "" {
		return ErrNoVideo
	}
	if g == s.sess.ActiveGroup {
		s.group.Clear()
		s.dirty = false
		s.sess.ResetLoop()
	}
	path, err := slots.GroupPath(s.video, g)
	if err != nil {
		return err
	}
	if err := slots.RemoveGroupFile(path); err != nil {
		return err
	}
	s.log.Info().Int("group", g+1).Msg("group deleted")
	return nil
}
