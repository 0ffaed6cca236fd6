// Package session holds the bookmark state of the loaded video: the resident
// slot group, the loop mode state machine and the per-session settings that
// drive them.
package session

import "time"

// LoopMode selects how the position poll re-seeks playback.
//
//	          Cycle             Cycle (a loop exists)
//	NoLoop ──────────► LoopSingle ──────────────────► LoopAll
//	  ▲                    │                             │
//	  │   Cycle (no loop)  │                             │
//	  ├────────────────────┘                             │
//	  └──────────────────────────────────────────────────┘
//	                          Cycle
type LoopMode int

const (
	NoLoop LoopMode = iota
	LoopSingle
	LoopAll
)

func (m LoopMode) String() string {
	switch m {
	case NoLoop:
		return "No Loop"
	case LoopSingle:
		return "Loop Single"
	case LoopAll:
		return "Loop All"
	default:
		return "Unknown"
	}
}

// NoSlot marks the absence of a tracked loop slot.
const NoSlot = -1

// Session is the mutable context shared by the Store and the Controller.
// Each loaded player owns one; nothing here is global.
type Session struct {
	// ActiveGroup is the resident group, 0-3.
	ActiveGroup int
	// LoopSlot is the slot last recalled, tracked for looping, or NoSlot.
	LoopSlot int
	Mode     LoopMode
	// LoadSpeed makes a recall also restore the slot's playback speed.
	LoadSpeed bool

	lastPosition    time.Duration
	hasLastPosition bool
	suppressed      int
}

// New returns a session on group 0 with looping off.
func New() *Session {
	return &Session{LoopSlot: NoSlot}
}

// ResetLoop turns looping off and forgets the tracked slot.
func (s *Session) ResetLoop() {
	s.Mode = NoLoop
	s.LoopSlot = NoSlot
}

// SuppressLoop disables the loop check until the returned release func is
// called. Guards nest.
//
//	release := sess.SuppressLoop()
//	defer release()
func (s *Session) SuppressLoop() (release func()) {
	s.suppressed++
	done := false
	return func() {
		if !done {
			done = true
			s.suppressed--
		}
	}
}

// LoopSuppressed reports whether a SuppressLoop guard is held.
func (s *Session) LoopSuppressed() bool {
	return s.suppressed > 0
}

// MarkPosition records pos as the target of ReturnToLastPosition.
func (s *Session) MarkPosition(pos time.Duration) {
	s.lastPosition = max(pos, 0)
	s.hasLastPosition = true
}

// LastPosition returns the marked position, if any.
func (s *Session) LastPosition() (time.Duration, bool) {
	return s.lastPosition, s.hasLastPosition
}

// ClearLastPosition forgets the marked position.
func (s *Session) ClearLastPosition() {
	s.lastPosition = 0
	s.hasLastPosition = false
}
