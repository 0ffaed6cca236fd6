package session

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/loopmark/internal/media"
)

// DefaultTolerance is how early before a loop end the poll re-seeks. It
// absorbs poll granularity and backend seek latency.
const DefaultTolerance = 200 * time.Millisecond

// ErrNoLoops is returned by Cycle when LoopAll was requested but no slot of
// the active group holds a loop range. The mode falls back to NoLoop.
var ErrNoLoops = errors.New("no valid loops")

// Controller drives the loop mode state machine and re-seeks the backend
// when a tracked loop reaches its end.
type Controller struct {
	store     *Store
	backend   media.Backend
	sess      *Session
	tolerance time.Duration
	log       zerolog.Logger
}

// NewController returns a controller for store. A zero tolerance selects
// DefaultTolerance.
func NewController(store *Store, backend media.Backend, tolerance time.Duration, log zerolog.Logger) *Controller {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Controller{
		store:     store,
		backend:   backend,
		sess:      store.Session(),
		tolerance: tolerance,
		log:       log.With().Str("component", "loop").Logger(),
	}
}

// Mode returns the current loop mode.
func (c *Controller) Mode() LoopMode { return c.sess.Mode }

// Cycle advances the loop mode and returns the new one. Entering LoopSingle
// or LoopAll recalls the first loop slot of the active group, if any, so
// playback reflects the new mode at once. Requesting LoopAll with no loop
// slot lands on NoLoop and returns ErrNoLoops.
func (c *Controller) Cycle() (LoopMode, error) {
	group := c.store.Group()
	switch c.sess.Mode {
	case NoLoop:
		c.sess.Mode = LoopSingle
		c.autoLoad(group.FirstLoop())
	case LoopSingle:
		first := group.FirstLoop()
		if first < 0 {
			c.sess.ResetLoop()
			c.log.Debug().Msg("no valid loops, loop all skipped")
			return c.sess.Mode, ErrNoLoops
		}
		c.sess.Mode = LoopAll
		c.autoLoad(first)
	case LoopAll:
		c.sess.ResetLoop()
	}
	c.log.Debug().Stringer("mode", c.sess.Mode).Msg("loop mode changed")
	return c.sess.Mode, nil
}

func (c *Controller) autoLoad(slot int) {
	if slot < 0 || !c.backend.HasMedia() {
		return
	}
	c.load(slot)
}

// load recalls slot with the loop check suppressed, so a backend reporting
// the seek synchronously cannot re-enter Tick mid-transition.
func (c *Controller) load(slot int) {
	release := c.sess.SuppressLoop()
	defer release()
	if _, err := c.store.Load(slot); err != nil {
		c.log.Debug().Err(err).Int("slot", slot+1).Msg("loop recall failed")
	}
}

// Tick is the position poll. It is called about every 100ms and never
// overlaps itself.
func (c *Controller) Tick() {
	if c.sess.Mode == NoLoop || c.sess.LoopSuppressed() || !c.backend.HasMedia() {
		return
	}
	pos := c.backend.Position()
	group := c.store.Group()

	switch c.sess.Mode {
	case LoopSingle:
		st := c.store.Slot(c.sess.LoopSlot)
		if st.IsLoop() && c.reachedEnd(pos, st.End) {
			c.log.Debug().Int("slot", c.sess.LoopSlot+1).Msg("loop point reached")
			release := c.sess.SuppressLoop()
			c.backend.SetPosition(st.Start)
			release()
		}

	case LoopAll:
		if c.sess.LoopSlot == NoSlot {
			first := group.FirstLoop()
			if first < 0 {
				c.log.Debug().Msg("no loopable slots, loop all disabled")
				c.sess.ResetLoop()
				return
			}
			// The seek to its start is enough for this tick.
			c.load(first)
			return
		}
		st := c.store.Slot(c.sess.LoopSlot)
		if !st.IsLoop() || !c.reachedEnd(pos, st.End) {
			return
		}
		next := group.NextLoop(c.sess.LoopSlot)
		if next < 0 {
			next = group.FirstLoop()
		}
		if next < 0 {
			return
		}
		c.log.Debug().Int("from", c.sess.LoopSlot+1).Int("to", next+1).Msg("moving to next loop")
		c.load(next)

	case NoLoop:
	}
}

func (c *Controller) reachedEnd(pos, end time.Duration) bool {
	return pos >= end-c.tolerance
}
