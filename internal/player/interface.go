package player

import (
	"time"

	"github.com/llehouerou/loopmark/internal/dispatch"
	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/keyseq"
	"github.com/llehouerou/loopmark/internal/media"
	"github.com/llehouerou/loopmark/internal/playback"
	"github.com/llehouerou/loopmark/internal/session"
	"github.com/llehouerou/loopmark/internal/slots"
)

// Interface defines the player contract the presentation layer drives.
type Interface interface {
	HandleKey(c keyseq.Chord) (dispatch.Outcome, *Pending)
	Execute(a keymap.Action) *Pending
	Tick()
	Open(path string) (*Pending, error)
	Close()
	GuardDirty(what string, fn func()) *Pending
	JumpTo(pos time.Duration)
	EditSlot(i int, st slots.PlaybackState) error
	SwitchGroup(g int) *Pending
	PersistGroup(g int)
	DeleteGroup(g int) *Pending
	ReloadBindings() error

	Subscribe() *playback.Subscription
	Keys() *keymap.Registry
	Backend() media.Backend
	Store() *session.Store
	Session() *session.Session
	LoopMode() session.LoopMode
	Video() string
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
