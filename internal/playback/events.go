// Package playback publishes what the bookmark core does to whoever renders
// it: binding changes, slot and group operations, loop mode changes and
// transient status messages.
package playback

import (
	"github.com/llehouerou/loopmark/internal/session"
	"github.com/llehouerou/loopmark/internal/slots"
)

// BindingsChanged is emitted after the keybind table changed, by an edit,
// a reset or a reload of the keybinds file.
type BindingsChanged struct{}

// SlotOp names what happened to a slot.
type SlotOp int

const (
	SlotSaved SlotOp = iota
	SlotLoopEndSet
	SlotDeleted
	SlotLoaded
	SlotEdited
)

func (o SlotOp) String() string {
	switch o {
	case SlotSaved:
		return "Saved"
	case SlotLoopEndSet:
		return "Loop End Set"
	case SlotDeleted:
		return "Deleted"
	case SlotLoaded:
		return "Loaded"
	case SlotEdited:
		return "Edited"
	default:
		return "Unknown"
	}
}

// SlotChange is emitted after a slot of the active group was saved, edited,
// deleted or recalled.
type SlotChange struct {
	Op    SlotOp
	Group int
	Slot  int
	State slots.PlaybackState
}

// GroupOp names what happened to a group.
type GroupOp int

const (
	GroupSwitched GroupOp = iota
	GroupPersisted
	GroupDeleted
	GroupOpened // a video was opened and its first group read
)

func (o GroupOp) String() string {
	switch o {
	case GroupSwitched:
		return "Switched"
	case GroupPersisted:
		return "Saved"
	case GroupDeleted:
		return "Deleted"
	case GroupOpened:
		return "Opened"
	default:
		return "Unknown"
	}
}

// GroupChange is emitted after a group operation.
type GroupChange struct {
	Op       GroupOp
	Group    int
	Occupied int
}

// LoopModeChange is emitted when the loop mode changes.
type LoopModeChange struct {
	Previous session.LoopMode
	Current  session.LoopMode
	Slot     int
}

// Status is a transient message for the user. Err is set when the message
// reports a rejected operation.
type Status struct {
	Text string
	Err  error
}
