// Package keymap owns the mapping from player actions to key chords: the
// default table, validation, conflict detection and the keybinds file.
package keymap

import (
	"strings"

	"github.com/llehouerou/loopmark/internal/keyseq"
)

// Action is a user-facing player command that can be bound to key chords.
type Action int

const (
	ActionPlayPause Action = iota
	ActionStop
	ActionSeekForward
	ActionSeekBackward
	ActionVolumeUp
	ActionVolumeDown
	ActionSpeedUp
	ActionSpeedDown

	// Display-only: document the Ctrl/Alt/Shift+slot-key convention.
	ActionSaveState
	ActionSetLoopEnd
	ActionDeleteState

	ActionToggleLoadSpeed
	ActionCycleLoopMode
	ActionReturnToLastPosition
	ActionStateKeys
	ActionStateGroup1
	ActionStateGroup2
	ActionStateGroup3
	ActionStateGroup4

	actionCount
)

const (
	// MaxBindings is the arity of every action except StateKeys.
	MaxBindings = 2
	// MaxStateKeys is the arity of StateKeys, one chord per slot.
	MaxStateKeys = 12
)

// Actions returns every action in enumeration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// Count is the number of actions a complete keybinds file must contain.
func Count() int {
	return int(actionCount)
}

// Valid returns true if a is a known action.
func (a Action) Valid() bool {
	return a >= 0 && a < actionCount
}

// String returns the display name.
func (a Action) String() string {
	switch a {
	case ActionPlayPause:
		return "Play/Pause"
	case ActionStop:
		return "Stop"
	case ActionSeekForward:
		return "Seek Forward"
	case ActionSeekBackward:
		return "Seek Backward"
	case ActionVolumeUp:
		return "Volume Up"
	case ActionVolumeDown:
		return "Volume Down"
	case ActionSpeedUp:
		return "Speed Up"
	case ActionSpeedDown:
		return "Speed Down"
	case ActionSaveState:
		return "Save State (Ctrl+Num)"
	case ActionSetLoopEnd:
		return "Set Loop End (Alt+Num)"
	case ActionDeleteState:
		return "Delete State (Shift+Num)"
	case ActionToggleLoadSpeed:
		return "Toggle Load Speed"
	case ActionCycleLoopMode:
		return "Cycle Loop Mode"
	case ActionReturnToLastPosition:
		return "Return To Last Position"
	case ActionStateKeys:
		return "State Keys (1-12)"
	case ActionStateGroup1:
		return "State Group 1"
	case ActionStateGroup2:
		return "State Group 2"
	case ActionStateGroup3:
		return "State Group 3"
	case ActionStateGroup4:
		return "State Group 4"
	case actionCount:
	}
	return "Unknown"
}

// ID returns the identifier used in the keybinds file: the display name with
// spaces and '/' stripped.
func (a Action) ID() string {
	return strings.NewReplacer(" ", "", "/", "").Replace(a.String())
}

// ActionFromID is the inverse of Action.ID.
func ActionFromID(id string) (Action, bool) {
	for _, a := range Actions() {
		if a.ID() == id {
			return a, true
		}
	}
	return 0, false
}

// MaxBindings returns how many chords a can hold.
func (a Action) MaxBindings() int {
	if a == ActionStateKeys {
		return MaxStateKeys
	}
	return MaxBindings
}

// Editable reports whether the user may rebind a. The save/set-end/delete
// entries only document the fixed modifier convention.
func (a Action) Editable() bool {
	switch a {
	case ActionSaveState, ActionSetLoopEnd, ActionDeleteState:
		return false
	default:
		return a.Valid()
	}
}

// IsCommand reports whether a is a global command resolved by exact chord
// lookup (as opposed to the slot keys and display-only entries).
func (a Action) IsCommand() bool {
	switch a {
	case ActionPlayPause, ActionStop,
		ActionSeekForward, ActionSeekBackward,
		ActionVolumeUp, ActionVolumeDown,
		ActionSpeedUp, ActionSpeedDown,
		ActionToggleLoadSpeed, ActionCycleLoopMode, ActionReturnToLastPosition,
		ActionStateGroup1, ActionStateGroup2, ActionStateGroup3, ActionStateGroup4:
		return true
	case ActionSaveState, ActionSetLoopEnd, ActionDeleteState, ActionStateKeys, actionCount:
		return false
	}
	return false
}

// StateGroup returns the 0-based group index for the StateGroupN actions.
func (a Action) StateGroup() (int, bool) {
	if a >= ActionStateGroup1 && a <= ActionStateGroup4 {
		return int(a - ActionStateGroup1), true
	}
	return -1, false
}

// SlotKeys is the fixed physical key row for slots 0..11. It backs the
// Ctrl/Alt/Shift slot shortcuts and the default StateKeys list.
var SlotKeys = [MaxStateKeys]rune{'1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '-', '='}

// DefaultBindings returns the factory chords for a.
func DefaultBindings(a Action) []keyseq.Chord {
	none := keyseq.ModNone
	switch a {
	case ActionPlayPause:
		return []keyseq.Chord{keyseq.New(keyseq.KeySpace, none)}
	case ActionStop:
		return []keyseq.Chord{}
	case ActionSeekForward:
		return []keyseq.Chord{keyseq.New(keyseq.KeyRight, none)}
	case ActionSeekBackward:
		return []keyseq.Chord{keyseq.New(keyseq.KeyLeft, none)}
	case ActionVolumeUp:
		return []keyseq.Chord{keyseq.New(keyseq.KeyUp, none)}
	case ActionVolumeDown:
		return []keyseq.Chord{keyseq.New(keyseq.KeyDown, none)}
	case ActionSpeedUp:
		return []keyseq.Chord{keyseq.New(keyseq.KeyRight, keyseq.ModCtrl)}
	case ActionSpeedDown:
		return []keyseq.Chord{keyseq.New(keyseq.KeyLeft, keyseq.ModCtrl)}
	case ActionSaveState:
		return []keyseq.Chord{keyseq.NewRune('1', keyseq.ModCtrl)}
	case ActionSetLoopEnd:
		return []keyseq.Chord{keyseq.NewRune('1', keyseq.ModAlt)}
	case ActionDeleteState:
		return []keyseq.Chord{keyseq.NewRune('1', keyseq.ModShift)}
	case ActionToggleLoadSpeed:
		return []keyseq.Chord{keyseq.New(keyseq.KeyF5, none)}
	case ActionCycleLoopMode:
		return []keyseq.Chord{keyseq.New(keyseq.KeyF9, none)}
	case ActionReturnToLastPosition:
		return []keyseq.Chord{keyseq.New(keyseq.KeyBackspace, none)}
	case ActionStateKeys:
		out := make([]keyseq.Chord, 0, MaxStateKeys)
		for _, r := range SlotKeys {
			out = append(out, keyseq.NewRune(r, none))
		}
		return out
	case ActionStateGroup1:
		return []keyseq.Chord{keyseq.New(keyseq.KeyF1, none)}
	case ActionStateGroup2:
		return []keyseq.Chord{keyseq.New(keyseq.KeyF2, none)}
	case ActionStateGroup3:
		return []keyseq.Chord{keyseq.New(keyseq.KeyF3, none)}
	case ActionStateGroup4:
		return []keyseq.Chord{keyseq.New(keyseq.KeyF4, none)}
	case actionCount:
	}
	return nil
}
