// Package dispatch resolves one raw key chord into exactly one effect: a
// global command, a slot operation, a group operation, or nothing.
package dispatch

import (
	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/keyseq"
)

// Kind is the effect a chord resolved to.
type Kind int

const (
	Unhandled Kind = iota
	RunAction
	SaveSlot
	SetLoopEnd
	DeleteSlot
	LoadSlot
	PersistGroup
	DeleteGroup
)

func (k Kind) String() string {
	switch k {
	case Unhandled:
		return "Unhandled"
	case RunAction:
		return "RunAction"
	case SaveSlot:
		return "SaveSlot"
	case SetLoopEnd:
		return "SetLoopEnd"
	case DeleteSlot:
		return "DeleteSlot"
	case LoadSlot:
		return "LoadSlot"
	case PersistGroup:
		return "PersistGroup"
	case DeleteGroup:
		return "DeleteGroup"
	default:
		return "Unknown"
	}
}

// Outcome is the resolved effect. Action is set for RunAction, Slot for the
// slot kinds and Group for the group kinds.
type Outcome struct {
	Kind   Kind
	Action keymap.Action
	Slot   int
	Group  int
}

// Bindings is the part of the keybind registry the dispatcher reads.
type Bindings interface {
	Bindings(a keymap.Action) []keyseq.Chord
}

// Dispatcher applies the resolution rules against the live bindings.
type Dispatcher struct {
	bindings Bindings
}

// New returns a dispatcher reading from b.
func New(b Bindings) *Dispatcher {
	return &Dispatcher{bindings: b}
}

// shiftedGlyphs maps what an input source reports for Shift+digit, '-' and
// '=' on a US layout back to the physical key.
var shiftedGlyphs = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=',
}

// Normalize maps a shifted glyph back to its base key when Shift is held.
// Other chords are returned unchanged.
func Normalize(c keyseq.Chord) keyseq.Chord {
	if c.Key != keyseq.KeyRune || !c.Mods.Has(keyseq.ModShift) {
		return c
	}
	if base, ok := shiftedGlyphs[c.Rune]; ok {
		c.Rune = base
	}
	return c
}

// SlotForKey returns the slot of the fixed physical slot key row
// 1..9 0 - = for c's key, ignoring modifiers, or -1.
func SlotForKey(c keyseq.Chord) int {
	if c.Key != keyseq.KeyRune {
		return -1
	}
	for i, r := range keymap.SlotKeys {
		if c.Rune == r {
			return i
		}
	}
	return -1
}

// groupForKey returns the group selected by F1..F4, or -1.
func groupForKey(k keyseq.Key) int {
	switch k {
	case keyseq.KeyF1:
		return 0
	case keyseq.KeyF2:
		return 1
	case keyseq.KeyF3:
		return 2
	case keyseq.KeyF4:
		return 3
	default:
		return -1
	}
}

// Resolve maps a raw chord to its outcome. Rules are tried in order and the
// first match wins:
//
//  1. Shift+glyph is normalized to the physical key (used by rules 2 and 3).
//  2. Ctrl+F1..F4 persists the group, Alt+F1..F4 deletes it.
//  3. A slot key with exactly one of Ctrl, Alt, Shift saves, sets the loop
//     end of, or deletes that slot.
//  4. An unmodified key found in the StateKeys list at i loads slot i.
//  5. The raw chord bound to a global command runs it; enumeration order
//     breaks ties.
//
// Anything else is Unhandled.
func (d *Dispatcher) Resolve(raw keyseq.Chord) Outcome {
	if raw.IsEmpty() {
		return Outcome{Kind: Unhandled}
	}
	key := Normalize(raw)

	if g := groupForKey(raw.Key); g >= 0 {
		switch raw.Mods {
		case keyseq.ModCtrl:
			return Outcome{Kind: PersistGroup, Group: g}
		case keyseq.ModAlt:
			return Outcome{Kind: DeleteGroup, Group: g}
		}
	}

	if slot := SlotForKey(key); slot >= 0 {
		switch key.Mods {
		case keyseq.ModCtrl:
			return Outcome{Kind: SaveSlot, Slot: slot}
		case keyseq.ModAlt:
			return Outcome{Kind: SetLoopEnd, Slot: slot}
		case keyseq.ModShift:
			return Outcome{Kind: DeleteSlot, Slot: slot}
		}
	}

	if key.Mods.IsEmpty() {
		stateKeys := d.bindings.Bindings(keymap.ActionStateKeys)
		for i, c := range stateKeys {
			if i >= keymap.MaxStateKeys {
				break
			}
			if c == key {
				return Outcome{Kind: LoadSlot, Slot: i}
			}
		}
	}

	for _, a := range keymap.Actions() {
		if !a.IsCommand() {
			continue
		}
		for _, c := range d.bindings.Bindings(a) {
			if c == raw {
				return Outcome{Kind: RunAction, Action: a}
			}
		}
	}
	return Outcome{Kind: Unhandled}
}
