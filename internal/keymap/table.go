package keymap

import (
	"errors"
	"fmt"
	"slices"

	"github.com/llehouerou/loopmark/internal/keyseq"
)

// Validation errors returned by Validate and Registry.SetBindings.
var (
	ErrEmptyChord      = errors.New("empty key sequence")
	ErrReservedChord   = errors.New("key is reserved")
	ErrModifierOnly    = errors.New("modifier keys must be combined with another key")
	ErrNotEditable     = errors.New("action is not editable")
	ErrTooManyBindings = errors.New("too many keybinds for action")
	ErrChordInUse      = errors.New("keybind already in use")
	ErrDuplicateChord  = errors.New("same keybind assigned twice")
	ErrUnknownAction   = errors.New("unknown action")
)

// Validate checks that c may be bound at all: it must be non-empty, must not
// be Escape, Return/Enter or Delete, and must contain a non-modifier key.
func Validate(c keyseq.Chord) error {
	if c.IsEmpty() {
		return ErrEmptyChord
	}
	switch c.Key {
	case keyseq.KeyEscape, keyseq.KeyReturn, keyseq.KeyEnter, keyseq.KeyDelete:
		return fmt.Errorf("%w: %s", ErrReservedChord, c)
	case keyseq.KeyCtrl, keyseq.KeyAlt, keyseq.KeyShift, keyseq.KeyMeta:
		return fmt.Errorf("%w: %s", ErrModifierOnly, c)
	}
	return nil
}

// Table maps every action to its ordered chord list. Order is significant:
// the first chord is the primary binding, and for StateKeys position i
// selects slot i.
type Table map[Action][]keyseq.Chord

// DefaultTable returns a fresh copy of the factory bindings.
func DefaultTable() Table {
	t := make(Table, actionCount)
	for _, a := range Actions() {
		t[a] = DefaultBindings(a)
	}
	return t
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for a, chords := range t {
		out[a] = slices.Clone(chords)
	}
	return out
}

// Equal reports whether both tables hold the same chords in the same order.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for a, chords := range t {
		o, ok := other[a]
		if !ok || !slices.Equal(chords, o) {
			return false
		}
	}
	return true
}

// Check verifies the table invariants: every action present, arity
// respected, every chord valid, and no chord shared within or across
// actions.
func (t Table) Check() error {
	owner := make(map[keyseq.Chord]Action)
	for _, a := range Actions() {
		chords, ok := t[a]
		if !ok {
			return fmt.Errorf("%w: %s missing", ErrUnknownAction, a.ID())
		}
		if len(chords) > a.MaxBindings() {
			return fmt.Errorf("%w: %s has %d", ErrTooManyBindings, a.ID(), len(chords))
		}
		for _, c := range chords {
			if err := Validate(c); err != nil {
				return fmt.Errorf("%s: %w", a.ID(), err)
			}
			if prev, dup := owner[c]; dup {
				if prev == a {
					return fmt.Errorf("%w: %s on %s", ErrDuplicateChord, c, a.ID())
				}
				return fmt.Errorf("%w: %s on %s and %s", ErrChordInUse, c, prev.ID(), a.ID())
			}
			owner[c] = a
		}
	}
	if len(t) != Count() {
		return fmt.Errorf("%w: table has %d actions, want %d", ErrUnknownAction, len(t), Count())
	}
	return nil
}
