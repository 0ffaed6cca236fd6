package keymap

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/llehouerou/loopmark/internal/keyseq"
)

// Registry is the single source of truth for action bindings. It is not
// safe for concurrent use; callers mutate it from one event loop.
type Registry struct {
	bindings Table
	path     string
	log      zerolog.Logger
	onChange []func()
}

// NewRegistry returns a registry holding the default table and no backing
// file. Use Open to bind it to a keybinds file.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		bindings: DefaultTable(),
		log:      log.With().Str("component", "keymap").Logger(),
	}
}

// OnChange registers fn to be called after every successful change to the
// bindings.
func (r *Registry) OnChange(fn func()) {
	r.onChange = append(r.onChange, fn)
}

func (r *Registry) changed() {
	for _, fn := range r.onChange {
		fn()
	}
}

// Bindings returns a copy of the chords bound to a.
func (r *Registry) Bindings(a Action) []keyseq.Chord {
	return slices.Clone(r.bindings[a])
}

// Table returns a copy of the whole binding table.
func (r *Registry) Table() Table {
	return r.bindings.Clone()
}

// IsValid reports whether c may be bound.
func (r *Registry) IsValid(c keyseq.Chord) bool {
	return Validate(c) == nil
}

// SetBindings replaces the chords of a. On any error the registry is left
// unchanged and no notification fires.
func (r *Registry) SetBindings(a Action, chords []keyseq.Chord) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAction, a)
	}
	if !a.Editable() {
		return fmt.Errorf("%w: %s", ErrNotEditable, a)
	}
	if len(chords) > a.MaxBindings() {
		return fmt.Errorf("%w: %s accepts at most %d", ErrTooManyBindings, a, a.MaxBindings())
	}
	seen := make(map[keyseq.Chord]bool, len(chords))
	for _, c := range chords {
		if err := Validate(c); err != nil {
			return err
		}
		if owner, ok := r.owner(c, a); ok {
			return fmt.Errorf("%w: %s is bound to %s", ErrChordInUse, c, owner)
		}
		if seen[c] {
			return fmt.Errorf("%w: %s", ErrDuplicateChord, c)
		}
		seen[c] = true
	}

	r.bindings[a] = slices.Clone(chords)
	r.log.Debug().Str("action", a.ID()).Stringers("keys", chordStringers(chords)).Msg("bindings set")
	r.changed()
	return nil
}

// IsInUse reports whether c is bound to any action other than excluding.
func (r *Registry) IsInUse(c keyseq.Chord, excluding Action) bool {
	_, ok := r.owner(c, excluding)
	return ok
}

func (r *Registry) owner(c keyseq.Chord, excluding Action) (Action, bool) {
	if c.IsEmpty() {
		return 0, false
	}
	for _, a := range Actions() {
		if a == excluding {
			continue
		}
		if slices.Contains(r.bindings[a], c) {
			return a, true
		}
	}
	return 0, false
}

// ActionForKey returns the first action, in enumeration order, bound to c.
// When nothing owns c it returns ActionPlayPause and false; the action is
// meaningless in that case.
func (r *Registry) ActionForKey(c keyseq.Chord) (Action, bool) {
	if c.IsEmpty() {
		return ActionPlayPause, false
	}
	for _, a := range Actions() {
		if slices.Contains(r.bindings[a], c) {
			return a, true
		}
	}
	return ActionPlayPause, false
}

// StateKeyIndex returns the slot selected by c through the StateKeys list,
// or -1.
func (r *Registry) StateKeyIndex(c keyseq.Chord) int {
	if c.IsEmpty() {
		return -1
	}
	keys := r.bindings[ActionStateKeys]
	for i := 0; i < len(keys) && i < MaxStateKeys; i++ {
		if keys[i] == c {
			return i
		}
	}
	return -1
}

// ResetToDefaults replaces every binding with the factory table.
func (r *Registry) ResetToDefaults() {
	r.bindings = DefaultTable()
	r.log.Info().Msg("bindings reset to defaults")
	r.changed()
}

func chordStringers(chords []keyseq.Chord) []fmt.Stringer {
	out := make([]fmt.Stringer, len(chords))
	for i, c := range chords {
		out[i] = c
	}
	return out
}
