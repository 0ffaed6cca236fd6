package dispatch

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/keyseq"
)

func TestResolve_DefaultBindings(t *testing.T) {
	d := New(keymap.NewRegistry(zerolog.Nop()))
	shift := keyseq.ModShift

	tests := []struct {
		name  string
		chord keyseq.Chord
		want  Outcome
	}{
		{"plain 1 loads slot 0", keyseq.MustParse("1"), Outcome{Kind: LoadSlot, Slot: 0}},
		{"plain 0 loads slot 9", keyseq.MustParse("0"), Outcome{Kind: LoadSlot, Slot: 9}},
		{"plain = loads slot 11", keyseq.MustParse("="), Outcome{Kind: LoadSlot, Slot: 11}},
		{"ctrl saves", keyseq.MustParse("Ctrl+1"), Outcome{Kind: SaveSlot, Slot: 0}},
		{"alt sets loop end", keyseq.MustParse("Alt+-"), Outcome{Kind: SetLoopEnd, Slot: 10}},
		{"shift deletes", keyseq.MustParse("Shift+="), Outcome{Kind: DeleteSlot, Slot: 11}},
		{"shifted glyph deletes like shift+digit", keyseq.NewRune('!', shift), Outcome{Kind: DeleteSlot, Slot: 0}},
		{"shifted plus deletes slot 11", keyseq.NewRune('+', shift), Outcome{Kind: DeleteSlot, Slot: 11}},
		{"shifted paren deletes slot 9", keyseq.NewRune(')', shift), Outcome{Kind: DeleteSlot, Slot: 9}},
		{"glyph without shift is not normalized", keyseq.NewRune('!', keyseq.ModNone), Outcome{Kind: Unhandled}},
		{"two modifiers on slot key", keyseq.MustParse("Ctrl+Alt+1"), Outcome{Kind: Unhandled}},
		{"meta on slot key", keyseq.MustParse("Meta+1"), Outcome{Kind: Unhandled}},
		{"ctrl+F1 persists group", keyseq.MustParse("Ctrl+F1"), Outcome{Kind: PersistGroup, Group: 0}},
		{"alt+F4 deletes group", keyseq.MustParse("Alt+F4"), Outcome{Kind: DeleteGroup, Group: 3}},
		{"F2 switches group", keyseq.MustParse("F2"), Outcome{Kind: RunAction, Action: keymap.ActionStateGroup2}},
		{"space", keyseq.MustParse("Space"), Outcome{Kind: RunAction, Action: keymap.ActionPlayPause}},
		{"ctrl+right", keyseq.MustParse("Ctrl+Right"), Outcome{Kind: RunAction, Action: keymap.ActionSpeedUp}},
		{"right", keyseq.MustParse("Right"), Outcome{Kind: RunAction, Action: keymap.ActionSeekForward}},
		{"backspace", keyseq.MustParse("Backspace"), Outcome{Kind: RunAction, Action: keymap.ActionReturnToLastPosition}},
		{"F9", keyseq.MustParse("F9"), Outcome{Kind: RunAction, Action: keymap.ActionCycleLoopMode}},
		{"F5", keyseq.MustParse("F5"), Outcome{Kind: RunAction, Action: keymap.ActionToggleLoadSpeed}},
		{"unbound letter", keyseq.MustParse("Q"), Outcome{Kind: Unhandled}},
		{"shift+F1 is unbound", keyseq.MustParse("Shift+F1"), Outcome{Kind: Unhandled}},
		{"empty chord", keyseq.Chord{}, Outcome{Kind: Unhandled}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Resolve(tt.chord))
		})
	}
}

func TestResolve_CustomStateKeys(t *testing.T) {
	r := keymap.NewRegistry(zerolog.Nop())
	keys := make([]keyseq.Chord, 0, keymap.MaxStateKeys)
	for _, ch := range "QWERTYUIOPAS" {
		keys = append(keys, keyseq.NewRune(ch, keyseq.ModNone))
	}
	require.NoError(t, r.SetBindings(keymap.ActionStateKeys, keys))
	d := New(r)

	assert.Equal(t, Outcome{Kind: LoadSlot, Slot: 0}, d.Resolve(keyseq.MustParse("Q")))
	assert.Equal(t, Outcome{Kind: LoadSlot, Slot: 11}, d.Resolve(keyseq.MustParse("S")))
	assert.Equal(t, Outcome{Kind: Unhandled}, d.Resolve(keyseq.MustParse("1")))

	// The modifier row stays on the physical digits.
	assert.Equal(t, Outcome{Kind: SaveSlot, Slot: 0}, d.Resolve(keyseq.MustParse("Ctrl+1")))
	assert.Equal(t, Outcome{Kind: Unhandled}, d.Resolve(keyseq.MustParse("Ctrl+Q")))
}

func TestResolve_StateKeyListShorterThanTwelve(t *testing.T) {
	r := keymap.NewRegistry(zerolog.Nop())
	require.NoError(t, r.SetBindings(keymap.ActionStateKeys, []keyseq.Chord{keyseq.MustParse("J")}))
	d := New(r)

	assert.Equal(t, Outcome{Kind: LoadSlot, Slot: 0}, d.Resolve(keyseq.MustParse("J")))
	assert.Equal(t, Outcome{Kind: Unhandled}, d.Resolve(keyseq.MustParse("2")))
}

// fakeBindings allows tables the registry would reject.
type fakeBindings map[keymap.Action][]keyseq.Chord

func (f fakeBindings) Bindings(a keymap.Action) []keyseq.Chord { return f[a] }

func TestResolve_EnumerationOrderBreaksTies(t *testing.T) {
	k := keyseq.MustParse("K")
	d := New(fakeBindings{
		keymap.ActionCycleLoopMode: {k},
		keymap.ActionStop:          {k},
	})
	assert.Equal(t, Outcome{Kind: RunAction, Action: keymap.ActionStop}, d.Resolve(k))
}

func TestResolve_DisplayOnlyActionsNeverRun(t *testing.T) {
	k := keyseq.MustParse("K")
	d := New(fakeBindings{
		keymap.ActionSaveState:   {k},
		keymap.ActionDeleteState: {keyseq.MustParse("L")},
	})
	assert.Equal(t, Outcome{Kind: Unhandled}, d.Resolve(k))
	assert.Equal(t, Outcome{Kind: Unhandled}, d.Resolve(keyseq.MustParse("L")))
}

func TestResolve_GroupShortcutsPrecedeBindings(t *testing.T) {
	d := New(fakeBindings{
		keymap.ActionPlayPause: {keyseq.MustParse("Ctrl+F2")},
	})
	assert.Equal(t, Outcome{Kind: PersistGroup, Group: 1}, d.Resolve(keyseq.MustParse("Ctrl+F2")))
}

func TestNormalize(t *testing.T) {
	shift := keyseq.ModShift
	assert.Equal(t, keyseq.NewRune('2', shift), Normalize(keyseq.NewRune('@', shift)))
	assert.Equal(t, keyseq.NewRune('-', shift), Normalize(keyseq.NewRune('_', shift)))
	assert.Equal(t, keyseq.NewRune('@', keyseq.ModNone), Normalize(keyseq.NewRune('@', keyseq.ModNone)))
	assert.Equal(t, keyseq.MustParse("Shift+Right"), Normalize(keyseq.MustParse("Shift+Right")))
}

func TestSlotForKey(t *testing.T) {
	for i, r := range keymap.SlotKeys {
		assert.Equal(t, i, SlotForKey(keyseq.NewRune(r, keyseq.ModCtrl)))
	}
	assert.Equal(t, -1, SlotForKey(keyseq.MustParse("Q")))
	assert.Equal(t, -1, SlotForKey(keyseq.MustParse("F1")))
}
