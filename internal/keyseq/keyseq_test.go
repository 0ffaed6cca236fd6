package keyseq

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
	}{
		{"Space", New(KeySpace, ModNone)},
		{"space", New(KeySpace, ModNone)},
		{"Ctrl+Right", New(KeyRight, ModCtrl)},
		{"control+right", New(KeyRight, ModCtrl)},
		{"F5", New(KeyF5, ModNone)},
		{"f12", New(KeyF12, ModNone)},
		{"1", NewRune('1', ModNone)},
		{"-", NewRune('-', ModNone)},
		{"=", NewRune('=', ModNone)},
		{"a", NewRune('A', ModNone)},
		{"Ctrl+Shift+A", NewRune('A', ModCtrl|ModShift)},
		{"+", NewRune('+', ModNone)},
		{"Ctrl++", NewRune('+', ModCtrl)},
		{"Comma", NewRune(',', ModNone)},
		{"Alt+Comma", NewRune(',', ModAlt)},
		{"Escape", New(KeyEscape, ModNone)},
		{"Ctrl", New(KeyCtrl, ModNone)},
		{"Ctrl+Shift", New(KeyShift, ModCtrl)},
		{" Alt+1 ", NewRune('1', ModAlt)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"Ctrl+", ErrEmpty},
		{"Hyper+A", ErrUnknownModifier},
		{"Banana", ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestChord_StringRoundTrip(t *testing.T) {
	chords := []Chord{
		New(KeySpace, ModNone),
		New(KeyRight, ModCtrl),
		New(KeyLeft, ModCtrl|ModAlt|ModShift|ModMeta),
		New(KeyF9, ModNone),
		NewRune('1', ModNone),
		NewRune('=', ModShift),
		NewRune('+', ModCtrl),
		NewRune(',', ModNone),
		NewRune('Z', ModAlt),
		New(KeyMeta, ModNone),
	}

	for _, c := range chords {
		text := c.String()
		got, err := Parse(text)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", text, err)
			continue
		}
		if got != c {
			t.Errorf("round trip %q: got %#v, want %#v", text, got, c)
		}
	}
}

func TestChord_String(t *testing.T) {
	tests := []struct {
		chord Chord
		want  string
	}{
		{Chord{}, ""},
		{New(KeyRight, ModCtrl), "Ctrl+Right"},
		{NewRune('a', ModNone), "A"},
		{NewRune(' ', ModNone), "Space"},
		{NewRune(',', ModCtrl), "Ctrl+Comma"},
		{New(KeyDelete, ModShift|ModCtrl), "Ctrl+Shift+Del"},
	}
	for _, tt := range tests {
		if got := tt.chord.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestChord_Equality(t *testing.T) {
	if NewRune('a', ModNone) != NewRune('A', ModNone) {
		t.Error("letter case should not distinguish chords")
	}
	if NewRune('1', ModNone) == NewRune('1', ModShift) {
		t.Error("modifiers must distinguish chords")
	}
	if NewRune('1', ModCtrl).Base() != NewRune('1', ModNone) {
		t.Error("Base() should drop modifiers")
	}
	if !(Chord{}).WithMods(ModCtrl).IsEmpty() {
		t.Error("empty chord should stay empty when modifiers are added")
	}
}

func TestModifier(t *testing.T) {
	m := ModCtrl.With(ModShift)
	if !m.Has(ModCtrl) || !m.Has(ModShift) || m.Has(ModAlt) {
		t.Errorf("unexpected bits in %v", m)
	}
	if m.Has(ModNone) {
		t.Error("Has(ModNone) should be false")
	}
	if got := m.Without(ModCtrl); got != ModShift {
		t.Errorf("Without(ModCtrl) = %v, want Shift", got)
	}
	if got := ModifierFromName(" CMD "); got != ModMeta {
		t.Errorf("ModifierFromName(cmd) = %v, want Meta", got)
	}
}
