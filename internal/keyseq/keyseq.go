// Package keyseq models a single physical key chord: one key plus the
// modifiers held with it, with a canonical text form that round-trips.
package keyseq

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Key identifies a non-character key. Character keys use KeyRune and carry
// the character in Chord.Rune.
type Key uint16

const (
	KeyNone Key = iota
	KeyEscape
	KeyReturn
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeySpace

	// Modifier keys pressed on their own.
	KeyCtrl
	KeyAlt
	KeyShift
	KeyMeta

	KeyRune
)

var keyNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyReturn:    "Return",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Del",
	KeyInsert:    "Ins",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
	KeySpace:     "Space",
	KeyCtrl:      "Ctrl",
	KeyAlt:       "Alt",
	KeyShift:     "Shift",
	KeyMeta:      "Meta",
}

// keyAliases maps lower-case names accepted by Parse to keys.
var keyAliases = map[string]Key{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"return":    KeyReturn,
	"enter":     KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"del":       KeyDelete,
	"delete":    KeyDelete,
	"ins":       KeyInsert,
	"insert":    KeyInsert,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pgup":      KeyPageUp,
	"pageup":    KeyPageUp,
	"pgdown":    KeyPageDown,
	"pgdn":      KeyPageDown,
	"pagedown":  KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"space":     KeySpace,
	"ctrl":      KeyCtrl,
	"control":   KeyCtrl,
	"alt":       KeyAlt,
	"shift":     KeyShift,
	"meta":      KeyMeta,
}

// runeNames are character keys whose literal form would clash with the
// text encoding (',' separates chords in the keybinds file).
var runeNames = map[rune]string{
	',': "Comma",
}

var runeAliases = map[string]rune{
	"comma": ',',
	"plus":  '+',
	"minus": '-',
	"equal": '=',
}

func init() {
	for i := 1; i <= 12; i++ {
		keyAliases[fmt.Sprintf("f%d", i)] = KeyF1 + Key(i-1)
	}
}

// String returns the portable name of k.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyRune {
		return "Rune"
	}
	return ""
}

// IsModifier returns true for Ctrl, Alt, Shift and Meta pressed alone.
func (k Key) IsModifier() bool {
	return k == KeyCtrl || k == KeyAlt || k == KeyShift || k == KeyMeta
}

// Chord is one key press with its modifiers. The zero value is the empty
// chord, meaning "unbound". Chords are comparable with ==.
type Chord struct {
	Key  Key
	Rune rune
	Mods Modifier
}

// New returns a chord for a named key.
func New(k Key, mods Modifier) Chord {
	if k == KeyNone {
		return Chord{}
	}
	return Chord{Key: k, Mods: mods}
}

// NewRune returns a chord for a character key. Letters are stored upper-case
// so that 'a' and 'A' name the same physical key; case is expressed through
// ModShift only.
func NewRune(r rune, mods Modifier) Chord {
	if r == ' ' {
		return New(KeySpace, mods)
	}
	if r == 0 {
		return Chord{}
	}
	return Chord{Key: KeyRune, Rune: unicode.ToUpper(r), Mods: mods}
}

// IsEmpty returns true for the unbound chord.
func (c Chord) IsEmpty() bool {
	return c.Key == KeyNone
}

// WithMods returns c with its modifiers replaced.
func (c Chord) WithMods(mods Modifier) Chord {
	if c.IsEmpty() {
		return c
	}
	c.Mods = mods
	return c
}

// Base returns c without modifiers.
func (c Chord) Base() Chord {
	return c.WithMods(ModNone)
}

// KeyName returns the portable name of the key part only.
func (c Chord) KeyName() string {
	if c.Key != KeyRune {
		return c.Key.String()
	}
	if name, ok := runeNames[c.Rune]; ok {
		return name
	}
	return string(c.Rune)
}

// String returns the canonical portable text, e.g. "Ctrl+Right" or "=".
// The empty chord encodes as "".
func (c Chord) String() string {
	if c.IsEmpty() {
		return ""
	}
	if c.Mods.IsEmpty() {
		return c.KeyName()
	}
	return c.Mods.String() + "+" + c.KeyName()
}

// Parse errors.
var (
	ErrEmpty           = errors.New("empty key sequence")
	ErrUnknownKey      = errors.New("unknown key")
	ErrUnknownModifier = errors.New("unknown modifier")
)

// Parse reads the portable text form produced by Chord.String. Names are
// case-insensitive and a few common aliases are accepted ("Escape",
// "Delete", "PageUp", "Control").
func Parse(text string) (Chord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Chord{}, ErrEmpty
	}

	var modPart, keyPart string
	switch {
	case text == "+":
		keyPart = "+"
	case strings.HasSuffix(text, "++"):
		modPart = text[:len(text)-2]
		keyPart = "+"
	default:
		if i := strings.LastIndex(text, "+"); i >= 0 {
			modPart, keyPart = text[:i], text[i+1:]
		} else {
			keyPart = text
		}
	}

	var mods Modifier
	if modPart != "" {
		for _, name := range strings.Split(modPart, "+") {
			mod := ModifierFromName(name)
			if mod == ModNone {
				return Chord{}, fmt.Errorf("%w %q in %q", ErrUnknownModifier, name, text)
			}
			mods = mods.With(mod)
		}
	}

	c, err := parseKey(strings.TrimSpace(keyPart))
	if err != nil {
		return Chord{}, fmt.Errorf("%w in %q", err, text)
	}
	return c.WithMods(mods), nil
}

// MustParse is Parse for static tables; it panics on error.
func MustParse(text string) Chord {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

func parseKey(s string) (Chord, error) {
	if s == "" {
		return Chord{}, ErrEmpty
	}
	lower := strings.ToLower(s)
	if k, ok := keyAliases[lower]; ok {
		return New(k, ModNone), nil
	}
	if r, ok := runeAliases[lower]; ok {
		return NewRune(r, ModNone), nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return NewRune(runes[0], ModNone), nil
	}
	return Chord{}, fmt.Errorf("%w %q", ErrUnknownKey, s)
}
