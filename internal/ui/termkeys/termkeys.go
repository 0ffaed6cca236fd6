// Package termkeys turns terminal key events into portable key chords.
package termkeys

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopmark/internal/keyseq"
)

// shiftedGlyphs are the characters a US layout produces only with Shift
// held. Terminals report them without the modifier.
const shiftedGlyphs = `!@#$%^&*()_+~{}|:"<>?`

var namedKeys = map[tea.KeyType]keyseq.Chord{
	tea.KeySpace:     keyseq.New(keyseq.KeySpace, keyseq.ModNone),
	tea.KeyEnter:     keyseq.New(keyseq.KeyReturn, keyseq.ModNone),
	tea.KeyEsc:       keyseq.New(keyseq.KeyEscape, keyseq.ModNone),
	tea.KeyTab:       keyseq.New(keyseq.KeyTab, keyseq.ModNone),
	tea.KeyShiftTab:  keyseq.New(keyseq.KeyTab, keyseq.ModShift),
	tea.KeyBackspace: keyseq.New(keyseq.KeyBackspace, keyseq.ModNone),
	tea.KeyDelete:    keyseq.New(keyseq.KeyDelete, keyseq.ModNone),
	tea.KeyInsert:    keyseq.New(keyseq.KeyInsert, keyseq.ModNone),
	tea.KeyHome:      keyseq.New(keyseq.KeyHome, keyseq.ModNone),
	tea.KeyEnd:       keyseq.New(keyseq.KeyEnd, keyseq.ModNone),
	tea.KeyPgUp:      keyseq.New(keyseq.KeyPageUp, keyseq.ModNone),
	tea.KeyPgDown:    keyseq.New(keyseq.KeyPageDown, keyseq.ModNone),

	tea.KeyUp:    keyseq.New(keyseq.KeyUp, keyseq.ModNone),
	tea.KeyDown:  keyseq.New(keyseq.KeyDown, keyseq.ModNone),
	tea.KeyLeft:  keyseq.New(keyseq.KeyLeft, keyseq.ModNone),
	tea.KeyRight: keyseq.New(keyseq.KeyRight, keyseq.ModNone),

	tea.KeyCtrlUp:    keyseq.New(keyseq.KeyUp, keyseq.ModCtrl),
	tea.KeyCtrlDown:  keyseq.New(keyseq.KeyDown, keyseq.ModCtrl),
	tea.KeyCtrlLeft:  keyseq.New(keyseq.KeyLeft, keyseq.ModCtrl),
	tea.KeyCtrlRight: keyseq.New(keyseq.KeyRight, keyseq.ModCtrl),
	tea.KeyCtrlHome:  keyseq.New(keyseq.KeyHome, keyseq.ModCtrl),
	tea.KeyCtrlEnd:   keyseq.New(keyseq.KeyEnd, keyseq.ModCtrl),

	tea.KeyShiftUp:    keyseq.New(keyseq.KeyUp, keyseq.ModShift),
	tea.KeyShiftDown:  keyseq.New(keyseq.KeyDown, keyseq.ModShift),
	tea.KeyShiftLeft:  keyseq.New(keyseq.KeyLeft, keyseq.ModShift),
	tea.KeyShiftRight: keyseq.New(keyseq.KeyRight, keyseq.ModShift),

	tea.KeyCtrlShiftUp:    keyseq.New(keyseq.KeyUp, keyseq.ModCtrl|keyseq.ModShift),
	tea.KeyCtrlShiftDown:  keyseq.New(keyseq.KeyDown, keyseq.ModCtrl|keyseq.ModShift),
	tea.KeyCtrlShiftLeft:  keyseq.New(keyseq.KeyLeft, keyseq.ModCtrl|keyseq.ModShift),
	tea.KeyCtrlShiftRight: keyseq.New(keyseq.KeyRight, keyseq.ModCtrl|keyseq.ModShift),

	tea.KeyF1:  keyseq.New(keyseq.KeyF1, keyseq.ModNone),
	tea.KeyF2:  keyseq.New(keyseq.KeyF2, keyseq.ModNone),
	tea.KeyF3:  keyseq.New(keyseq.KeyF3, keyseq.ModNone),
	tea.KeyF4:  keyseq.New(keyseq.KeyF4, keyseq.ModNone),
	tea.KeyF5:  keyseq.New(keyseq.KeyF5, keyseq.ModNone),
	tea.KeyF6:  keyseq.New(keyseq.KeyF6, keyseq.ModNone),
	tea.KeyF7:  keyseq.New(keyseq.KeyF7, keyseq.ModNone),
	tea.KeyF8:  keyseq.New(keyseq.KeyF8, keyseq.ModNone),
	tea.KeyF9:  keyseq.New(keyseq.KeyF9, keyseq.ModNone),
	tea.KeyF10: keyseq.New(keyseq.KeyF10, keyseq.ModNone),
	tea.KeyF11: keyseq.New(keyseq.KeyF11, keyseq.ModNone),
	tea.KeyF12: keyseq.New(keyseq.KeyF12, keyseq.ModNone),
}

// FromKeyMsg converts a bubbletea key event. Upper-case letters and shifted
// glyphs gain ModShift, Ctrl+letter control codes become Ctrl chords and
// the Alt flag becomes ModAlt. Events with no chord equivalent, such as
// pastes, return the empty chord.
func FromKeyMsg(msg tea.KeyMsg) keyseq.Chord {
	if msg.Paste {
		return keyseq.Chord{}
	}
	var alt keyseq.Modifier
	if msg.Alt {
		alt = keyseq.ModAlt
	}

	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return keyseq.Chord{}
		}
		r := msg.Runes[0]
		mods := alt
		if unicode.IsUpper(r) || strings.ContainsRune(shiftedGlyphs, r) {
			mods = mods.With(keyseq.ModShift)
		}
		return keyseq.NewRune(r, mods)
	}

	if c, ok := namedKeys[msg.Type]; ok {
		return c.WithMods(c.Mods.With(alt))
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		r := 'A' + rune(msg.Type-tea.KeyCtrlA)
		return keyseq.NewRune(r, keyseq.ModCtrl.With(alt))
	}
	return keyseq.Chord{}
}
