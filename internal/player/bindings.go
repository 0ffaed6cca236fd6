package player

import (
	"github.com/llehouerou/loopmark/internal/errmsg"
	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/keyseq"
)

// SetBindings rebinds a and saves the keybinds file.
func (p *Player) SetBindings(a keymap.Action, chords []keyseq.Chord) error {
	if err := p.keys.SetBindings(a, chords); err != nil {
		p.status(errmsg.FormatWith(errmsg.OpKeysSet, a.String(), err), err)
		return err
	}
	return p.saveBindings()
}

// ResetBindings restores the factory table and saves it.
func (p *Player) ResetBindings() error {
	p.keys.ResetToDefaults()
	return p.saveBindings()
}

// ReloadBindings re-reads the keybinds file after an external edit.
func (p *Player) ReloadBindings() error {
	if err := p.keys.Reload(); err != nil {
		p.fail(errmsg.OpKeysReload, err)
		return err
	}
	p.status("Keybinds reloaded", nil)
	return nil
}

func (p *Player) saveBindings() error {
	if err := p.keys.Save(); err != nil {
		p.fail(errmsg.OpKeysSave, err)
		return err
	}
	return nil
}
