package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/llehouerou/loopmark/internal/player"
	"github.com/llehouerou/loopmark/internal/slots"
)

// ErrNotSaved is returned when a group edit could not be written back.
var ErrNotSaved = errors.New("group file not saved")

// SlotEdit lists the fields to change in a slot. Nil fields keep their
// value.
type SlotEdit struct {
	Start *time.Duration
	End   *time.Duration
	Speed *float64
	NoEnd bool // drop the loop range
	Clear bool // empty the slot
}

// EditState applies e to slot i of group g of video and saves the group
// file. The slot editor's validation applies: the speed is clamped and a
// loop end must come after the start.
func EditState(p player.Interface, video string, g, i int, e SlotEdit) (slots.PlaybackState, error) {
	if !slots.ValidGroup(g) {
		return slots.PlaybackState{}, fmt.Errorf("group %d out of range 1-%d", g+1, slots.GroupCount)
	}
	if !slots.ValidIndex(i) {
		return slots.PlaybackState{}, fmt.Errorf("slot %d out of range 1-%d", i+1, slots.SlotCount)
	}
	if _, err := p.Open(video); err != nil {
		return slots.PlaybackState{}, err
	}
	// Nothing is dirty right after opening, so the switch runs at once.
	if pending := p.SwitchGroup(g); pending != nil {
		pending.Accept()
	}

	st := p.Store().Slot(i)
	switch {
	case e.Clear:
		st = slots.Empty()
	default:
		if !st.Valid {
			st = slots.Empty()
			st.Valid = true
		}
		if e.Start != nil {
			st.Start = *e.Start
		}
		if e.End != nil {
			st.End = *e.End
			st.HasEnd = true
		}
		if e.NoEnd {
			st.HasEnd = false
		}
		if e.Speed != nil {
			st.Speed = *e.Speed
		}
	}
	if err := p.EditSlot(i, st); err != nil {
		return slots.PlaybackState{}, err
	}
	p.PersistGroup(g)
	if p.Store().Dirty() {
		return slots.PlaybackState{}, ErrNotSaved
	}
	return p.Store().Slot(i), nil
}

// DeleteGroup removes group g of video, its file and its recorded summary.
func DeleteGroup(p player.Interface, video string, g int) error {
	if _, err := p.Open(video); err != nil {
		return err
	}
	pending := p.DeleteGroup(g)
	if pending == nil {
		return fmt.Errorf("group %d out of range 1-%d", g+1, slots.GroupCount)
	}
	pending.Accept()
	return nil
}
