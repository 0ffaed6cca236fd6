package player

import (
	"fmt"

	"github.com/llehouerou/loopmark/internal/errmsg"
	"github.com/llehouerou/loopmark/internal/playback"
	"github.com/llehouerou/loopmark/internal/session"
	"github.com/llehouerou/loopmark/internal/slots"
)

func (p *Player) publishSlot(op playback.SlotOp, i int) {
	p.bus.PublishSlot(playback.SlotChange{
		Op:    op,
		Group: p.store.ActiveGroup(),
		Slot:  i,
		State: p.store.Slot(i),
	})
}

// SaveSlot bookmarks the current position in slot i.
func (p *Player) SaveSlot(i int) {
	if err := p.store.Save(i); err != nil {
		p.fail(errmsg.OpSlotSave, err)
		return
	}
	p.publishSlot(playback.SlotSaved, i)
	p.status(fmt.Sprintf("State %d saved at %s", i+1, FormatPosition(p.store.Slot(i).Start)), nil)
}

// SetLoopEnd closes the loop range of slot i at the current position.
func (p *Player) SetLoopEnd(i int) {
	if err := p.store.SetLoopEnd(i); err != nil {
		p.fail(errmsg.OpSlotLoopEnd, err)
		return
	}
	p.publishSlot(playback.SlotLoopEndSet, i)
	st := p.store.Slot(i)
	p.status(fmt.Sprintf("State %d loops %s → %s", i+1, FormatPosition(st.Start), FormatPosition(st.End)), nil)
}

// DeleteSlot empties slot i.
func (p *Player) DeleteSlot(i int) {
	if err := p.store.Delete(i); err != nil {
		p.fail(errmsg.OpSlotDelete, err)
		return
	}
	p.publishSlot(playback.SlotDeleted, i)
	p.status(fmt.Sprintf("State %d deleted", i+1), nil)
}

// LoadSlot recalls slot i. The loop poll is held off until the seek is
// issued, and the slot becomes the tracked loop.
func (p *Player) LoadSlot(i int) {
	release := p.sess.SuppressLoop()
	st, err := p.store.Load(i)
	release()
	if err != nil {
		p.fail(errmsg.OpSlotLoad, err)
		return
	}
	p.publishSlot(playback.SlotLoaded, i)
	p.status(fmt.Sprintf("State %d loaded at %s", i+1, FormatPosition(st.Start)), nil)
}

// EditSlot replaces slot i with st after the editor's validation.
func (p *Player) EditSlot(i int, st slots.PlaybackState) error {
	if err := p.store.Set(i, st); err != nil {
		p.fail(errmsg.OpSlotEdit, err)
		return err
	}
	p.publishSlot(playback.SlotEdited, i)
	return nil
}

// SwitchGroup makes g the active group. Unsaved edits of the current group
// need a confirmation first. Switching to the active group does nothing.
func (p *Player) SwitchGroup(g int) *Pending {
	if !slots.ValidGroup(g) {
		p.fail(errmsg.OpGroupSwitch, fmt.Errorf("%w: %d", session.ErrGroupRange, g))
		return nil
	}
	if g == p.store.ActiveGroup() {
		return nil
	}
	return p.GuardDirty("Switch to group "+fmt.Sprint(g+1), func() { p.switchGroup(g) })
}

func (p *Player) switchGroup(g int) {
	prev := p.loop.Mode()
	err := p.store.SwitchGroup(g)
	p.publishLoopReset(prev)
	if err != nil {
		p.fail(errmsg.OpGroupSwitch, err)
		return
	}
	if video := p.store.Video(); video != "" {
		if err := p.prefs.RecordGroup(video, g, p.occupied(), false); err != nil {
			p.log.Warn().Err(err).Msg("failed to record active group")
		}
	}
	p.bus.PublishGroup(playback.GroupChange{
		Op:       playback.GroupSwitched,
		Group:    g,
		Occupied: p.occupied(),
	})
	p.status(fmt.Sprintf("State group %d (%s)", g+1, plural(p.occupied(), "state")), nil)
}

// PersistGroup writes group g, which must be the active group, to its file.
func (p *Player) PersistGroup(g int) {
	if err := p.store.PersistGroup(g); err != nil {
		p.fail(errmsg.OpGroupSave, err)
		return
	}
	n := p.occupied()
	if err := p.prefs.RecordGroup(p.store.Video(), g, n, true); err != nil {
		p.log.Warn().Err(err).Msg("failed to record saved group")
	}
	p.bus.PublishGroup(playback.GroupChange{Op: playback.GroupPersisted, Group: g, Occupied: n})
	p.status(fmt.Sprintf("State group %d saved (%s)", g+1, plural(n, "state")), nil)
}

// DeleteGroup asks for a confirmation, then removes group g's file and,
// when g is active, its slots.
func (p *Player) DeleteGroup(g int) *Pending {
	if !slots.ValidGroup(g) {
		p.fail(errmsg.OpGroupDelete, fmt.Errorf("%w: %d", session.ErrGroupRange, g))
		return nil
	}
	if p.store.Video() == "" {
		p.fail(errmsg.OpGroupDelete, session.ErrNoVideo)
		return nil
	}
	return confirm(
		"Delete state group",
		fmt.Sprintf("Delete state group %d and its file?", g+1),
		func() { p.deleteGroup(g) },
	)
}

func (p *Player) deleteGroup(g int) {
	prev := p.loop.Mode()
	err := p.store.DeleteGroup(g)
	p.publishLoopReset(prev)
	if err != nil {
		p.fail(errmsg.OpGroupDelete, err)
		return
	}
	if err := p.prefs.ForgetGroup(p.store.Video(), g); err != nil {
		p.log.Warn().Err(err).Msg("failed to forget saved group")
	}
	p.bus.PublishGroup(playback.GroupChange{Op: playback.GroupDeleted, Group: g})
	p.status(fmt.Sprintf("State group %d deleted", g+1), nil)
}
