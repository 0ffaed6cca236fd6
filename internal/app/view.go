package app

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/media"
	"github.com/llehouerou/loopmark/internal/session"
	"github.com/llehouerou/loopmark/internal/slots"
	"github.com/llehouerou/loopmark/internal/ui/playerbar"
	"github.com/llehouerou/loopmark/internal/ui/popup"
	"github.com/llehouerou/loopmark/internal/ui/preview"
	"github.com/llehouerou/loopmark/internal/ui/slotbar"
	"github.com/llehouerou/loopmark/internal/ui/styles"
)

const (
	previewCols = 18
	previewRows = 5
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	if m.confirm.Active() {
		return popup.RenderBordered(m.confirm.View(), m.width, m.height)
	}
	if m.helpOpen {
		return popup.RenderBordered(m.help.View(), m.width, m.height)
	}

	return m.renderTop() + "\n" +
		playerbar.Render(m.barState(), m.width) + "\n" +
		m.renderStatus()
}

// renderTop draws the header, the slot bar and the preview of the tracked
// slot. The player bar starts right below it.
func (m Model) renderTop() string {
	t := styles.T()
	header := styles.Gradient("loopmark", t.Primary, t.Secondary)
	if v := m.player.Video(); v != "" {
		header += t.S().Muted.Render("  " + filepath.Base(v))
	}

	store := m.player.Store()
	sess := m.player.Session()
	bar := slotbar.Render(slotbar.State{
		Group:   store.Group(),
		Active:  store.ActiveGroup(),
		Tracked: sess.LoopSlot,
		Dirty:   store.Dirty(),
		Labels:  m.slotLabels(),
	})

	top := bar
	if img := m.trackedPreview(); img != "" {
		top = lipgloss.JoinHorizontal(lipgloss.Top, bar, "  ", img)
	}
	return header + "\n\n" + top
}

func (m Model) trackedPreview() string {
	sess := m.player.Session()
	if !slots.ValidIndex(sess.LoopSlot) {
		return ""
	}
	slot := m.player.Store().Slot(sess.LoopSlot)
	if !slot.Valid || slot.Preview == nil {
		return ""
	}
	return preview.Render(slot.Preview, previewCols, previewRows)
}

// slotLabels returns the recall key of each slot from the StateKeys list.
func (m Model) slotLabels() []string {
	chords := m.player.Keys().Bindings(keymap.ActionStateKeys)
	labels := make([]string, len(chords))
	for i, c := range chords {
		labels[i] = c.String()
	}
	return labels
}

// barTop is the row the player bar starts on.
func (m Model) barTop() int {
	return lipgloss.Height(m.renderTop())
}

func (m Model) barState() playerbar.State {
	b := m.player.Backend()
	store := m.player.Store()
	sess := m.player.Session()
	s := playerbar.State{
		Title:     titleOf(m.player.Video()),
		Playing:   b.State().IsPlaying(),
		Stopped:   b.State() == media.Stopped,
		Position:  b.Position(),
		Duration:  b.Duration(),
		Rate:      b.PlaybackRate(),
		Volume:    b.Volume(),
		Group:     store.ActiveGroup(),
		LoopMode:  m.player.LoopMode().String(),
		LoadSpeed: sess.LoadSpeed,
	}
	if sess.Mode != session.NoLoop && slots.ValidIndex(sess.LoopSlot) {
		if slot := store.Slot(sess.LoopSlot); slot.IsLoop() {
			s.HasLoop = true
			s.LoopStart, s.LoopEnd = slot.Start, slot.End
		}
	}
	return s
}

func titleOf(video string) string {
	if video == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
}

func (m Model) renderStatus() string {
	st := styles.T().S()
	var parts []string
	if m.sticky != 0 {
		parts = append(parts, st.Key.Render("["+m.sticky.String()+"+…]"))
	}
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, st.Error.Render(m.status))
		} else {
			parts = append(parts, st.Muted.Render(m.status))
		}
	}
	if len(parts) == 0 {
		return st.Subtle.Render("? keybinds · Esc quit")
	}
	return strings.Join(parts, " ")
}
