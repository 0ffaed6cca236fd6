package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	stickyTimeout = 2 * time.Second
	statusTimeout = 4 * time.Second
)

// TickCmd returns a command that sends TickMsg after interval.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// StickyTimeoutCmd returns a command that expires the sticky modifier.
func StickyTimeoutCmd(version int) tea.Cmd {
	return tea.Tick(stickyTimeout, func(_ time.Time) tea.Msg {
		return StickyTimeoutMsg{Version: version}
	})
}

// StatusTimeoutCmd returns a command that clears the status line.
func StatusTimeoutCmd(version int) tea.Cmd {
	return tea.Tick(statusTimeout, func(_ time.Time) tea.Msg {
		return StatusTimeoutMsg{Version: version}
	})
}

// WatchServiceEvents returns a command that waits for the next player event.
// It listens on all subscription channels and converts events to tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.Status:
			return StatusMsg(e)
		case e := <-sub.SlotChanged:
			return SlotChangedMsg(e)
		case e := <-sub.GroupChanged:
			return GroupChangedMsg(e)
		case e := <-sub.LoopModeChanged:
			return LoopModeChangedMsg(e)
		case <-sub.BindingsChanged:
			return BindingsChangedMsg{}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// WatchKeybindsFile returns a command that waits for an edit of the
// keybinds file. It returns nil when no watcher is running.
func (m Model) WatchKeybindsFile() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return KeybindsFileChangedMsg{}
	}
}
