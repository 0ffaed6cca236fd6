// Package app contains the terminal shell around the bookmark player: its
// bubbletea model, messages and commands.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopmark/internal/playback"
)

// Message category interfaces for type-based routing in Update().
// External messages (from other packages) cannot implement these interfaces,
// so they are handled separately in the Update() switch.

// PlaybackMessage is implemented by messages that come from the player.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// InputMessage is implemented by messages related to user input handling.
type InputMessage interface {
	tea.Msg
	inputMessage()
}

// TickMsg drives the position poll and the progress bar.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// StatusMsg wraps a player status message.
type StatusMsg playback.Status

func (StatusMsg) playbackMessage() {}

// SlotChangedMsg wraps a slot event.
type SlotChangedMsg playback.SlotChange

func (SlotChangedMsg) playbackMessage() {}

// GroupChangedMsg wraps a group event.
type GroupChangedMsg playback.GroupChange

func (GroupChangedMsg) playbackMessage() {}

// LoopModeChangedMsg wraps a loop mode event.
type LoopModeChangedMsg playback.LoopModeChange

func (LoopModeChangedMsg) playbackMessage() {}

// BindingsChangedMsg is sent after the keybind table changed.
type BindingsChangedMsg struct{}

func (BindingsChangedMsg) playbackMessage() {}

// ServiceClosedMsg is sent once the player's event bus is closed.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// KeybindsFileChangedMsg is sent when the keybinds file was edited on disk.
type KeybindsFileChangedMsg struct{}

func (KeybindsFileChangedMsg) inputMessage() {}

// StickyTimeoutMsg expires a pending sticky modifier. The Version field is
// used to ignore stale timeouts.
type StickyTimeoutMsg struct {
	Version int
}

func (StickyTimeoutMsg) inputMessage() {}

// StatusTimeoutMsg clears the status line unless a newer status replaced it.
type StatusTimeoutMsg struct {
	Version int
}

func (StatusTimeoutMsg) inputMessage() {}
