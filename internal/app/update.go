package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopmark/internal/ui/action"
	"github.com/llehouerou/loopmark/internal/ui/confirm"
	"github.com/llehouerou/loopmark/internal/ui/helpbindings"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizePopups()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case action.Msg:
		return m.handleAction(msg)

	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case InputMessage:
		return m.handleInputMsg(msg)
	}
	return m, nil
}

func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.player.Tick()
		return m, TickCmd(m.poll)

	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.Err != nil
		m.statusVersion++
		return m, tea.Batch(StatusTimeoutCmd(m.statusVersion), m.WatchServiceEvents())

	case SlotChangedMsg:
		m.log.Debug().
			Str("op", msg.Op.String()).
			Int("group", msg.Group).
			Int("slot", msg.Slot).
			Msg("slot changed")
		return m, m.WatchServiceEvents()

	case GroupChangedMsg:
		m.log.Debug().
			Str("op", msg.Op.String()).
			Int("group", msg.Group).
			Int("occupied", msg.Occupied).
			Msg("group changed")
		return m, m.WatchServiceEvents()

	case LoopModeChangedMsg:
		m.log.Debug().
			Stringer("from", msg.Previous).
			Stringer("to", msg.Current).
			Msg("loop mode changed")
		return m, m.WatchServiceEvents()

	case BindingsChangedMsg:
		if m.helpOpen {
			m.help.SetSections(m.helpSections())
		}
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputMsg(msg InputMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case KeybindsFileChangedMsg:
		// Failures reach the status line through the player.
		if err := m.player.ReloadBindings(); err != nil {
			m.log.Warn().Err(err).Msg("keybinds reload failed")
		}
		return m, m.WatchKeybindsFile()

	case StickyTimeoutMsg:
		if msg.Version == m.stickyVersion {
			m.sticky = 0
		}
		return m, nil

	case StatusTimeoutMsg:
		if msg.Version == m.statusVersion {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case confirm.Result:
		op, ok := a.Context.(pendingOp)
		if !ok || !a.Confirmed {
			return m, nil
		}
		op.pending.Accept()
		if op.quit {
			return m.quit()
		}
		return m, nil

	case helpbindings.Close:
		m.helpOpen = false
		return m, nil
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.player.Close()
	return m, tea.Quit
}

func (m *Model) resizePopups() {
	if m.confirm.Active() {
		m.confirm.SetSize(m.width, m.height)
	}
	m.help.SetSize(m.width, m.height)
}
