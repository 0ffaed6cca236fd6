package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopmark/internal/dispatch"
	"github.com/llehouerou/loopmark/internal/keyseq"
	"github.com/llehouerou/loopmark/internal/player"
	"github.com/llehouerou/loopmark/internal/ui/helpbindings"
	"github.com/llehouerou/loopmark/internal/ui/playerbar"
	"github.com/llehouerou/loopmark/internal/ui/termkeys"
)

var (
	tabChord  = keyseq.New(keyseq.KeyTab, keyseq.ModNone)
	helpChord = keyseq.NewRune('?', keyseq.ModShift)
)

// Shell keys. Escape and Ctrl+C are reserved; Tab and ? only act when no
// binding claims them.
var shellBindings = []key.Binding{
	key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("Esc/Ctrl+C", "Quit")),
	key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Keybinds")),
	key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Sticky Ctrl/Alt/Shift for next key")),
	key.NewBinding(key.WithKeys("click"), key.WithHelp("Click", "Jump on the progress bar")),
}

// nextSticky cycles the sticky modifier: none, Ctrl, Alt, Shift, none.
func nextSticky(m keyseq.Modifier) keyseq.Modifier {
	switch m {
	case keyseq.ModNone:
		return keyseq.ModCtrl
	case keyseq.ModCtrl:
		return keyseq.ModAlt
	case keyseq.ModAlt:
		return keyseq.ModShift
	default:
		return keyseq.ModNone
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.Active() {
		_, cmd := m.confirm.Update(msg)
		return m, cmd
	}
	if m.helpOpen {
		_, cmd := m.help.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "ctrl+c":
		m.sticky = keyseq.ModNone
		return m.confirmOrRun(m.player.GuardDirty("Quit", func() {}), true)
	}

	c := termkeys.FromKeyMsg(msg)
	if c.IsEmpty() {
		return m, nil
	}

	if m.sticky != keyseq.ModNone {
		if c == tabChord {
			return m.armSticky(nextSticky(m.sticky))
		}
		c = c.WithMods(c.Mods.With(m.sticky))
		m.sticky = keyseq.ModNone
	}

	out, pending := m.player.HandleKey(c)
	if pending != nil {
		return m.confirmOrRun(pending, false)
	}
	if out.Kind != dispatch.Unhandled {
		return m, nil
	}

	switch c {
	case tabChord:
		return m.armSticky(keyseq.ModCtrl)
	case helpChord:
		m.openHelp()
	}
	return m, nil
}

func (m Model) armSticky(mods keyseq.Modifier) (tea.Model, tea.Cmd) {
	m.sticky = mods
	m.stickyVersion++
	if mods == keyseq.ModNone {
		return m, nil
	}
	return m, StickyTimeoutCmd(m.stickyVersion)
}

// confirmOrRun shows the confirm popup for a held operation. A nil pending
// means the operation already ran.
func (m Model) confirmOrRun(p *player.Pending, quit bool) (tea.Model, tea.Cmd) {
	if p == nil {
		if quit {
			return m.quit()
		}
		return m, nil
	}
	m.confirm.Show(p.Title, p.Message, pendingOp{pending: p, quit: quit}, m.width, m.height)
	return m, nil
}

func (m *Model) openHelp() {
	m.help.SetSections(m.helpSections())
	m.help.SetSize(m.width, m.height)
	m.helpOpen = true
}

func (m Model) helpSections() []helpbindings.Section {
	return []helpbindings.Section{
		{Title: "Player", Bindings: m.player.Keys().HelpBindings()},
		{Title: "Groups", Bindings: groupBindings},
		{Title: "Shell", Bindings: shellBindings},
	}
}

// groupBindings document the fixed group shortcuts, which are not part of
// the keybind table.
var groupBindings = []key.Binding{
	key.NewBinding(key.WithKeys("ctrl+f1"), key.WithHelp("Ctrl+F1…F4", "Save group")),
	key.NewBinding(key.WithKeys("alt+f1"), key.WithHelp("Alt+F1…F4", "Delete group file")),
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.confirm.Active() || m.helpOpen {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	backend := m.player.Backend()
	if !backend.HasMedia() || msg.Y != m.barTop()+playerbar.BarRow {
		return m, nil
	}
	state := m.barState()
	barWidth := playerbar.BarWidth(state, m.width)
	col := msg.X - playerbar.BarOffset
	if col < 0 || col >= barWidth {
		return m, nil
	}
	m.player.JumpTo(playerbar.PositionAt(col, barWidth, backend.Duration()))
	return m, nil
}
