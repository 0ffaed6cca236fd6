package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/loopmark/internal/keyseq"
	"github.com/llehouerou/loopmark/internal/playback"
	"github.com/llehouerou/loopmark/internal/player"
	"github.com/llehouerou/loopmark/internal/ui/confirm"
	"github.com/llehouerou/loopmark/internal/ui/helpbindings"
)

// DefaultPollInterval is the position poll period.
const DefaultPollInterval = 100 * time.Millisecond

// KeybindsWatcher reports edits of the keybinds file.
type KeybindsWatcher interface {
	Changes() <-chan struct{}
}

// Options tunes the shell. Zero values pick the defaults.
type Options struct {
	PollInterval time.Duration
	// Watcher is optional; without it the keybinds file is only read at
	// startup.
	Watcher KeybindsWatcher
}

// Model is the bubbletea model of the bookmark player.
type Model struct {
	player  player.Interface
	sub     *playback.Subscription
	watcher KeybindsWatcher
	log     zerolog.Logger
	poll    time.Duration

	confirm  confirm.Model
	help     helpbindings.Model
	helpOpen bool

	width, height int

	status        string
	statusErr     bool
	statusVersion int

	// sticky holds modifiers armed with Tab for the next chord, for
	// terminals that cannot report them (Ctrl+digit).
	sticky        keyseq.Modifier
	stickyVersion int

	quitting bool
}

// pendingOp is the confirm popup context: the held player operation and
// whether the shell exits once it ran.
type pendingOp struct {
	pending *player.Pending
	quit    bool
}

// New creates the model around p. It subscribes to p's events at once.
func New(p player.Interface, log zerolog.Logger, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return Model{
		player:  p,
		sub:     p.Subscribe(),
		watcher: opts.Watcher,
		log:     log.With().Str("component", "app").Logger(),
		poll:    opts.PollInterval,
		confirm: confirm.New(),
		help:    helpbindings.New(),
	}
}

// Init starts the poll and the event watchers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(m.poll),
		m.WatchServiceEvents(),
		m.WatchKeybindsFile(),
	)
}

// Status returns the current status line text and whether it reports an
// error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// Sticky returns the armed sticky modifiers.
func (m Model) Sticky() keyseq.Modifier {
	return m.sticky
}
