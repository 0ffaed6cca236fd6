package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	appui "github.com/llehouerou/loopmark/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play <video>",
	Short: "Open a video in the practice player",
	Long: `Open a video and start the terminal player.

The last position, the active group and the keybinds are restored.
Edits of the keybinds file are picked up while the player runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(_ *cobra.Command, args []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}

	keys, err := a.OpenKeys()
	if err != nil {
		// The registry still holds the defaults.
		a.Log.Warn().Err(err).Msg("keybinds file could not be rewritten")
	}

	p := a.NewPlayer(keys)
	defer p.Close()
	if _, err := p.Open(args[0]); err != nil {
		return err
	}

	opts := appui.Options{PollInterval: a.Config.GetLoopConfig().PollInterval}
	if keys.Path() != "" {
		w, err := keys.Watch()
		if err != nil {
			a.Log.Warn().Err(err).Msg("keybinds watcher disabled")
		} else {
			defer w.Close()
			opts.Watcher = w
		}
	}

	m := appui.New(p, a.Log, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}
