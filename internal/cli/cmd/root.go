// Package cmd provides Cobra CLI commands for loopmark.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/loopmark/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "loopmark",
		Short: "Bookmark positions and loop ranges while practicing along a video",
		Long: `loopmark - a keyboard-driven practice player.

Save up to twelve playback states per group, four groups per video.
A state remembers a position, an optional loop end and a speed, and is
recalled with a single key. Groups are stored next to the video.

Use 'loopmark play <video>' to start, or explore the subcommands to
manage keybinds and saved states.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}
