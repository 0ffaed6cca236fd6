package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/loopmark/internal/cli"
)

var (
	recentMax    int
	recentForget string
)

const defaultRecentMax = 20

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened videos",
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)

	recentCmd.Flags().IntVar(&recentMax, "max", defaultRecentMax, "maximum entries to show")
	recentCmd.Flags().StringVar(&recentForget, "forget", "", "remove a video from the list")
}

func runRecent(cmd *cobra.Command, _ []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}
	if recentForget != "" {
		path, err := filepath.Abs(recentForget)
		if err != nil {
			return err
		}
		if err := a.State.ForgetVideo(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s\n", path)
		return nil
	}

	videos, err := a.State.ListRecent(recentMax)
	if err != nil {
		return err
	}
	return cli.PrintRecent(cmd.OutOrStdout(), videos, time.Now())
}
