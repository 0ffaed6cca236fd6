package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llehouerou/loopmark/internal/cli"
	"github.com/llehouerou/loopmark/internal/player"
)

var (
	stateGroup int
	stateSlot  int
	stateStart string
	stateEnd   string
	stateSpeed float64
	stateNoEnd bool
	stateClear bool
	stateYes   bool
)

var statesCmd = &cobra.Command{
	Use:   "states <video>",
	Short: "List the saved states of a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatesList,
}

var statesEditCmd = &cobra.Command{
	Use:   "edit <video>",
	Short: "Edit one saved state",
	Long: `Change a slot of a group and save the group file.

Positions are written m:ss, m:ss.mmm, h:mm:ss or as a duration like 90s.

Examples:
  loopmark states edit song.mp4 --group 1 --slot 3 --start 1:05 --end 1:20
  loopmark states edit song.mp4 --slot 3 --speed 0.75
  loopmark states edit song.mp4 --slot 3 --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runStatesEdit,
}

var statesDeleteCmd = &cobra.Command{
	Use:   "delete-group <video>",
	Short: "Delete a saved group and its file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatesDelete,
}

func init() {
	rootCmd.AddCommand(statesCmd)
	statesCmd.AddCommand(statesEditCmd, statesDeleteCmd)

	for _, c := range []*cobra.Command{statesEditCmd, statesDeleteCmd} {
		c.Flags().IntVarP(&stateGroup, "group", "g", 1, "group number (1-4)")
	}
	f := statesEditCmd.Flags()
	f.IntVarP(&stateSlot, "slot", "s", 1, "slot number (1-12)")
	f.StringVar(&stateStart, "start", "", "start position")
	f.StringVar(&stateEnd, "end", "", "loop end position")
	f.Float64Var(&stateSpeed, "speed", 0, "playback speed (0.1-5)")
	f.BoolVar(&stateNoEnd, "no-end", false, "remove the loop range")
	f.BoolVar(&stateClear, "clear", false, "empty the slot")
	statesEditCmd.MarkFlagsMutuallyExclusive("end", "no-end")

	statesDeleteCmd.Flags().BoolVarP(&stateYes, "yes", "y", false, "do not ask for confirmation")
}

func runStatesList(cmd *cobra.Command, args []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}
	video, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	groups, err := cli.LoadGroups(video, a.Log)
	if err != nil {
		return err
	}
	return cli.PrintGroups(cmd.OutOrStdout(), video, groups)
}

func editPlayer() (*player.Player, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	keys, err := a.OpenKeys()
	if err != nil {
		a.Log.Warn().Err(err).Msg("keybinds file could not be rewritten")
	}
	return a.NewPlayer(keys), nil
}

func runStatesEdit(cmd *cobra.Command, args []string) error {
	var e cli.SlotEdit
	if stateStart != "" {
		d, err := cli.ParsePosition(stateStart)
		if err != nil {
			return err
		}
		e.Start = &d
	}
	if stateEnd != "" {
		d, err := cli.ParsePosition(stateEnd)
		if err != nil {
			return err
		}
		e.End = &d
	}
	if cmd.Flags().Changed("speed") {
		e.Speed = &stateSpeed
	}
	e.NoEnd = stateNoEnd
	e.Clear = stateClear

	p, err := editPlayer()
	if err != nil {
		return err
	}
	defer p.Close()

	st, err := cli.EditState(p, args[0], stateGroup-1, stateSlot-1, e)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !st.Valid {
		fmt.Fprintf(out, "Group %d slot %d cleared\n", stateGroup, stateSlot)
		return nil
	}
	fmt.Fprintf(out, "Group %d slot %d: %s", stateGroup, stateSlot, player.FormatPosition(st.Start))
	if st.HasEnd {
		fmt.Fprintf(out, " - %s", player.FormatPosition(st.End))
	}
	fmt.Fprintf(out, " at %.2fx\n", st.Speed)
	return nil
}

func runStatesDelete(cmd *cobra.Command, args []string) error {
	if !stateYes {
		return fmt.Errorf("deleting group %d of %s needs --yes", stateGroup, filepath.Base(args[0]))
	}
	p, err := editPlayer()
	if err != nil {
		return err
	}
	defer p.Close()

	if err := cli.DeleteGroup(p, args[0], stateGroup-1); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Group %d deleted\n", stateGroup)
	return nil
}
