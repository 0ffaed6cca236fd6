package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/loopmark/internal/cli"
	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/keyseq"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show and edit keybinds",
	Long: `List the keybind table, or change it from the command line.

The table lives in a text file that can also be edited by hand:
one "ActionID=Chord1,Chord2" line per action.`,
	RunE: runKeysList,
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keybinds",
	RunE:  runKeysList,
}

var keysResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default keybinds",
	RunE:  runKeysReset,
}

var keysSetCmd = &cobra.Command{
	Use:   "set <action-id> [chord...]",
	Short: "Rebind an action",
	Long: `Replace the chords of an action. Chords use the portable form,
e.g. "Ctrl+Right", "Space", "F5" or "=". Give no chord to unbind.

Examples:
  loopmark keys set CycleLoopMode F9 L
  loopmark keys set Stop`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeysSet,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysListCmd, keysResetCmd, keysSetCmd)
}

func openKeys() (*keymap.Registry, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a.OpenKeys()
}

func runKeysList(cmd *cobra.Command, _ []string) error {
	keys, err := openKeys()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", keys.Path())
	return cli.PrintKeys(cmd.OutOrStdout(), keys)
}

func runKeysReset(cmd *cobra.Command, _ []string) error {
	keys, err := openKeys()
	if err != nil {
		return err
	}
	keys.ResetToDefaults()
	if err := keys.Save(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Keybinds reset to defaults")
	return nil
}

func runKeysSet(cmd *cobra.Command, args []string) error {
	action, ok := keymap.ActionFromID(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", keymap.ErrUnknownAction, args[0])
	}
	chords := make([]keyseq.Chord, 0, len(args)-1)
	for _, text := range args[1:] {
		c, err := keyseq.Parse(text)
		if err != nil {
			return fmt.Errorf("parse %q: %w", text, err)
		}
		chords = append(chords, c)
	}

	keys, err := openKeys()
	if err != nil {
		return err
	}
	if err := keys.SetBindings(action, chords); err != nil {
		return err
	}
	if err := keys.Save(); err != nil {
		return err
	}

	names := make([]string, len(chords))
	for i, c := range chords {
		names[i] = c.String()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", action, strings.Join(names, ", "))
	return nil
}
