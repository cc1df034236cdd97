package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show stored settings",
	Long: `Show or change the settings kept in the scores database.

Keys:
  theme          system, light or dark
  ambient_theme  true/false - dim the board with an ambient light sensor
  tilt_input     true/false - accept tilt input where available
  difficulty     easy, normal, hard or fixed (used when --difficulty is not given)

Examples:
  pacman settings
  pacman settings get theme
  pacman settings set difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.LoadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s = %s\n", storage.KeyTheme, st.Theme)
	fmt.Fprintf(out, "%s = %t\n", storage.KeyAmbientTheme, st.AmbientTheme)
	fmt.Fprintf(out, "%s = %t\n", storage.KeyTiltInput, st.TiltInput)
	fmt.Fprintf(out, "%s = %s\n", storage.KeyDifficulty, st.Difficulty)
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.LoadSettings()
	if err != nil {
		return err
	}

	values := map[string]string{
		storage.KeyTheme:        st.Theme,
		storage.KeyAmbientTheme: fmt.Sprint(st.AmbientTheme),
		storage.KeyTiltInput:    fmt.Sprint(st.TiltInput),
		storage.KeyDifficulty:   st.Difficulty,
	}
	v, ok := values[args[0]]
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ApplySetting(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
	return nil
}
