package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var draftAutosaveCmd = &cobra.Command{
	Use:   "autosave [on|off]",
	Short: "Show or change the autosave setting",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDraftAutosave,
}

func init() {
	draftCmd.AddCommand(draftAutosaveCmd)
}

func runDraftAutosave(cmd *cobra.Command, args []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	engine := openEngine(env)
	defer engine.Close()

	if len(args) == 0 {
		state := "off"
		if engine.AutosaveEnabled() {
			state = "on"
		}
		fmt.Fprintf(os.Stdout, "Autosave is %s.\n", state)
		return nil
	}

	switch args[0] {
	case "on":
		if err := engine.SetAutosaveEnabled(true); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Autosave enabled.")
	case "off":
		if err := engine.SetAutosaveEnabled(false); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Autosave disabled; drafts persist only on command exit.")
	default:
		return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
	}
	return nil
}
