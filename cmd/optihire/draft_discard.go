package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var draftDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard the draft in progress",
	RunE:  runDraftDiscard,
}

var discardYes bool

func init() {
	draftDiscardCmd.Flags().BoolVarP(&discardYes, "yes", "y", false, "Skip the confirmation prompt")

	draftCmd.AddCommand(draftDiscardCmd)
}

func runDraftDiscard(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	engine := openEngine(env)

	// A corrupt envelope loads with an error but must still be
	// discardable; only a missing one makes this command a no-op.
	if pending, err := engine.LoadPending(); err == nil && pending == nil {
		return fmt.Errorf("no draft in progress")
	}

	if !discardYes {
		fmt.Fprint(os.Stdout, "Discard the draft in progress? This cannot be undone. [y/N] ")
		var answer string
		fmt.Fscanln(os.Stdin, &answer)
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return nil
		}
	}

	if err := engine.Discard(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Draft discarded.")
	return nil
}
