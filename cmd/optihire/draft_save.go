package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/optihire/internal/builder"
	"github.com/spf13/cobra"
)

var draftSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Commit the draft to the backend",
	Long:  "Validate the draft and push it to the backend: a new version when the draft was started fresh, an update when it was started from an existing resume. The local draft is cleared on success.",
	RunE:  runDraftSave,
}

func init() {
	draftCmd.AddCommand(draftSaveCmd)
}

func runDraftSave(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	engine, err := openExistingDraft(env)
	if err != nil {
		return err
	}

	user, err := env.auth.User(cmd.Context())
	if err != nil {
		return friendlyError(err)
	}

	saved, err := engine.Commit(cmd.Context(), env.api, user.ID)
	if err != nil {
		var verr *builder.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("draft is not ready to save: %s", verr.Message)
		}
		return friendlyError(err)
	}

	fmt.Fprintf(os.Stdout, "Saved %q (%s)\n", saved.VersionName, saved.ID)
	return nil
}
