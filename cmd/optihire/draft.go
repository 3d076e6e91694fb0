package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/optihire/internal/draft"
	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Edit a resume version locally before committing it",
	Long:  "Work on a resume version locally. Edits persist to a draft in the data directory so an interrupted session can be recovered, then 'draft save' commits the result to the backend.",
}

func init() {
	rootCmd.AddCommand(draftCmd)
}

// envelopeSchemaPath locates the draft schema used for the warn-only
// structural check on recovery.
var envelopeSchemaPath = filepath.Join("schemas", "draft_envelope.schema.json")

// openEngine builds a draft engine over the environment's store.
func openEngine(env *appEnv) *draft.Engine {
	return draft.NewEngine(env.store, nil, draft.Options{
		Debounce:   env.cfg.AutosaveDebounce(),
		Warn:       os.Stderr,
		SchemaPath: envelopeSchemaPath,
	})
}

// openExistingDraft builds an engine and recovers the pending draft into
// it. Commands that edit or inspect the draft go through here.
func openExistingDraft(env *appEnv) (*draft.Engine, error) {
	engine := openEngine(env)
	pending, err := engine.LoadPending()
	if err != nil {
		return nil, fmt.Errorf("%w; run 'optihire draft discard' to remove it", err)
	}
	if pending == nil {
		return nil, fmt.Errorf("no draft in progress; run 'optihire draft start' first")
	}
	engine.Recover(pending)
	return engine, nil
}
