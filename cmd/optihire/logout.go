package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	// The local session is cleared regardless of whether the server
	// revocation succeeds.
	if err := env.auth.SignOut(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: server sign-out failed: %v\n", friendlyError(err))
	}
	fmt.Fprintln(os.Stdout, "Signed out.")
	return nil
}
