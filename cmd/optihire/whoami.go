package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	user, err := env.auth.User(cmd.Context())
	if err != nil {
		return friendlyError(err)
	}

	fmt.Fprintf(os.Stdout, "Email:   %s\n", user.Email)
	fmt.Fprintf(os.Stdout, "User ID: %s\n", user.ID)
	return nil
}
