package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Send a password recovery email",
	RunE:  runResetPassword,
}

var updatePasswordCmd = &cobra.Command{
	Use:   "update-password",
	Short: "Change the signed-in user's password",
	RunE:  runUpdatePassword,
}

var (
	resetEmail  string
	newPassword string
)

func init() {
	resetPasswordCmd.Flags().StringVarP(&resetEmail, "email", "e", "", "Account email address")
	resetPasswordCmd.MarkFlagRequired("email")

	updatePasswordCmd.Flags().StringVarP(&newPassword, "password", "p", "", "New password (min 8 characters)")
	updatePasswordCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(updatePasswordCmd)
}

func runResetPassword(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	if err := env.auth.ResetPassword(cmd.Context(), resetEmail); err != nil {
		return friendlyError(err)
	}
	fmt.Fprintf(os.Stdout, "If an account exists for %s, a recovery email is on its way.\n", resetEmail)
	return nil
}

func runUpdatePassword(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	if err := env.auth.UpdatePassword(cmd.Context(), newPassword); err != nil {
		return friendlyError(err)
	}
	fmt.Fprintln(os.Stdout, "Password updated.")
	return nil
}
