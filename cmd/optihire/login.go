package main

import (
	"fmt"
	"os"

	"github.com/jonathan/optihire/internal/auth"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session locally",
	RunE:  runLogin,
}

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email address")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")

	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	session, err := env.auth.SignIn(cmd.Context(), auth.Credentials{
		Email:    loginEmail,
		Password: loginPassword,
	})
	if err != nil {
		return friendlyError(err)
	}

	fmt.Fprintf(os.Stdout, "Signed in as %s\n", session.User.Email)
	return nil
}
