package main

import (
	"fmt"
	"os"

	"github.com/jonathan/optihire/internal/auth"
	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new OptiHire account",
	RunE:  runSignup,
}

var (
	signupEmail    string
	signupPassword string
)

func init() {
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Account email address")
	signupCmd.Flags().StringVarP(&signupPassword, "password", "p", "", "Account password (min 8 characters)")

	signupCmd.MarkFlagRequired("email")
	signupCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	session, err := env.auth.SignUp(cmd.Context(), auth.Credentials{
		Email:    signupEmail,
		Password: signupPassword,
	})
	if err != nil {
		return friendlyError(err)
	}

	if session.AccessToken == "" {
		fmt.Fprintln(os.Stdout, "Account created. Check your email to confirm, then run 'optihire login'.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Account created and signed in as %s\n", session.User.Email)
	return nil
}
