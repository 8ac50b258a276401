package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	signupEmail    string
	signupUsername string
	signupPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a team admin account",
	RunE:  runSignup,
}

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupUsername, "username", "", "Username")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password (will prompt if not provided)")
	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command, args []string) error {
	if signupEmail == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &signupEmail); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}
	if signupUsername == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Username: ")
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &signupUsername); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}
	if signupPassword == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		signupPassword = string(passwordBytes)
	}

	client, err := newAuthClient()
	if err != nil {
		return err
	}

	if err := client.Register(cmd.Context(), signupEmail, signupUsername, signupPassword); err != nil {
		return err
	}

	cmd.Println("Account created. Run 'teamctl login' to get started.")

	signupEmail = ""
	signupUsername = ""
	signupPassword = ""

	return nil
}
