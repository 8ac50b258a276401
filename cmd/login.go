package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with Workspace Africa",
	Long:  "Login with your team admin account and store the session token securely in the system keychain.",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (will prompt if not provided)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	// Prompt for email if not provided
	if loginEmail == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		_, err := fmt.Fscanln(cmd.InOrStdin(), &loginEmail)
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	// Prompt for password if not provided
	if loginPassword == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout()) // newline after password
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		loginPassword = string(passwordBytes)
	}

	client, err := newAuthClient()
	if err != nil {
		return err
	}

	profile, err := client.Login(cmd.Context(), loginEmail, loginPassword)
	if err != nil {
		return err
	}

	cmd.Printf("Login successful. Welcome back, %s!\n", profile.Username)
	cmd.Println("Run 'teamctl dashboard' to see your team.")

	// Reset flags for reuse in tests
	loginEmail = ""
	loginPassword = ""

	return nil
}
