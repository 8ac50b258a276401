package main

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Long:  "Logout from Workspace Africa by removing the stored session tokens from the keychain.",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}

	if err := client.Logout(); err != nil {
		return err
	}

	cmd.Println("Logged out. Session tokens removed.")
	return nil
}
