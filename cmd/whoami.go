package main

import (
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAuthClient()
		if err != nil {
			return err
		}

		profile, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("Username:  %s\n", profile.Username)
		cmd.Printf("Email:     %s\n", profile.Email)
		cmd.Printf("Role:      %s\n", profile.UserType)
		cmd.Printf("Joined:    %s\n", profile.DateJoined.Format("Jan 2, 2006"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
