package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the teamctl version, optionally checking compatibility against the configured backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Printf("teamctl version %s\n", version)

		if !versionCheck {
			return nil
		}

		client, err := newAuthClient()
		if err != nil {
			return err
		}
		health, err := client.Health(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("backend: %s (%s)\n", health.Service, health.Status)
		if health.MinClientVersion == "" {
			return nil
		}
		if semver.Compare("v"+version, "v"+health.MinClientVersion) < 0 {
			return fmt.Errorf("backend requires teamctl >= %s, please upgrade", health.MinClientVersion)
		}
		cmd.Printf("client is compatible (backend requires >= %s)\n", health.MinClientVersion)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check compatibility with the configured backend")
	rootCmd.AddCommand(versionCmd)
}
