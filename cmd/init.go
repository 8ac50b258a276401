package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create the configuration file and required directories for teamctl",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration already exists at %s\n\nTo reconfigure, either:\n  1. Edit the file directly, or\n  2. Delete it and run 'teamctl init' again, or\n  3. Use 'teamctl config set <key> <value>' to update specific values", configPath)
		}

		cfg := config.Default()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		cmd.Printf("Configuration initialized at %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
