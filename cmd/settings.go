package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/api"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage organization settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show organization settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update an organization setting",
	Long:  "Update an organization setting. Keys: name, contact-email, billing-address.",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}
	return renderSettings(cmd, client)
}

func renderSettings(cmd *cobra.Command, client *api.AuthClient) error {
	settings, err := client.Settings(cmd.Context())
	if err != nil {
		if errors.Is(err, api.ErrTeamSetupRequired) {
			renderSetupRequired(cmd)
			return nil
		}
		return err
	}

	cmd.Printf("Organization:    %s\n", settings.Name)
	cmd.Printf("Contact email:   %s\n", settings.ContactEmail)
	cmd.Printf("Billing address: %s\n", settings.BillingAddress)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	client, err := newAuthClient()
	if err != nil {
		return err
	}

	settings, err := client.Settings(cmd.Context())
	if err != nil {
		if errors.Is(err, api.ErrTeamSetupRequired) {
			renderSetupRequired(cmd)
			return nil
		}
		return err
	}

	switch key {
	case "name":
		settings.Name = value
	case "contact-email":
		settings.ContactEmail = value
	case "billing-address":
		settings.BillingAddress = value
	default:
		return fmt.Errorf("unknown setting: %s (valid: name, contact-email, billing-address)", key)
	}

	if err := client.UpdateSettings(cmd.Context(), settings); err != nil {
		return err
	}

	cmd.Printf("Updated %s.\n", key)
	cmd.Println()
	return renderSettings(cmd, client)
}
