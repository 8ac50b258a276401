package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/api"
	"github.com/workspace-africa/teamctl/internal/config"
	"github.com/workspace-africa/teamctl/internal/keychain"
	"github.com/workspace-africa/teamctl/internal/session"
)

const version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:           "teamctl",
	Short:         "Workspace Africa team admin console",
	Long:          "Manage your Workspace Africa team from the terminal: members, invitations, billing and organization settings.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// keychainFactory allows injecting a mock keychain in tests
var keychainFactory func() keychain.Keychain = func() keychain.Keychain {
	return keychain.NewSystemKeychain()
}

// newAuthClient wires config, keychain and session into an API client
func newAuthClient() (*api.AuthClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	store := session.NewStore(keychainFactory())
	client := api.NewAuthClient(cfg.Server.URL, store)
	if cfg.Logging.Level == "debug" {
		client.Debug(log.New(os.Stderr, "", 0))
	}
	return client, nil
}

// jsonOutput reports whether listings should print JSON instead of tables
func jsonOutput() bool {
	cfg, err := config.Load()
	if err != nil {
		return false
	}
	return cfg.Output.Format == "json"
}

// renderJSON prints a listing in the configured json output format
func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm asks before a destructive operation. Anything other than an
// explicit yes declines.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// renderSetupRequired is the shared screen for the "no team yet" state
func renderSetupRequired(cmd *cobra.Command) {
	cmd.Println("Team Setup Required")
	cmd.Println()
	cmd.Println("No team is associated with this account yet.")
	cmd.Println("Run 'teamctl billing subscribe' to choose a plan and set up your team,")
	cmd.Println("then re-run this command.")
}

// newTable returns a tab writer on the command's stdout
func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}
