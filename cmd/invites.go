package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/api"
)

var revokeInviteYes bool

var invitesCmd = &cobra.Command{
	Use:   "invites",
	Short: "Manage team invitations",
}

var invitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invitations",
	RunE:  runInvitesList,
}

var invitesSendCmd = &cobra.Command{
	Use:   "send <email>",
	Short: "Invite a new member by email",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvitesSend,
}

var invitesRevokeCmd = &cobra.Command{
	Use:   "revoke <invite-id>",
	Short: "Revoke a pending invitation",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvitesRevoke,
}

func init() {
	invitesRevokeCmd.Flags().BoolVarP(&revokeInviteYes, "yes", "y", false, "Skip the confirmation prompt")
	invitesCmd.AddCommand(invitesListCmd)
	invitesCmd.AddCommand(invitesSendCmd)
	invitesCmd.AddCommand(invitesRevokeCmd)
	rootCmd.AddCommand(invitesCmd)
}

func runInvitesList(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}
	return renderInvites(cmd, client)
}

func renderInvites(cmd *cobra.Command, client *api.AuthClient) error {
	invites, err := client.Invites(cmd.Context())
	if err != nil {
		if errors.Is(err, api.ErrTeamSetupRequired) {
			renderSetupRequired(cmd)
			return nil
		}
		return err
	}

	if jsonOutput() {
		return renderJSON(cmd, invites)
	}

	pending := api.PendingCount(invites)
	cmd.Printf("Invitations: %d total, %d pending\n", len(invites), pending)

	if len(invites) == 0 {
		return nil
	}

	cmd.Println()
	w := newTable(cmd)
	fmt.Fprintln(w, "ID\tEMAIL\tSTATUS\tSENT BY\tCREATED")
	for _, inv := range invites {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.Email, inv.Status, inv.SentBy, inv.CreatedAt.Format("Jan 2, 2006"))
	}
	return w.Flush()
}

func runInvitesSend(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}

	invite, err := client.SendInvite(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Invitation sent to %s.\n", invite.Email)
	cmd.Println()
	return renderInvites(cmd, client)
}

func runInvitesRevoke(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid invite id: %s", args[0])
	}

	// The confirmation gate comes before any network traffic
	if !revokeInviteYes && !confirm(cmd, fmt.Sprintf("Revoke invitation %d?", id)) {
		cmd.Println("Aborted.")
		return nil
	}

	client, err := newAuthClient()
	if err != nil {
		return err
	}

	if err := client.RevokeInvite(cmd.Context(), id); err != nil {
		return err
	}

	cmd.Println("Invitation revoked.")
	cmd.Println()
	return renderInvites(cmd, client)
}
