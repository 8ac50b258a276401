package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/api"
	"github.com/workspace-africa/teamctl/internal/loader"
)

var removeMemberYes bool

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Manage team members",
}

var membersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team members",
	RunE:  runMembersList,
}

var membersRemoveCmd = &cobra.Command{
	Use:   "remove <member-id>",
	Short: "Remove a member from the team",
	Args:  cobra.ExactArgs(1),
	RunE:  runMembersRemove,
}

func init() {
	membersRemoveCmd.Flags().BoolVarP(&removeMemberYes, "yes", "y", false, "Skip the confirmation prompt")
	membersCmd.AddCommand(membersListCmd)
	membersCmd.AddCommand(membersRemoveCmd)
	rootCmd.AddCommand(membersCmd)
}

func runMembersList(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}
	return renderMembers(cmd, client)
}

func renderMembers(cmd *cobra.Command, client *api.AuthClient) error {
	var (
		profile *api.Profile
		members []api.Member
	)

	group := loader.New(cmd.Context())
	group.Go("profile", func(ctx context.Context) error {
		var err error
		profile, err = client.Me(ctx)
		return err
	})
	group.Go("members", func(ctx context.Context) error {
		var err error
		members, err = client.Members(ctx)
		return err
	})

	if err := group.Wait(); err != nil {
		if errors.Is(err, api.ErrTeamSetupRequired) {
			renderSetupRequired(cmd)
			return nil
		}
		return err
	}

	if jsonOutput() {
		return renderJSON(cmd, members)
	}

	if len(members) == 0 {
		cmd.Println("No team members yet. Invite members with 'teamctl invites send <email>'.")
		return nil
	}

	cmd.Printf("Active members (%d)\n\n", len(members))
	w := newTable(cmd)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tJOINED")
	for _, m := range members {
		marker := ""
		if profile != nil && m.ID == profile.ID {
			marker = " (you)"
		}
		fmt.Fprintf(w, "%d\t%s%s\t%s\t%s\t%s\n",
			m.ID, m.Username, marker, m.Email, m.UserType, m.DateJoined.Format("Jan 2, 2006"))
	}
	return w.Flush()
}

func runMembersRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid member id: %s", args[0])
	}

	// The confirmation gate comes before any network traffic
	if !removeMemberYes && !confirm(cmd, fmt.Sprintf("Remove member %d from the team?", id)) {
		cmd.Println("Aborted.")
		return nil
	}

	client, err := newAuthClient()
	if err != nil {
		return err
	}

	if err := client.RemoveMember(cmd.Context(), id); err != nil {
		return err
	}

	cmd.Println("Member removed.")
	cmd.Println()

	// Re-read from the backend rather than patching local state
	return renderMembers(cmd, client)
}
