package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/api"
	"github.com/workspace-africa/teamctl/internal/loader"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the team dashboard",
	Long:  "Show the team summary: member count, pending invitations and the current plan.",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}

	var (
		profile *api.Profile
		team    *api.Team
		billing *api.Billing
	)

	group := loader.New(cmd.Context())
	group.Go("profile", func(ctx context.Context) error {
		var err error
		profile, err = client.Me(ctx)
		return err
	})
	group.Go("team", func(ctx context.Context) error {
		var err error
		team, err = client.Dashboard(ctx)
		return err
	})
	group.Go("billing", func(ctx context.Context) error {
		var err error
		billing, err = client.Billing(ctx)
		return err
	})

	if err := group.Wait(); err != nil {
		if errors.Is(err, api.ErrTeamSetupRequired) {
			renderSetupRequired(cmd)
			return nil
		}
		return err
	}

	cmd.Printf("%s\n", team.Name)
	cmd.Printf("Signed in as %s (%s)\n\n", profile.Username, profile.Email)

	planName := "No Plan"
	planStatus := "Setup Required"
	if billing.Subscription != nil {
		planName = billing.Subscription.Plan.Name
		planStatus = "Active"
		if !billing.Subscription.IsActive {
			planStatus = "Inactive"
		}
	}

	cmd.Printf("Members:             %d\n", len(team.Members))
	cmd.Printf("Pending invitations: %d\n", api.PendingCount(team.Invitations))
	cmd.Printf("Plan:                %s (%s)\n", planName, planStatus)
	if billing.Subscription != nil {
		cmd.Printf("Days left:           %d\n", billing.Subscription.DaysLeft(time.Now()))
	}
	if billing.Demo {
		cmd.Println("\nNote: billing figures are demo data.")
	}
	return nil
}
