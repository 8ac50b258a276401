package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/api"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show workspace usage for the team",
	Long:  "Show check-in totals, workspace days used against the plan, and per-member activity.",
	RunE:  runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}

	analytics, err := client.Analytics(cmd.Context())
	if err != nil {
		if errors.Is(err, api.ErrTeamSetupRequired) {
			renderSetupRequired(cmd)
			return nil
		}
		return err
	}

	if jsonOutput() {
		return renderJSON(cmd, analytics)
	}

	cmd.Printf("Check-ins this month: %d\n", analytics.CheckinsThisMonth)
	if analytics.DaysIncluded > 0 {
		cmd.Printf("Workspace days used:  %d of %d\n", analytics.DaysUsed, analytics.DaysIncluded)
	} else {
		cmd.Printf("Workspace days used:  %d\n", analytics.DaysUsed)
	}
	if analytics.TopSpace != "" {
		cmd.Printf("Most visited space:   %s\n", analytics.TopSpace)
	}

	if len(analytics.MemberActivity) > 0 {
		cmd.Println()
		w := newTable(cmd)
		fmt.Fprintln(w, "MEMBER\tCHECK-INS\tLAST SEEN")
		for _, a := range analytics.MemberActivity {
			fmt.Fprintf(w, "%s\t%d\t%s\n", a.Username, a.Checkins, a.LastSeen.Format("Jan 2, 2006"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if analytics.Demo {
		cmd.Println("\nNote: usage figures are demo data.")
	}
	return nil
}
