package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/api"
)

var subscribePlanID int64

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "View the subscription and billing history",
}

var billingShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current plan and invoices",
	RunE:  runBillingShow,
}

var billingSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Provision a subscription for the team",
	RunE:  runBillingSubscribe,
}

func init() {
	billingSubscribeCmd.Flags().Int64Var(&subscribePlanID, "plan", 0, "Plan id (backend default when omitted)")
	billingCmd.AddCommand(billingShowCmd)
	billingCmd.AddCommand(billingSubscribeCmd)
	rootCmd.AddCommand(billingCmd)
}

func runBillingShow(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}
	return renderBilling(cmd, client)
}

func renderBilling(cmd *cobra.Command, client *api.AuthClient) error {
	billing, err := client.Billing(cmd.Context())
	if err != nil {
		if errors.Is(err, api.ErrTeamSetupRequired) {
			renderSetupRequired(cmd)
			return nil
		}
		return err
	}

	if billing.Subscription == nil {
		cmd.Println("No active plan.")
		cmd.Println("Run 'teamctl billing subscribe' to choose one.")
		return nil
	}

	sub := billing.Subscription
	status := "active"
	if !sub.IsActive {
		status = "inactive"
	}
	cmd.Printf("Plan:        %s (%s)\n", sub.Plan.Name, status)
	cmd.Printf("Price:       ₦%d / month\n", sub.Plan.PriceNGN)
	cmd.Printf("Access tier: %s\n", sub.Plan.AccessTier)
	cmd.Printf("Included:    %d workspace days\n", sub.Plan.IncludedDays)
	cmd.Printf("Renews:      %s (%d days left)\n", sub.EndDate.Format("Jan 2, 2006"), sub.DaysLeft(time.Now()))

	if len(billing.Invoices) > 0 {
		cmd.Println()
		w := newTable(cmd)
		fmt.Fprintln(w, "INVOICE\tDATE\tAMOUNT\tSTATUS")
		for _, inv := range billing.Invoices {
			fmt.Fprintf(w, "%d\t%s\t₦%d\t%s\n", inv.ID, inv.Date.Format("Jan 2, 2006"), inv.AmountNGN, inv.Status)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if billing.Demo {
		cmd.Println("\nNote: billing figures are demo data.")
	}
	return nil
}

func runBillingSubscribe(cmd *cobra.Command, args []string) error {
	client, err := newAuthClient()
	if err != nil {
		return err
	}

	sub, err := client.AddSubscription(cmd.Context(), subscribePlanID)
	if err != nil {
		return err
	}

	cmd.Printf("Subscribed to %s.\n", sub.Plan.Name)
	cmd.Println()
	return renderBilling(cmd, client)
}
