package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "Browse available workspaces",
}

var spacesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAuthClient()
		if err != nil {
			return err
		}

		spaces, err := client.Spaces(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput() {
			return renderJSON(cmd, spaces)
		}

		if len(spaces) == 0 {
			cmd.Println("No workspaces available.")
			return nil
		}

		w := newTable(cmd)
		fmt.Fprintln(w, "ID\tNAME\tADDRESS\tTIER")
		for _, s := range spaces {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.Address, s.AccessTier)
		}
		return w.Flush()
	},
}

func init() {
	spacesCmd.AddCommand(spacesListCmd)
	rootCmd.AddCommand(spacesCmd)
}
