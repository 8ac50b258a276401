package main

import (
	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/demo"
)

var demoAddr string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the in-memory demo backend",
	Long:  "Serve the Workspace Africa API from memory with seeded demo data. Point the console at it with 'teamctl config set server.url http://localhost:8090'.",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := demo.NewServer()
		return srv.ListenAndServe(demoAddr)
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoAddr, "addr", ":8090", "Address to listen on")
	rootCmd.AddCommand(demoCmd)
}
