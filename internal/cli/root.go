package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCmd wires the bensine subcommands. Running with no subcommand serves the API.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bensine",
		Short:         "Bensine - workshop CRM for customers, vehicles and part requests",
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	return rootCmd
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
