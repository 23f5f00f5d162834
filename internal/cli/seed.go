package cli

import (
	"github.com/spf13/cobra"

	"github.com/simoilconte/Bensine/internal/app"
)

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users and catalog fixtures into an empty database",
		Long: `Load users, fuel types and suppliers from a YAML file.

The command is a no-op once any user exists, so it is safe to run on every deploy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Seed(cmd.Context(), file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "path to the seed file")

	return cmd
}
