package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simoilconte/Bensine/internal/app"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply pending goose migrations to the postgres database.

Only the POSTGRES_* and MIGRATION_DIRECTORY variables are read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := app.Migrate(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}
}
