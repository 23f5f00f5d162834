package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/simoilconte/Bensine/internal/config"
	"github.com/simoilconte/Bensine/platform/db/migrator"
	"github.com/simoilconte/Bensine/platform/logger"
)

// Migrate applies pending migrations and reports the resulting schema version.
// Only the postgres block of the environment is read.
func Migrate(ctx context.Context) (int64, error) {
	dbCfg, err := config.LoadDatabaseOnly()
	if err != nil {
		return 0, err
	}

	db, err := sql.Open("pgx", dbCfg.DSN())
	if err != nil {
		return 0, fmt.Errorf("open db: %w", err)
	}

	m := migrator.NewMigrator(db, dbCfg.MigrationDirectory())
	defer func() {
		if cerr := m.Close(); cerr != nil {
			logger.Error(ctx, "failed to close migrator db", logger.ErrorF(cerr))
		}
	}()

	if err := m.UpContext(ctx); err != nil {
		return 0, err
	}

	return m.Version(ctx)
}
