// Package postgres starts a throwaway PostgreSQL with the schema applied.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/simoilconte/Bensine/platform/db/migrator"
	"github.com/simoilconte/Bensine/platform/logger"
	bctestcontainers "github.com/simoilconte/Bensine/platform/testcontainers"
)

const startupTimeout = 1 * time.Minute

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type Config struct {
	ImageName     string
	Database      string
	Username      string
	Password      string
	MigrationsDir string
	Logger        Logger
}

type Option func(*Config)

func WithImageName(image string) Option {
	return func(c *Config) {
		if image != "" {
			c.ImageName = image
		}
	}
}

// WithMigrations applies the goose migrations in dir once the database is up.
func WithMigrations(dir string) Option {
	return func(c *Config) {
		c.MigrationsDir = dir
	}
}

func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

type Container struct {
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	dsn       string
	cfg       *Config
}

func NewContainer(ctx context.Context, opts ...Option) (*Container, error) {
	cfg := &Config{
		ImageName: bctestcontainers.PostgresImage,
		Database:  "bensine_test",
		Username:  "bensine",
		Password:  "bensine",
		Logger:    logger.NoopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	container, err := tcpostgres.Run(ctx, cfg.ImageName,
		tcpostgres.WithDatabase(cfg.Database),
		tcpostgres.WithUsername(cfg.Username),
		tcpostgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	success := false
	defer func() {
		if !success {
			if err := container.Terminate(ctx); err != nil {
				cfg.Logger.Error(ctx, "failed to terminate postgres container", logger.ErrorF(err))
			}
		}
	}()

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if cfg.MigrationsDir != "" {
		if err := migrator.NewMigrator(stdlib.OpenDBFromPool(pool), cfg.MigrationsDir).Up(); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}

	cfg.Logger.Info(ctx, "postgres container started", logger.String("database", cfg.Database))
	success = true

	return &Container{
		container: container,
		pool:      pool,
		dsn:       dsn,
		cfg:       cfg,
	}, nil
}

func (c *Container) Pool() *pgxpool.Pool {
	return c.pool
}

func (c *Container) DSN() string {
	return c.dsn
}

// Truncate empties tables and resets their identities.
func (c *Container) Truncate(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(tables))
	for _, t := range tables {
		quoted = append(quoted, pgx.Identifier{t}.Sanitize())
	}

	_, err := c.pool.Exec(ctx, "TRUNCATE TABLE "+strings.Join(quoted, ", ")+" RESTART IDENTITY CASCADE")
	return err
}

func (c *Container) Terminate(ctx context.Context) error {
	c.pool.Close()

	if err := c.container.Terminate(ctx); err != nil {
		c.cfg.Logger.Error(ctx, "failed to terminate postgres container", logger.ErrorF(err))
		return err
	}

	c.cfg.Logger.Info(ctx, "postgres container terminated")
	return nil
}
