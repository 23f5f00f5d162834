package mongo

import (
	"context"

	"github.com/simoilconte/Bensine/platform/logger"
	"github.com/simoilconte/Bensine/platform/testcontainers"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type Config struct {
	ContainerName string
	ImageName     string
	Database      string
	Username      string
	Password      string
	AuthDB        string
	Logger        Logger

	Host string
	Port string
}

func buildConfig(opts ...Option) *Config {
	cfg := &Config{
		ImageName: testcontainers.MongoImage,
		Database:  "bensine_test",
		Username:  "root",
		Password:  "root",
		AuthDB:    "admin",
		Logger:    logger.NoopLogger{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}
