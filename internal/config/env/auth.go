package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type authEnv struct {
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"168h"`
	BcryptCost int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

type auth struct {
	raw authEnv
}

func NewAuthConfig() (*auth, error) {
	var raw authEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &auth{raw: raw}, nil
}

func (cfg *auth) SessionTTL() time.Duration { return cfg.raw.SessionTTL }
func (cfg *auth) BcryptCost() int           { return cfg.raw.BcryptCost }
