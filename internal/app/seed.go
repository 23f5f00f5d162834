package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/simoilconte/Bensine/internal/config"
	"github.com/simoilconte/Bensine/internal/model"
	authsvc "github.com/simoilconte/Bensine/internal/service/auth"
	"github.com/simoilconte/Bensine/platform/closer"
	"github.com/simoilconte/Bensine/platform/logger"
)

type SeedFile struct {
	Users     []SeedUser     `yaml:"users"`
	FuelTypes []string       `yaml:"fuelTypes"`
	Suppliers []SeedSupplier `yaml:"suppliers"`
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type SeedSupplier struct {
	CompanyName string  `yaml:"companyName"`
	ContactName *string `yaml:"contactName"`
	Phone       *string `yaml:"phone"`
	Email       *string `yaml:"email"`
	Address     *string `yaml:"address"`
}

func ParseSeed(r io.Reader) (*SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	for i, u := range f.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("seed user #%d: email and password are required", i+1)
		}
		if !model.Role(u.Role).Valid() {
			return nil, fmt.Errorf("seed user %s: unknown role %q", u.Email, u.Role)
		}
	}
	if len(f.FuelTypes)+len(f.Suppliers) > 0 && !lo.ContainsBy(f.Users, func(u SeedUser) bool {
		return model.Role(u.Role) == model.RoleAdmin
	}) {
		return nil, fmt.Errorf("seeding the catalog needs an ADMIN user")
	}

	return &f, nil
}

// Seed loads fixtures into an empty database. It does nothing once any user exists.
func Seed(ctx context.Context, path string) (err error) {
	a := &app{}
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initTables,
	}
	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	defer func() {
		sdCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.C().Server.ShutdownTimeout())
		defer cancel()
		if cerr := closer.CloseAll(sdCtx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	f, err := ParseSeed(file)
	if err != nil {
		return err
	}

	return a.di.seed(ctx, f)
}

func (d *di) seed(ctx context.Context, f *SeedFile) error {
	log := logger.With(logger.String("component", "seed"))

	existing, err := d.UserRepository(ctx).List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(existing) > 0 {
		log.Info(ctx, "🌱 database already seeded, skipping", logger.Int("users", len(existing)))
		return nil
	}

	var admin *model.User
	for _, u := range f.Users {
		hash, err := authsvc.HashPassword(u.Password, config.C().Auth.BcryptCost())
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}

		user := &model.User{
			Email:        model.NormalizeEmail(u.Email),
			Name:         u.Name,
			Role:         model.Role(u.Role),
			PasswordHash: hash,
		}
		id, err := d.UserRepository(ctx).Create(ctx, user)
		if err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		user.ID = id

		if admin == nil && user.Role == model.RoleAdmin {
			admin = user
		}
		log.Info(ctx, "🌱 user created", logger.String("email", user.Email), logger.String("role", u.Role))
	}

	for i, name := range f.FuelTypes {
		if _, err := d.FuelTypeService(ctx).Create(ctx, admin, model.CreateFuelTypeParams{
			Name:  name,
			Order: lo.ToPtr(i),
		}); err != nil {
			return fmt.Errorf("create fuel type %s: %w", name, err)
		}
	}

	for _, s := range f.Suppliers {
		if _, err := d.SupplierService(ctx).Create(ctx, admin, model.CreateSupplierParams{
			CompanyName: s.CompanyName,
			ContactName: s.ContactName,
			Phone:       s.Phone,
			Email:       s.Email,
			Address:     s.Address,
		}); err != nil {
			return fmt.Errorf("create supplier %s: %w", s.CompanyName, err)
		}
	}

	log.Info(ctx, "✅ seed complete",
		logger.Int("users", len(f.Users)),
		logger.Int("fuel_types", len(f.FuelTypes)),
		logger.Int("suppliers", len(f.Suppliers)),
	)
	return nil
}
