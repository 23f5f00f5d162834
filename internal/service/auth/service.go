package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/logger"
)

const tokenBytes = 32

type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	SessionByToken(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (uuid.UUID, error)
	UserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	sessions       SessionRepository
	users          UserRepository
	tx             TxManager
	sessionTTL     time.Duration
	bcryptCost     int
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration

	now      func() time.Time
	newToken func() (string, error)
}

func NewAuthService(
	sessions SessionRepository,
	users UserRepository,
	tx TxManager,
	sessionTTL time.Duration,
	bcryptCost int,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		sessions:       sessions,
		users:          users,
		tx:             tx,
		sessionTTL:     sessionTTL,
		bcryptCost:     bcryptCost,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
		now:            time.Now,
		newToken:       randomToken,
	}
}

// Resolve maps a session token to its user. Any miss, expiry or store failure yields nil.
// Expired sessions are left in place.
func (svc *service) Resolve(ctx context.Context, token string) *model.User {
	if token == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	s, err := svc.sessions.SessionByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, model.ErrSessionNotFound) {
			logger.Error(ctx, "repository session by token", logger.ErrorF(err))
		}
		return nil
	}

	if s.Expired(svc.now()) {
		return nil
	}

	u, err := svc.users.UserByID(ctx, s.UserID)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			logger.Error(ctx, "repository user by id",
				logger.String("user_id", s.UserID.String()),
				logger.ErrorF(err),
			)
		}
		return nil
	}

	return u
}

func (svc *service) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	const op string = "auth.service.SignIn"

	email = model.NormalizeEmail(email)
	log := logger.With(logger.String("email", email))

	rctx, rcancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rcancel()

	u, err := svc.users.UserByEmail(rctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			log.Info(ctx, "sign in: unknown email")
			return nil, fmt.Errorf("%s: %w", op, model.ErrInvalidCredentials)
		}
		log.Error(ctx, "repository user by email", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Info(ctx, "sign in: wrong password")
		return nil, fmt.Errorf("%s: %w", op, model.ErrInvalidCredentials)
	}

	wctx, wcancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wcancel()

	s, err := svc.createSession(wctx, u.ID)
	if err != nil {
		log.Error(ctx, "create session", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (svc *service) SignUp(ctx context.Context, params model.SignUpParams) (*model.Session, error) {
	const op string = "auth.service.SignUp"

	email := model.NormalizeEmail(params.Email)
	name := strings.TrimSpace(params.Name)
	log := logger.With(logger.String("email", email))

	if email == "" || name == "" || params.Password == "" {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("email, name and password are required"))
	}

	role := model.RoleStaff
	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, fmt.Errorf("%s: %w", op, model.Invalid("unknown role %q", *params.Role))
		}
		role = *params.Role
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), svc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("password: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var s *model.Session
	err = svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := svc.users.UserByEmail(ctx, email); err == nil {
			return model.ErrEmailTaken
		} else if !errors.Is(err, model.ErrUserNotFound) {
			return err
		}

		id, err := svc.users.Create(ctx, &model.User{
			Email:        email,
			Name:         name,
			Role:         role,
			PasswordHash: string(hash),
		})
		if err != nil {
			return err
		}

		s, err = svc.createSession(ctx, id)
		return err
	})
	if err != nil {
		log.Error(ctx, "sign up", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "👤 user signed up", logger.String("role", string(role)))
	return s, nil
}

// SignOut never fails the caller; store errors are only logged.
func (svc *service) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.sessions.Delete(ctx, token); err != nil {
		logger.Warn(ctx, "repository delete session", logger.ErrorF(err))
	}
}

func (svc *service) createSession(ctx context.Context, userID uuid.UUID) (*model.Session, error) {
	token, err := svc.newToken()
	if err != nil {
		return nil, err
	}

	s := &model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: svc.now().Add(svc.sessionTTL),
	}
	if err := svc.sessions.Create(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

func randomToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashPassword is used by the seed command so fixtures share the service's hashing.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
