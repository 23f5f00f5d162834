package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/logger"
)

const keyPrefix = "bensine:session:"

type Store interface {
	Create(ctx context.Context, s *model.Session) error
	SessionByToken(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
}

type cachedSession struct {
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type cache struct {
	next Store
	rdb  redis.UniversalClient
	ttl  time.Duration
	now  func() time.Time
}

// NewCachedRepository fronts a session store with redis. Redis failures fall through to next.
func NewCachedRepository(next Store, rdb redis.UniversalClient, ttl time.Duration) *cache {
	return &cache{next: next, rdb: rdb, ttl: ttl, now: time.Now}
}

func (c *cache) Create(ctx context.Context, s *model.Session) error {
	if err := c.next.Create(ctx, s); err != nil {
		return err
	}
	c.put(ctx, s)
	return nil
}

func (c *cache) SessionByToken(ctx context.Context, token string) (*model.Session, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+token).Bytes()
	switch {
	case err == nil:
		var cs cachedSession
		if err := json.Unmarshal(raw, &cs); err == nil {
			return &model.Session{Token: token, UserID: cs.UserID, ExpiresAt: cs.ExpiresAt, CreatedAt: cs.CreatedAt}, nil
		}
		logger.Warn(ctx, "session cache: corrupt entry", logger.String("token_prefix", tokenPrefix(token)))
	case !errors.Is(err, redis.Nil):
		logger.Warn(ctx, "session cache: get failed", logger.ErrorF(err))
	}

	s, err := c.next.SessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	c.put(ctx, s)

	return s, nil
}

func (c *cache) Delete(ctx context.Context, token string) error {
	if err := c.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		logger.Warn(ctx, "session cache: evict failed", logger.ErrorF(err))
	}
	return c.next.Delete(ctx, token)
}

func (c *cache) put(ctx context.Context, s *model.Session) {
	ttl := c.ttl
	if left := s.ExpiresAt.Sub(c.now()); left < ttl {
		ttl = left
	}
	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(cachedSession{UserID: s.UserID, ExpiresAt: s.ExpiresAt, CreatedAt: s.CreatedAt})
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+s.Token, raw, ttl).Err(); err != nil {
		logger.Warn(ctx, "session cache: set failed", logger.ErrorF(err))
	}
}

func tokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
