package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/db/txmanager"
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewSessionRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, s *model.Session) error {
	const op = "session.repository.Create"

	sqlStr, args, err := r.sb.
		Insert("sessions").
		Columns("token", "user_id", "expires_at").
		Values(s.Token, s.UserID, s.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&s.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) SessionByToken(ctx context.Context, token string) (*model.Session, error) {
	const op = "session.repository.SessionByToken"

	sqlStr, args, err := r.sb.
		Select("token", "user_id", "expires_at", "created_at").
		From("sessions").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var s model.Session
	err = txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(
		&s.Token,
		&s.UserID,
		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &s, nil
}

func (r *repository) Delete(ctx context.Context, token string) error {
	const op = "session.repository.Delete"

	sqlStr, args, err := r.sb.Delete("sessions").Where(sq.Eq{"token": token}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := txmanager.From(ctx, r.pool).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
