package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/repository/pgutil"
	"github.com/simoilconte/Bensine/platform/db/txmanager"
)

const table = "users"

var columns = []string{"id", "email", "name", "role", "customer_id", "password_hash", "created_at"}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewUserRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, u *model.User) (uuid.UUID, error) {
	const op = "user.repository.Create"

	q := r.sb.
		Insert(table).
		Columns("email", "name", "role", "customer_id", "password_hash").
		Values(u.Email, u.Name, u.Role, u.CustomerID, u.PasswordHash).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if pgutil.IsUniqueViolation(err) {
			return uuid.Nil, model.ErrEmailTaken
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) UserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.one(ctx, "user.repository.UserByID", sq.Eq{"id": id})
}

func (r *repository) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.one(ctx, "user.repository.UserByEmail", sq.Eq{"email": email})
}

func (r *repository) List(ctx context.Context) ([]*model.User, error) {
	return r.many(ctx, "user.repository.List", nil)
}

func (r *repository) UsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	return r.many(ctx, "user.repository.UsersByIDs", sq.Eq{"id": ids})
}

func (r *repository) Count(ctx context.Context) (int, error) {
	const op = "user.repository.Count"

	sqlStr, args, err := r.sb.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var n int
	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *repository) SetRole(ctx context.Context, id uuid.UUID, role model.Role, customerID *uuid.UUID) error {
	const op = "user.repository.SetRole"

	q := r.sb.
		Update(table).
		SetMap(sq.Eq{"role": role, "customer_id": customerID}).
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := txmanager.From(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (r *repository) one(ctx context.Context, op string, where sq.Sqlizer) (*model.User, error) {
	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u, err := scanUser(txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (r *repository) many(ctx context.Context, op string, where sq.Sqlizer) ([]*model.User, error) {
	q := r.sb.Select(columns...).From(table).OrderBy("created_at")
	if where != nil {
		q = q.Where(where)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := txmanager.From(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.CustomerID,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
