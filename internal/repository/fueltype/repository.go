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
	"github.com/simoilconte/Bensine/platform/db/txmanager"
)

const table = "fuel_types"

var columns = []string{"id", "name", "sort_order", "is_active", "created_at"}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewFuelTypeRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, ft *model.FuelType) (uuid.UUID, error) {
	const op = "fueltype.repository.Create"

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns("name", "sort_order", "is_active").
		Values(ft.Name, ft.Order, ft.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) FuelTypeByID(ctx context.Context, id uuid.UUID) (*model.FuelType, error) {
	const op = "fueltype.repository.FuelTypeByID"

	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ft, err := scanFuelType(txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrFuelTypeNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ft, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]*model.FuelType, error) {
	const op = "fueltype.repository.List"

	q := r.sb.Select(columns...).From(table).OrderBy("sort_order", "name")
	if activeOnly {
		q = q.Where(sq.Eq{"is_active": true})
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

	out := make([]*model.FuelType, 0)
	for rows.Next() {
		ft, err := scanFuelType(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	const op = "fueltype.repository.Count"

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

func (r *repository) Update(ctx context.Context, ft *model.FuelType) error {
	return r.exec(ctx, "fueltype.repository.Update", r.sb.
		Update(table).
		SetMap(sq.Eq{"name": ft.Name, "sort_order": ft.Order, "is_active": ft.IsActive}).
		Where(sq.Eq{"id": ft.ID}))
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "fueltype.repository.Deactivate",
		r.sb.Update(table).Set("is_active", false).Where(sq.Eq{"id": id}))
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "fueltype.repository.Delete", r.sb.Delete(table).Where(sq.Eq{"id": id}))
}

func (r *repository) exec(ctx context.Context, op string, q sq.Sqlizer) error {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := txmanager.From(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrFuelTypeNotFound
	}

	return nil
}

func scanFuelType(row pgx.Row) (*model.FuelType, error) {
	var ft model.FuelType
	if err := row.Scan(&ft.ID, &ft.Name, &ft.Order, &ft.IsActive, &ft.CreatedAt); err != nil {
		return nil, err
	}
	return &ft, nil
}
