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

const table = "suppliers"

var columns = []string{
	"id", "company_name", "contact_name", "phone", "email", "address", "notes", "is_active", "created_at",
}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewSupplierRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, s *model.Supplier) (uuid.UUID, error) {
	const op = "supplier.repository.Create"

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns("company_name", "contact_name", "phone", "email", "address", "notes", "is_active").
		Values(s.CompanyName, s.ContactName, s.Phone, s.Email, s.Address, s.Notes, s.IsActive).
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

func (r *repository) SupplierByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	const op = "supplier.repository.SupplierByID"

	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s, err := scanSupplier(txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// List returns suppliers by company name. ids narrows the set when non-nil.
func (r *repository) List(ctx context.Context, activeOnly bool, ids []uuid.UUID) ([]*model.Supplier, error) {
	const op = "supplier.repository.List"

	q := r.sb.Select(columns...).From(table).OrderBy("lower(company_name)")
	if activeOnly {
		q = q.Where(sq.Eq{"is_active": true})
	}
	if ids != nil {
		if len(ids) == 0 {
			return []*model.Supplier{}, nil
		}
		q = q.Where(sq.Eq{"id": ids})
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

	out := make([]*model.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

func (r *repository) Update(ctx context.Context, s *model.Supplier) error {
	return r.exec(ctx, "supplier.repository.Update", r.sb.
		Update(table).
		SetMap(sq.Eq{
			"company_name": s.CompanyName,
			"contact_name": s.ContactName,
			"phone":        s.Phone,
			"email":        s.Email,
			"address":      s.Address,
			"notes":        s.Notes,
			"is_active":    s.IsActive,
		}).
		Where(sq.Eq{"id": s.ID}))
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "supplier.repository.Deactivate",
		r.sb.Update(table).Set("is_active", false).Where(sq.Eq{"id": id}))
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "supplier.repository.Delete", r.sb.Delete(table).Where(sq.Eq{"id": id}))
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
		return model.ErrSupplierNotFound
	}

	return nil
}

func scanSupplier(row pgx.Row) (*model.Supplier, error) {
	var s model.Supplier
	if err := row.Scan(
		&s.ID,
		&s.CompanyName,
		&s.ContactName,
		&s.Phone,
		&s.Email,
		&s.Address,
		&s.Notes,
		&s.IsActive,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
