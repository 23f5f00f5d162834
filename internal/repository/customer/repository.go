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

const table = "customers"

var columns = []string{
	"id", "type", "display_name", "private_fields", "company_fields", "contacts", "notes",
	"documents", "shared_user_ids", "can_view_vehicles", "can_view_parts", "can_view_documents",
	"created_at",
}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewCustomerRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, c *model.Customer) (uuid.UUID, error) {
	const op = "customer.repository.Create"

	pf, err := privateFieldsJSON(c.PrivateFields)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	cf, err := companyFieldsJSON(c.CompanyFields)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	contacts, err := contactsJSON(c.Contacts)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	q := r.sb.
		Insert(table).
		Columns("type", "display_name", "private_fields", "company_fields", "contacts", "notes").
		Values(c.Type, c.DisplayName, pf, cf, contacts, c.Notes).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) CustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	const op = "customer.repository.CustomerByID"

	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := scanCustomer(txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (r *repository) List(ctx context.Context, f model.CustomerFilter) ([]*model.Customer, error) {
	const op = "customer.repository.List"

	q := r.sb.Select(columns...).From(table).OrderBy("lower(display_name)", "created_at")

	if f.SearchText != "" {
		q = q.Where(sq.ILike{"display_name": pgutil.Contains(f.SearchText)})
	}
	if f.Type != nil {
		q = q.Where(sq.Eq{"type": *f.Type})
	}
	if f.IDs != nil {
		if len(f.IDs) == 0 {
			return []*model.Customer{}, nil
		}
		q = q.Where(sq.Eq{"id": f.IDs})
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

	out := make([]*model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

// Update rewrites the editable profile columns. Documents and sharing have their own writers.
func (r *repository) Update(ctx context.Context, c *model.Customer) error {
	const op = "customer.repository.Update"

	pf, err := privateFieldsJSON(c.PrivateFields)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	cf, err := companyFieldsJSON(c.CompanyFields)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	contacts, err := contactsJSON(c.Contacts)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return r.exec(ctx, op, r.sb.
		Update(table).
		SetMap(sq.Eq{
			"type":           c.Type,
			"display_name":   c.DisplayName,
			"private_fields": pf,
			"company_fields": cf,
			"contacts":       contacts,
			"notes":          c.Notes,
		}).
		Where(sq.Eq{"id": c.ID}))
}

func (r *repository) SetSharing(ctx context.Context, id uuid.UUID, s model.Sharing) error {
	ids := s.SharedWithClientUserIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return r.exec(ctx, "customer.repository.SetSharing", r.sb.
		Update(table).
		SetMap(sq.Eq{
			"shared_user_ids":    ids,
			"can_view_vehicles":  s.ClientPermissions.CanViewVehicles,
			"can_view_parts":     s.ClientPermissions.CanViewParts,
			"can_view_documents": s.ClientPermissions.CanViewDocuments,
		}).
		Where(sq.Eq{"id": id}))
}

func (r *repository) AddDocument(ctx context.Context, id uuid.UUID, d model.Document) error {
	const op = "customer.repository.AddDocument"

	raw, err := documentJSON(d)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return r.exec(ctx, op, r.sb.
		Update(table).
		Set("documents", sq.Expr("documents || ?::jsonb", raw)).
		Where(sq.Eq{"id": id}))
}

func (r *repository) RemoveDocument(ctx context.Context, id uuid.UUID, fileID string) error {
	return r.exec(ctx, "customer.repository.RemoveDocument", r.sb.
		Update(table).
		Set("documents", sq.Expr(
			"COALESCE((SELECT jsonb_agg(d) FROM jsonb_array_elements(documents) d WHERE d->>'fileId' <> ?), '[]'::jsonb)",
			fileID,
		)).
		Where(sq.Eq{"id": id}))
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "customer.repository.Delete", r.sb.Delete(table).Where(sq.Eq{"id": id}))
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
		return model.ErrCustomerNotFound
	}

	return nil
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var r customerRow
	if err := row.Scan(
		&r.ID,
		&r.Type,
		&r.DisplayName,
		&r.PrivateFields,
		&r.CompanyFields,
		&r.Contacts,
		&r.Notes,
		&r.Documents,
		&r.SharedUserIDs,
		&r.CanViewVehicles,
		&r.CanViewParts,
		&r.CanViewDocuments,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return rowToCustomer(r)
}
