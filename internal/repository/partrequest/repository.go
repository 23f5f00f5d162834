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

const table = "part_requests"

var columns = []string{
	"id", "customer_id", "vehicle_id", "requested_items", "status", "timeline", "supplier", "notes",
	"created_at", "updated_at",
}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPartRequestRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, pr *model.PartRequest) (uuid.UUID, error) {
	const op = "partrequest.repository.Create"

	items, err := itemsJSON(pr.Items)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	tl, err := timelineJSON(pr.Timeline)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns("customer_id", "vehicle_id", "requested_items", "status", "timeline", "supplier", "notes", "created_at", "updated_at").
		Values(pr.CustomerID, pr.VehicleID, items, pr.Status, tl, pr.Supplier, pr.Notes, pr.CreatedAt, pr.UpdatedAt).
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

func (r *repository) PartRequestByID(ctx context.Context, id uuid.UUID) (*model.PartRequest, error) {
	const op = "partrequest.repository.PartRequestByID"

	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pr, err := scanPartRequest(txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPartRequestNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pr, nil
}

// List applies the store-side filters, newest first. SearchText is not handled here.
func (r *repository) List(ctx context.Context, f model.PartRequestFilter) ([]*model.PartRequest, error) {
	const op = "partrequest.repository.List"

	where, err := r.where(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlStr, args, err := r.sb.
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := txmanager.From(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]*model.PartRequest, 0)
	for rows.Next() {
		pr, err := scanPartRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

func (r *repository) Exists(ctx context.Context, f model.PartRequestFilter) (bool, error) {
	const op = "partrequest.repository.Exists"

	where, err := r.where(f)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	inner := r.sb.Select("1").From(table).Where(where).Limit(1)
	sqlStr, args, err := r.sb.Select().Column(sq.Expr("EXISTS (?)", inner)).ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var ok bool
	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

// Update writes the whole mutable state of the request.
func (r *repository) Update(ctx context.Context, pr *model.PartRequest) error {
	const op = "partrequest.repository.Update"

	items, err := itemsJSON(pr.Items)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tl, err := timelineJSON(pr.Timeline)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sqlStr, args, err := r.sb.
		Update(table).
		SetMap(sq.Eq{
			"requested_items": items,
			"status":          pr.Status,
			"timeline":        tl,
			"supplier":        pr.Supplier,
			"notes":           pr.Notes,
			"updated_at":      pr.UpdatedAt,
		}).
		Where(sq.Eq{"id": pr.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := txmanager.From(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrPartRequestNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "partrequest.repository.Delete"

	sqlStr, args, err := r.sb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := txmanager.From(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrPartRequestNotFound
	}

	return nil
}

func (r *repository) where(f model.PartRequestFilter) (sq.And, error) {
	where := sq.And{}

	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.CustomerID != nil {
		where = append(where, sq.Eq{"customer_id": *f.CustomerID})
	}
	if f.VehicleID != nil {
		where = append(where, sq.Eq{"vehicle_id": *f.VehicleID})
	}
	if f.PartID != nil {
		probe, err := partFilterJSON(*f.PartID)
		if err != nil {
			return nil, err
		}
		where = append(where, sq.Expr("requested_items @> ?::jsonb", probe))
	}

	return where, nil
}

func scanPartRequest(row pgx.Row) (*model.PartRequest, error) {
	var r partRequestRow
	if err := row.Scan(
		&r.ID,
		&r.CustomerID,
		&r.VehicleID,
		&r.Items,
		&r.Status,
		&r.Timeline,
		&r.Supplier,
		&r.Notes,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return rowToPartRequest(r)
}
