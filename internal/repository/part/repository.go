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

const table = "parts"

var (
	insertColumns = []string{
		"name", "sku", "oem_code", "supplier_id", "unit_cost", "unit_price", "part_price",
		"labor_price", "stock_qty", "min_stock_qty", "location", "notes", "vehicle_id",
	}
	columns = append(append([]string{"id"}, insertColumns...), "created_at")
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPartRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, p *model.Part) (uuid.UUID, error) {
	const op = "part.repository.Create"

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns(insertColumns...).
		Values(
			p.Name, p.SKU, p.OEMCode, p.SupplierID, p.UnitCost, p.UnitPrice, p.PartPrice,
			p.LaborPrice, p.StockQty, p.MinStockQty, p.Location, p.Notes, p.VehicleID,
		).
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

func (r *repository) PartByID(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	const op = "part.repository.PartByID"

	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := scanPart(txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPartNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *repository) List(ctx context.Context, f model.PartFilter) ([]*model.Part, error) {
	const op = "part.repository.List"

	q := r.sb.Select(columns...).From(table).OrderBy("lower(name)", "created_at")

	if s := f.SearchText; s != "" {
		pattern := pgutil.Contains(s)
		q = q.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"sku": pattern},
			sq.ILike{"oem_code": pattern},
		})
	}
	if f.VehicleID != nil {
		q = q.Where(sq.Eq{"vehicle_id": *f.VehicleID})
	}
	if f.SupplierID != nil {
		q = q.Where(sq.Eq{"supplier_id": *f.SupplierID})
	}
	if f.IDs != nil {
		if len(f.IDs) == 0 {
			return []*model.Part{}, nil
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

	out := make([]*model.Part, 0)
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

func (r *repository) CountBySupplier(ctx context.Context, supplierIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	const op = "part.repository.CountBySupplier"

	out := make(map[uuid.UUID]int, len(supplierIDs))
	if len(supplierIDs) == 0 {
		return out, nil
	}

	sqlStr, args, err := r.sb.
		Select("supplier_id", "count(*)").
		From(table).
		Where(sq.Eq{"supplier_id": supplierIDs}).
		GroupBy("supplier_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := txmanager.From(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id uuid.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

func (r *repository) Update(ctx context.Context, p *model.Part) error {
	return r.exec(ctx, "part.repository.Update", r.sb.
		Update(table).
		SetMap(sq.Eq{
			"name":          p.Name,
			"sku":           p.SKU,
			"oem_code":      p.OEMCode,
			"supplier_id":   p.SupplierID,
			"unit_cost":     p.UnitCost,
			"unit_price":    p.UnitPrice,
			"part_price":    p.PartPrice,
			"labor_price":   p.LaborPrice,
			"stock_qty":     p.StockQty,
			"min_stock_qty": p.MinStockQty,
			"location":      p.Location,
			"notes":         p.Notes,
			"vehicle_id":    p.VehicleID,
		}).
		Where(sq.Eq{"id": p.ID}))
}

// AdjustStock applies delta atomically and returns the stored quantities before and after.
// A delta that would go negative leaves the row untouched and reports ErrValidation.
func (r *repository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (oldQty, newQty int, err error) {
	const op = "part.repository.AdjustStock"

	sqlStr, args, err := r.sb.
		Update(table).
		Set("stock_qty", sq.Expr("stock_qty + ?", delta)).
		Where(sq.Eq{"id": id}).
		Where(sq.Expr("stock_qty + ? >= 0", delta)).
		Suffix("RETURNING stock_qty").
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	err = txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&newQty)
	if err == nil {
		return newQty - delta, newQty, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.PartByID(ctx, id); err != nil {
		return 0, 0, err
	}
	return 0, 0, model.Invalid("stock cannot go below zero")
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "part.repository.Delete", r.sb.Delete(table).Where(sq.Eq{"id": id}))
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
		return model.ErrPartNotFound
	}

	return nil
}

func scanPart(row pgx.Row) (*model.Part, error) {
	var p model.Part
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.SKU,
		&p.OEMCode,
		&p.SupplierID,
		&p.UnitCost,
		&p.UnitPrice,
		&p.PartPrice,
		&p.LaborPrice,
		&p.StockQty,
		&p.MinStockQty,
		&p.Location,
		&p.Notes,
		&p.VehicleID,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
