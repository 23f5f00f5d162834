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

const table = "vehicles"

var columns = []string{
	"id", "customer_id", "plate", "make", "model", "year", "vin", "fuel_type", "km",
	"tires", "registration_doc", "created_at",
}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewVehicleRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, v *model.Vehicle) (uuid.UUID, error) {
	const op = "vehicle.repository.Create"

	tires, err := tiresJSON(v.Tires)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns("customer_id", "plate", "make", "model", "year", "vin", "fuel_type", "km", "tires").
		Values(v.CustomerID, v.Plate, v.Make, v.Model, v.Year, v.VIN, v.FuelType, v.Km, tires).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if pgutil.IsUniqueViolation(err) {
			return uuid.Nil, model.ErrPlateTaken
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	const op = "vehicle.repository.VehicleByID"

	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v, err := scanVehicle(txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

func (r *repository) VehiclesByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Vehicle, error) {
	if len(ids) == 0 {
		return []*model.Vehicle{}, nil
	}
	return r.list(ctx, "vehicle.repository.VehiclesByIDs", sq.Eq{"id": ids})
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Vehicle, error) {
	return r.list(ctx, "vehicle.repository.ListByCustomer", sq.Eq{"customer_id": customerID})
}

// CountByCustomers returns vehicle counts keyed by customer. Customers with none are absent.
func (r *repository) CountByCustomers(ctx context.Context, customerIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	const op = "vehicle.repository.CountByCustomers"

	out := make(map[uuid.UUID]int, len(customerIDs))
	if len(customerIDs) == 0 {
		return out, nil
	}

	sqlStr, args, err := r.sb.
		Select("customer_id", "count(*)").
		From(table).
		Where(sq.Eq{"customer_id": customerIDs}).
		GroupBy("customer_id").
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

func (r *repository) ExistsWithFuelType(ctx context.Context, fuelType string) (bool, error) {
	return r.exists(ctx, "vehicle.repository.ExistsWithFuelType", sq.Eq{"fuel_type": fuelType})
}

func (r *repository) ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error) {
	return r.exists(ctx, "vehicle.repository.ExistsForCustomer", sq.Eq{"customer_id": customerID})
}

func (r *repository) Update(ctx context.Context, v *model.Vehicle) error {
	const op = "vehicle.repository.Update"

	tires, err := tiresJSON(v.Tires)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = r.exec(ctx, op, r.sb.
		Update(table).
		SetMap(sq.Eq{
			"plate":     v.Plate,
			"make":      v.Make,
			"model":     v.Model,
			"year":      v.Year,
			"vin":       v.VIN,
			"fuel_type": v.FuelType,
			"km":        v.Km,
			"tires":     tires,
		}).
		Where(sq.Eq{"id": v.ID}))
	if pgutil.IsUniqueViolation(err) {
		return model.ErrPlateTaken
	}

	return err
}

func (r *repository) SetRegistrationDoc(ctx context.Context, id uuid.UUID, d *model.RegistrationDoc) error {
	const op = "vehicle.repository.SetRegistrationDoc"

	raw, err := registrationDocJSON(d)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return r.exec(ctx, op, r.sb.Update(table).Set("registration_doc", raw).Where(sq.Eq{"id": id}))
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "vehicle.repository.Delete", r.sb.Delete(table).Where(sq.Eq{"id": id}))
}

func (r *repository) list(ctx context.Context, op string, where sq.Sqlizer) ([]*model.Vehicle, error) {
	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(where).OrderBy("plate").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := txmanager.From(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]*model.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

func (r *repository) exists(ctx context.Context, op string, where sq.Sqlizer) (bool, error) {
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
		return model.ErrVehicleNotFound
	}

	return nil
}

func scanVehicle(row pgx.Row) (*model.Vehicle, error) {
	var r vehicleRow
	if err := row.Scan(
		&r.ID,
		&r.CustomerID,
		&r.Plate,
		&r.Make,
		&r.Model,
		&r.Year,
		&r.VIN,
		&r.FuelType,
		&r.Km,
		&r.Tires,
		&r.RegistrationDoc,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return rowToVehicle(r)
}
