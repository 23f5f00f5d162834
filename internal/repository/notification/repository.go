package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/db/txmanager"
)

const table = "notification_outbox"

var columns = []string{
	"id", "channel", "recipient", "template_key", "data", "status", "retry_count", "last_error",
	"created_at", "updated_at",
}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewNotificationRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, n *model.Notification) (uuid.UUID, error) {
	const op = "notification.repository.Create"

	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns("channel", "recipient", "template_key", "data", "status", "retry_count").
		Values(n.Channel, n.Recipient, n.TemplateKey, raw, n.Status, n.RetryCount).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return n.ID, nil
}

func (r *repository) NotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	const op = "notification.repository.NotificationByID"

	// Row lock so concurrent delivery reports serialise on retry_count.
	sqlStr, args, err := r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	n, err := scanNotification(txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (r *repository) ListByStatus(ctx context.Context, status model.NotificationStatus) ([]*model.Notification, error) {
	const op = "notification.repository.ListByStatus"

	sqlStr, args, err := r.sb.
		Select(columns...).
		From(table).
		Where(sq.Eq{"status": status}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := txmanager.From(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]*model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}

// UpdateDelivery persists status, retry_count and last_error and bumps updated_at.
func (r *repository) UpdateDelivery(ctx context.Context, n *model.Notification) error {
	const op = "notification.repository.UpdateDelivery"

	sqlStr, args, err := r.sb.
		Update(table).
		SetMap(sq.Eq{
			"status":      n.Status,
			"retry_count": n.RetryCount,
			"last_error":  n.LastError,
			"updated_at":  sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": n.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotificationNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func scanNotification(row pgx.Row) (*model.Notification, error) {
	var (
		n   model.Notification
		raw []byte
	)
	if err := row.Scan(
		&n.ID,
		&n.Channel,
		&n.Recipient,
		&n.TemplateKey,
		&raw,
		&n.Status,
		&n.RetryCount,
		&n.LastError,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &n.Data); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return &n, nil
}
