package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/db/txmanager"
)

const (
	table        = "events"
	defaultLimit = 200
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewEventRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts into the caller's transaction when ctx carries one.
func (r *repository) Create(ctx context.Context, e *model.Event) (uuid.UUID, error) {
	const op = "event.repository.Create"

	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns("type", "entity_type", "entity_id", "payload", "actor_user_id").
		Values(e.Type, e.EntityType, e.EntityID, raw, e.ActorUserID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := txmanager.From(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return e.ID, nil
}

func (r *repository) List(ctx context.Context, f model.EventFilter) ([]*model.Event, error) {
	const op = "event.repository.List"

	limit := f.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	q := r.sb.
		Select("id", "type", "entity_type", "entity_id", "payload", "actor_user_id", "created_at").
		From(table).
		OrderBy("created_at DESC").
		Limit(limit)

	if f.Type != nil {
		q = q.Where(sq.Eq{"type": *f.Type})
	}
	if f.EntityType != nil {
		q = q.Where(sq.Eq{"entity_type": *f.EntityType})
	}
	if f.EntityID != nil {
		q = q.Where(sq.Eq{"entity_id": *f.EntityID})
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

	out := make([]*model.Event, 0)
	for rows.Next() {
		var (
			e   model.Event
			raw []byte
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.EntityType, &e.EntityID, &raw, &e.ActorUserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		if err := json.Unmarshal(raw, &e.Payload); err != nil {
			return nil, fmt.Errorf("%s payload: %w", op, err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return out, nil
}
