package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/platform/logger"
)

type EventRepository interface {
	Create(ctx context.Context, e *model.Event) (uuid.UUID, error)
	List(ctx context.Context, f model.EventFilter) ([]*model.Event, error)
}

type service struct {
	repo          EventRepository
	readDBTimeout time.Duration
}

func NewEventService(repository EventRepository, readDBTimeout time.Duration) *service {
	return &service{repo: repository, readDBTimeout: readDBTimeout}
}

// Record appends an audit event. It joins the transaction carried by ctx, if any.
func (svc *service) Record(ctx context.Context, params model.RecordEventParams) error {
	const op string = "event.service.Record"

	if strings.TrimSpace(string(params.Type)) == "" ||
		strings.TrimSpace(string(params.EntityType)) == "" ||
		strings.TrimSpace(params.EntityID) == "" {
		return fmt.Errorf("%s: %w", op, model.Invalid("event type, entity type and entity id are required"))
	}

	if _, err := svc.repo.Create(ctx, &model.Event{
		Type:        params.Type,
		EntityType:  params.EntityType,
		EntityID:    params.EntityID,
		Payload:     params.Payload,
		ActorUserID: params.ActorUserID,
	}); err != nil {
		logger.Error(ctx, "repository create event",
			logger.String("event_type", string(params.Type)),
			logger.ErrorF(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (svc *service) ListByEntity(
	ctx context.Context,
	actor *model.User,
	entityType model.EntityType,
	entityID string,
) ([]*model.Event, error) {
	const op string = "event.service.ListByEntity"

	if err := policy.RequireAdmin(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if entityType == "" || entityID == "" {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("entity type and entity id are required"))
	}

	return svc.list(ctx, op, model.EventFilter{EntityType: &entityType, EntityID: &entityID})
}

func (svc *service) ListByType(ctx context.Context, actor *model.User, eventType model.EventType) ([]*model.Event, error) {
	const op string = "event.service.ListByType"

	if err := policy.RequireAdmin(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if eventType == "" {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("event type is required"))
	}

	return svc.list(ctx, op, model.EventFilter{Type: &eventType})
}

func (svc *service) list(ctx context.Context, op string, f model.EventFilter) ([]*model.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	events, err := svc.repo.List(ctx, f)
	if err != nil {
		logger.Error(ctx, "repository list events", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}
