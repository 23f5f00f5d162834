package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpconv "github.com/simoilconte/Bensine/internal/converter/http"
	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/transport/http/middleware"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

type NotificationService interface {
	ListPending(ctx context.Context, actor *model.User) ([]*model.Notification, error)
	MarkSent(ctx context.Context, actor *model.User, id uuid.UUID) error
	MarkFailed(ctx context.Context, actor *model.User, id uuid.UUID, errText string) error
	Retry(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type EventService interface {
	ListByEntity(ctx context.Context, actor *model.User, entityType model.EntityType, entityID string) ([]*model.Event, error)
	ListByType(ctx context.Context, actor *model.User, eventType model.EventType) ([]*model.Event, error)
}

type adminHandler struct {
	notifications NotificationService
	events        EventService
}

func NewAdminHandler(notifications NotificationService, events EventService) *adminHandler {
	return &adminHandler{notifications: notifications, events: events}
}

func (h *adminHandler) Mount(r chi.Router) {
	r.Get("/notifications/pending", h.ListPending)
	r.Post("/notifications/{id}/sent", h.MarkSent)
	r.Post("/notifications/{id}/failed", h.MarkFailed)
	r.Post("/notifications/{id}/retry", h.Retry)

	r.Get("/events", h.ListEvents)
}

func (h *adminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.notifications.ListPending(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.NotificationsToAPI(list))
}

func (h *adminHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.notifications.MarkSent(r.Context(), middleware.ActorFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *adminHandler) MarkFailed(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.MarkFailedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.notifications.MarkFailed(r.Context(), middleware.ActorFrom(r.Context()), id, req.Error); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *adminHandler) Retry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.notifications.Retry(r.Context(), middleware.ActorFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListEvents filters by entity when entityType is given, otherwise by event type.
func (h *adminHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	actor := middleware.ActorFrom(r.Context())

	var (
		list []*model.Event
		err  error
	)
	switch {
	case q.Get("entityType") != "":
		list, err = h.events.ListByEntity(r.Context(), actor, model.EntityType(q.Get("entityType")), q.Get("entityId"))
	case q.Get("type") != "":
		list, err = h.events.ListByType(r.Context(), actor, model.EventType(q.Get("type")))
	default:
		err = model.Invalid("entityType and entityId, or type, are required")
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.EventsToAPI(list))
}
