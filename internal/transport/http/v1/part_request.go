package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	httpconv "github.com/simoilconte/Bensine/internal/converter/http"
	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/transport/http/middleware"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

type PartRequestService interface {
	Create(ctx context.Context, actor *model.User, params model.CreatePartRequestParams) (uuid.UUID, error)
	SetStatus(ctx context.Context, actor *model.User, id uuid.UUID, status model.PartRequestStatus) error
	AllowedNext(status model.PartRequestStatus) ([]model.PartRequestStatus, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.PartRequestUpdate) error
	Remove(ctx context.Context, actor *model.User, id uuid.UUID) error
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.PartRequestView, error)
	List(ctx context.Context, actor *model.User, f model.PartRequestFilter) ([]model.PartRequestView, error)
}

type partRequestHandler struct {
	svc PartRequestService
}

func NewPartRequestHandler(service PartRequestService) *partRequestHandler {
	return &partRequestHandler{svc: service}
}

func (h *partRequestHandler) Mount(r chi.Router) {
	r.Get("/part-requests", h.List)
	r.Post("/part-requests", h.Create)
	r.Get("/part-requests/statuses/{status}/next", h.AllowedNext)
	r.Get("/part-requests/{id}", h.Get)
	r.Put("/part-requests/{id}", h.Update)
	r.Delete("/part-requests/{id}", h.Remove)
	r.Put("/part-requests/{id}/status", h.SetStatus)
}

func (h *partRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := partRequestFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.svc.List(r.Context(), middleware.ActorFrom(r.Context()), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.PartRequestsToAPI(list))
}

func partRequestFilter(r *http.Request) (model.PartRequestFilter, error) {
	q := r.URL.Query()
	f := model.PartRequestFilter{SearchText: q.Get("search")}

	if raw := q.Get("status"); raw != "" {
		f.Status = lo.ToPtr(model.PartRequestStatus(raw))
	}

	var err error
	if f.CustomerID, err = queryID(r, "customerId"); err != nil {
		return f, err
	}
	if f.VehicleID, err = queryID(r, "vehicleId"); err != nil {
		return f, err
	}
	if f.PartID, err = queryID(r, "partId"); err != nil {
		return f, err
	}

	return f, nil
}

func (h *partRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := h.svc.Get(r.Context(), middleware.ActorFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if v == nil {
		writeError(w, r, model.ErrPartRequestNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.PartRequestToAPI(*v))
}

func (h *partRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req apiv1.CreatePartRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), middleware.ActorFrom(r.Context()), httpconv.CreatePartRequestRequestToParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, apiv1.IDResponse{ID: id})
}

func (h *partRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.UpdatePartRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), middleware.ActorFrom(r.Context()), id, httpconv.UpdatePartRequestRequestToModel(req)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *partRequestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.SetStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.SetStatus(r.Context(), middleware.ActorFrom(r.Context()), id, model.PartRequestStatus(req.Status)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *partRequestHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Remove(r.Context(), middleware.ActorFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AllowedNext is advisory and needs no session.
func (h *partRequestHandler) AllowedNext(w http.ResponseWriter, r *http.Request) {
	next, err := h.svc.AllowedNext(model.PartRequestStatus(chi.URLParam(r, "status")))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.StatusesToAPI(next))
}
