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

type PartService interface {
	List(ctx context.Context, actor *model.User, searchText string) ([]model.PartView, error)
	ListByVehicle(ctx context.Context, actor *model.User, vehicleID uuid.UUID) ([]model.PartView, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.PartView, error)
	Create(ctx context.Context, actor *model.User, params model.CreatePartParams) (uuid.UUID, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.PartUpdate) error
	AdjustStock(ctx context.Context, actor *model.User, params model.AdjustStockParams) (*model.AdjustStockResult, error)
	Remove(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type partHandler struct {
	svc PartService
}

func NewPartHandler(service PartService) *partHandler {
	return &partHandler{svc: service}
}

func (h *partHandler) Mount(r chi.Router) {
	r.Get("/parts", h.List)
	r.Post("/parts", h.Create)
	r.Get("/parts/{id}", h.Get)
	r.Put("/parts/{id}", h.Update)
	r.Delete("/parts/{id}", h.Remove)
	r.Post("/parts/{id}/stock", h.AdjustStock)
	r.Get("/vehicles/{id}/parts", h.ListByVehicle)
}

func (h *partHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), middleware.ActorFrom(r.Context()), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.PartsToAPI(list))
}

func (h *partHandler) ListByVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.svc.ListByVehicle(r.Context(), middleware.ActorFrom(r.Context()), vehicleID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.PartsToAPI(list))
}

func (h *partHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Get(r.Context(), middleware.ActorFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p == nil {
		writeError(w, r, model.ErrPartNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.PartToAPI(*p))
}

func (h *partHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req apiv1.PartInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), middleware.ActorFrom(r.Context()), httpconv.PartInputToCreateParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, apiv1.IDResponse{ID: id})
}

func (h *partHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.PartInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), middleware.ActorFrom(r.Context()), id, httpconv.PartInputToUpdate(req)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *partHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.AdjustStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.AdjustStock(r.Context(), middleware.ActorFrom(r.Context()), model.AdjustStockParams{
		PartID: id,
		Delta:  req.Delta,
		Reason: req.Reason,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.AdjustStockResultToAPI(res))
}

func (h *partHandler) Remove(w http.ResponseWriter, r *http.Request) {
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
