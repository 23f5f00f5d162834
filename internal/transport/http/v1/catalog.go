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

type SupplierService interface {
	List(ctx context.Context, actor *model.User, activeOnly bool) ([]*model.Supplier, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.SupplierView, error)
	Create(ctx context.Context, actor *model.User, params model.CreateSupplierParams) (uuid.UUID, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.SupplierUpdate) error
	Remove(ctx context.Context, actor *model.User, id uuid.UUID) (model.RemoveOutcome, error)
}

type FuelTypeService interface {
	List(ctx context.Context, actor *model.User, activeOnly bool) ([]*model.FuelType, error)
	Create(ctx context.Context, actor *model.User, params model.CreateFuelTypeParams) (uuid.UUID, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.FuelTypeUpdate) error
	Remove(ctx context.Context, actor *model.User, id uuid.UUID) (model.RemoveOutcome, error)
}

type catalogHandler struct {
	suppliers SupplierService
	fuelTypes FuelTypeService
}

func NewCatalogHandler(suppliers SupplierService, fuelTypes FuelTypeService) *catalogHandler {
	return &catalogHandler{suppliers: suppliers, fuelTypes: fuelTypes}
}

func (h *catalogHandler) Mount(r chi.Router) {
	r.Get("/suppliers", h.ListSuppliers)
	r.Post("/suppliers", h.CreateSupplier)
	r.Get("/suppliers/{id}", h.GetSupplier)
	r.Put("/suppliers/{id}", h.UpdateSupplier)
	r.Delete("/suppliers/{id}", h.RemoveSupplier)

	r.Get("/fuel-types", h.ListFuelTypes)
	r.Post("/fuel-types", h.CreateFuelType)
	r.Put("/fuel-types/{id}", h.UpdateFuelType)
	r.Delete("/fuel-types/{id}", h.RemoveFuelType)
}

func (h *catalogHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := queryBool(r, "activeOnly")
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.suppliers.List(r.Context(), middleware.ActorFrom(r.Context()), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.SuppliersToAPI(list))
}

func (h *catalogHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.suppliers.Get(r.Context(), middleware.ActorFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if s == nil {
		writeError(w, r, model.ErrSupplierNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.SupplierViewToAPI(s))
}

func (h *catalogHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req apiv1.SupplierInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.suppliers.Create(r.Context(), middleware.ActorFrom(r.Context()), httpconv.SupplierInputToCreateParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, apiv1.IDResponse{ID: id})
}

func (h *catalogHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.SupplierInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.suppliers.Update(r.Context(), middleware.ActorFrom(r.Context()), id, httpconv.SupplierInputToUpdate(req)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *catalogHandler) RemoveSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	outcome, err := h.suppliers.Remove(r.Context(), middleware.ActorFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, apiv1.RemoveResponse{Outcome: string(outcome)})
}

func (h *catalogHandler) ListFuelTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := queryBool(r, "activeOnly")
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.fuelTypes.List(r.Context(), middleware.ActorFrom(r.Context()), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.FuelTypesToAPI(list))
}

func (h *catalogHandler) CreateFuelType(w http.ResponseWriter, r *http.Request) {
	var req apiv1.FuelTypeInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.fuelTypes.Create(r.Context(), middleware.ActorFrom(r.Context()), httpconv.FuelTypeInputToCreateParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, apiv1.IDResponse{ID: id})
}

func (h *catalogHandler) UpdateFuelType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.FuelTypeInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.fuelTypes.Update(r.Context(), middleware.ActorFrom(r.Context()), id, httpconv.FuelTypeInputToUpdate(req)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *catalogHandler) RemoveFuelType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	outcome, err := h.fuelTypes.Remove(r.Context(), middleware.ActorFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, apiv1.RemoveResponse{Outcome: string(outcome)})
}
