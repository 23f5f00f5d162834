package http

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpconv "github.com/simoilconte/Bensine/internal/converter/http"
	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/transport/http/middleware"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

type VehicleService interface {
	ListByCustomer(ctx context.Context, actor *model.User, customerID uuid.UUID) ([]*model.Vehicle, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Vehicle, error)
	Create(ctx context.Context, actor *model.User, params model.CreateVehicleParams) (uuid.UUID, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.VehicleUpdate) error
	Remove(ctx context.Context, actor *model.User, id uuid.UUID) error
	UploadRegistrationDoc(
		ctx context.Context,
		actor *model.User,
		id uuid.UUID,
		fileName, contentType string,
		body io.Reader,
	) (*model.RegistrationDoc, error)
	OpenRegistrationDoc(ctx context.Context, actor *model.User, id uuid.UUID) (*model.OpenedFile, error)
}

type vehicleHandler struct {
	svc VehicleService
}

func NewVehicleHandler(service VehicleService) *vehicleHandler {
	return &vehicleHandler{svc: service}
}

func (h *vehicleHandler) Mount(r chi.Router) {
	r.Get("/customers/{id}/vehicles", h.ListByCustomer)
	r.Post("/vehicles", h.Create)
	r.Get("/vehicles/{id}", h.Get)
	r.Put("/vehicles/{id}", h.Update)
	r.Delete("/vehicles/{id}", h.Remove)
	r.Put("/vehicles/{id}/registration", h.UploadRegistrationDoc)
	r.Get("/vehicles/{id}/registration", h.OpenRegistrationDoc)
}

func (h *vehicleHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.svc.ListByCustomer(r.Context(), middleware.ActorFrom(r.Context()), customerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.VehiclesToAPI(list))
}

func (h *vehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, r, model.ErrVehicleNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.VehicleToAPI(v))
}

func (h *vehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req apiv1.CreateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), middleware.ActorFrom(r.Context()), httpconv.CreateVehicleRequestToParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, apiv1.IDResponse{ID: id})
}

func (h *vehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.UpdateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), middleware.ActorFrom(r.Context()), id, httpconv.UpdateVehicleRequestToModel(req)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *vehicleHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

func (h *vehicleHandler) UploadRegistrationDoc(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	up, err := readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer up.Close()

	doc, err := h.svc.UploadRegistrationDoc(r.Context(), middleware.ActorFrom(r.Context()), id, up.name, up.contentType, up.Body())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.RegistrationDocToAPI(*doc))
}

func (h *vehicleHandler) OpenRegistrationDoc(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := h.svc.OpenRegistrationDoc(r.Context(), middleware.ActorFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeFile(w, r, f)
}
