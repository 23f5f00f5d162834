package http

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	httpconv "github.com/simoilconte/Bensine/internal/converter/http"
	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/transport/http/middleware"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

type CustomerService interface {
	List(ctx context.Context, actor *model.User, searchText string, customerType *model.CustomerType) ([]model.CustomerView, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.CustomerView, error)
	Create(ctx context.Context, actor *model.User, params model.CreateCustomerParams) (uuid.UUID, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.CustomerUpdate) error
	SetSharing(ctx context.Context, actor *model.User, id uuid.UUID, sharing model.Sharing) error
	Remove(ctx context.Context, actor *model.User, id uuid.UUID) error
	AddDocument(
		ctx context.Context,
		actor *model.User,
		id uuid.UUID,
		fileName, contentType string,
		body io.Reader,
	) (*model.Document, error)
	RemoveDocument(ctx context.Context, actor *model.User, id uuid.UUID, fileID string) error
	OpenDocument(ctx context.Context, actor *model.User, id uuid.UUID, fileID string) (*model.OpenedFile, error)
}

type customerHandler struct {
	svc CustomerService
}

func NewCustomerHandler(service CustomerService) *customerHandler {
	return &customerHandler{svc: service}
}

func (h *customerHandler) Mount(r chi.Router) {
	r.Get("/customers", h.List)
	r.Post("/customers", h.Create)
	r.Get("/customers/{id}", h.Get)
	r.Put("/customers/{id}", h.Update)
	r.Delete("/customers/{id}", h.Remove)
	r.Put("/customers/{id}/sharing", h.SetSharing)
	r.Post("/customers/{id}/documents", h.AddDocument)
	r.Get("/customers/{id}/documents/{fileId}", h.OpenDocument)
	r.Delete("/customers/{id}/documents/{fileId}", h.RemoveDocument)
}

func (h *customerHandler) List(w http.ResponseWriter, r *http.Request) {
	var customerType *model.CustomerType
	if raw := r.URL.Query().Get("type"); raw != "" {
		customerType = lo.ToPtr(model.CustomerType(raw))
	}

	list, err := h.svc.List(r.Context(), middleware.ActorFrom(r.Context()), r.URL.Query().Get("search"), customerType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.CustomersToAPI(list))
}

func (h *customerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.svc.Get(r.Context(), middleware.ActorFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if view == nil {
		writeError(w, r, model.ErrCustomerNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.CustomerToAPI(*view))
}

func (h *customerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req apiv1.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.Create(r.Context(), middleware.ActorFrom(r.Context()), httpconv.CreateCustomerRequestToParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, apiv1.IDResponse{ID: id})
}

func (h *customerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.UpdateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), middleware.ActorFrom(r.Context()), id, httpconv.UpdateCustomerRequestToModel(req)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *customerHandler) SetSharing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.Sharing
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.SetSharing(r.Context(), middleware.ActorFrom(r.Context()), id, httpconv.SharingToModel(req)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *customerHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

func (h *customerHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
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

	doc, err := h.svc.AddDocument(r.Context(), middleware.ActorFrom(r.Context()), id, up.name, up.contentType, up.Body())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, httpconv.DocumentToAPI(*doc))
}

func (h *customerHandler) OpenDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := h.svc.OpenDocument(r.Context(), middleware.ActorFrom(r.Context()), id, chi.URLParam(r, "fileId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeFile(w, r, f)
}

func (h *customerHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.RemoveDocument(r.Context(), middleware.ActorFrom(r.Context()), id, chi.URLParam(r, "fileId")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
