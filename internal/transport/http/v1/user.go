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

type UserService interface {
	List(ctx context.Context, actor *model.User) ([]model.UserView, error)
	SetRole(ctx context.Context, actor *model.User, params model.SetRoleParams) error
	LinkToCustomer(ctx context.Context, actor *model.User, userID, customerID uuid.UUID) error
}

type userHandler struct {
	svc UserService
}

func NewUserHandler(service UserService) *userHandler {
	return &userHandler{svc: service}
}

func (h *userHandler) Mount(r chi.Router) {
	r.Get("/users", h.List)
	r.Put("/users/{id}/role", h.SetRole)
	r.Put("/users/{id}/customer", h.LinkToCustomer)
}

func (h *userHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.UserViewsToAPI(users))
}

func (h *userHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.SetRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	err = h.svc.SetRole(r.Context(), middleware.ActorFrom(r.Context()), model.SetRoleParams{
		UserID:     id,
		Role:       model.Role(req.Role),
		CustomerID: req.CustomerID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *userHandler) LinkToCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req apiv1.LinkCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.LinkToCustomer(r.Context(), middleware.ActorFrom(r.Context()), id, req.CustomerID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
