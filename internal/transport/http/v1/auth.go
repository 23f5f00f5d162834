package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpconv "github.com/simoilconte/Bensine/internal/converter/http"
	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/internal/transport/http/middleware"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	SignUp(ctx context.Context, params model.SignUpParams) (*model.Session, error)
	SignOut(ctx context.Context, token string)
}

type authHandler struct {
	svc AuthService
}

func NewAuthHandler(service AuthService) *authHandler {
	return &authHandler{svc: service}
}

func (h *authHandler) Mount(r chi.Router) {
	r.Post("/auth/sign-in", h.SignIn)
	r.Post("/auth/sign-up", h.SignUp)
	r.Post("/auth/sign-out", h.SignOut)
	r.Get("/auth/me", h.Me)
}

func (h *authHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req apiv1.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.SessionToAPI(sess))
}

func (h *authHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req apiv1.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.svc.SignUp(r.Context(), httpconv.SignUpRequestToParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, httpconv.SessionToAPI(sess))
}

// SignOut always succeeds; an unknown token is already signed out.
func (h *authHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.svc.SignOut(r.Context(), middleware.Token(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())
	if err := policy.RequireActor(actor); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, httpconv.UserToAPI(actor))
}
