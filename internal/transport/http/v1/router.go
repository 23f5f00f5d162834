package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/simoilconte/Bensine/internal/transport/http/middleware"
)

type Mounter interface {
	Mount(r chi.Router)
}

// NewRouter builds the /api/v1 subtree. Every route sees the resolved actor, if any.
func NewRouter(resolver middleware.SessionResolver, handlers ...Mounter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(resolver))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, req, http.StatusNotFound, errorBody(http.StatusNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, req, http.StatusMethodNotAllowed, errorBody(http.StatusMethodNotAllowed, "method not allowed"))
	})

	for _, h := range handlers {
		h.Mount(r)
	}

	return r
}
