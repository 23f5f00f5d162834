package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/simoilconte/Bensine/internal/model"
)

const sessionTokenHeader = "X-Session-Token"

type SessionResolver interface {
	Resolve(ctx context.Context, token string) *model.User
}

type actorKey struct{}

// Authenticate puts the caller behind the session token on the request context.
// Anonymous requests pass through with no actor; the services decide what they may do.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := Token(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if actor := resolver.Resolve(r.Context(), token); actor != nil {
				r = r.WithContext(WithActor(r.Context(), actor))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Token reads a bearer token, falling back to the X-Session-Token header.
func Token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(sessionTokenHeader))
}

func WithActor(ctx context.Context, actor *model.User) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) *model.User {
	actor, _ := ctx.Value(actorKey{}).(*model.User)
	return actor
}
