package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/simoilconte/Bensine/internal/model"
)

type resolverFunc func(ctx context.Context, token string) *model.User

func (f resolverFunc) Resolve(ctx context.Context, token string) *model.User { return f(ctx, token) }

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	user := &model.User{ID: uuid.New(), Email: gofakeit.Email(), Role: model.RoleStaff}
	resolver := resolverFunc(func(_ context.Context, token string) *model.User {
		if token == "good" {
			return user
		}
		return nil
	})

	tests := []struct {
		name   string
		header map[string]string
		want   *model.User
	}{
		{name: "bearer token", header: map[string]string{"Authorization": "Bearer good"}, want: user},
		{name: "lowercase scheme", header: map[string]string{"Authorization": "bearer good"}, want: user},
		{name: "session header", header: map[string]string{"X-Session-Token": "good"}, want: user},
		{name: "unknown token", header: map[string]string{"Authorization": "Bearer bad"}, want: nil},
		{name: "basic scheme ignored", header: map[string]string{"Authorization": "Basic good"}, want: nil},
		{name: "anonymous", header: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got *model.User
			h := Authenticate(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ActorFrom(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActorFromEmptyContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ActorFrom(context.Background()))
}
