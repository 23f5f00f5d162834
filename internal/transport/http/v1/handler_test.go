package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/transport/http/v1/mocks"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

const staffToken = "staff-token"

type resolverFunc func(ctx context.Context, token string) *model.User

func (f resolverFunc) Resolve(ctx context.Context, token string) *model.User { return f(ctx, token) }

func staffResolver(actor *model.User) resolverFunc {
	return func(_ context.Context, token string) *model.User {
		if token == staffToken {
			return actor
		}
		return nil
	}
}

func newStaff() *model.User {
	return &model.User{
		ID:    uuid.New(),
		Email: gofakeit.Email(),
		Name:  gofakeit.Name(),
		Role:  model.RoleStaff,
	}
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiv1.Error {
	t.Helper()

	var body apiv1.Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestMapErrorToStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: model.Invalid("qty must be positive"), want: http.StatusBadRequest},
		{err: model.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{err: fmt.Errorf("op: %w", model.ErrCustomerNotFound), want: http.StatusNotFound},
		{err: model.ErrPlateTaken, want: http.StatusConflict},
		{err: model.ErrNotificationNotFailed, want: http.StatusUnprocessableEntity},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, mapErrorToStatus(tt.err))
		})
	}
}

func TestCustomerHandler(t *testing.T) {
	t.Parallel()

	type deps struct {
		svc *mocks.MockCustomerService
	}

	customerID := uuid.New()

	tests := []struct {
		name   string
		method string
		target string
		body   func() (io.Reader, map[string]string)
		setup  func(d deps, actor *model.User)
		assert func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "get returns 404 when missing",
			method: http.MethodGet,
			target: "/customers/" + customerID.String(),
			setup: func(d deps, actor *model.User) {
				d.svc.On("Get", mock.Anything, actor, customerID).Return(nil, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				body := decodeError(t, rec)
				assert.Equal(t, http.StatusNotFound, body.Code)
				assert.Contains(t, body.Message, "customer")
			},
		},
		{
			name:   "get returns the view",
			method: http.MethodGet,
			target: "/customers/" + customerID.String(),
			setup: func(d deps, actor *model.User) {
				d.svc.On("Get", mock.Anything, actor, customerID).Return(&model.CustomerView{
					Customer:     model.Customer{ID: customerID, Type: model.CustomerPrivate, DisplayName: "Mario Rossi"},
					VehicleCount: 1,
				}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var out apiv1.Customer
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
				assert.Equal(t, customerID, out.ID)
				assert.Equal(t, "Mario Rossi", out.DisplayName)
				assert.Equal(t, 1, out.VehicleCount)
			},
		},
		{
			name:   "internal failure hides the cause",
			method: http.MethodGet,
			target: "/customers/" + customerID.String(),
			setup: func(d deps, actor *model.User) {
				d.svc.On("Get", mock.Anything, actor, customerID).
					Return(nil, errors.New("customer.service.Get: ERROR: relation \"customers\" does not exist (SQLSTATE 42P01)")).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				body := decodeError(t, rec)
				assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Message)
				assert.NotContains(t, body.Message, "customer.service")
			},
		},
		{
			name:   "bad id is 400",
			method: http.MethodGet,
			target: "/customers/not-a-uuid",
			setup:  func(deps, *model.User) {},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "list passes search and type",
			method: http.MethodGet,
			target: "/customers?search=ross&type=PRIVATO",
			setup: func(d deps, actor *model.User) {
				d.svc.On("List", mock.Anything, actor, "ross", lo.ToPtr(model.CustomerPrivate)).
					Return([]model.CustomerView{}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, "[]", rec.Body.String())
			},
		},
		{
			name:   "create returns the new id",
			method: http.MethodPost,
			target: "/customers",
			body: func() (io.Reader, map[string]string) {
				return strings.NewReader(`{"type":"AZIENDA","displayName":"Officina Srl","contacts":{"phone":"","email":"","address":""},"notes":""}`), nil
			},
			setup: func(d deps, actor *model.User) {
				d.svc.On("Create", mock.Anything, actor, mock.MatchedBy(func(p model.CreateCustomerParams) bool {
					return p.Type == model.CustomerCompany && p.DisplayName == "Officina Srl"
				})).Return(customerID, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, rec.Code)
				var out apiv1.IDResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
				assert.Equal(t, customerID, out.ID)
			},
		},
		{
			name:   "malformed body is 400",
			method: http.MethodPut,
			target: "/customers/" + customerID.String(),
			body: func() (io.Reader, map[string]string) {
				return strings.NewReader(`{"displayName":`), nil
			},
			setup: func(deps, *model.User) {},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "remove in use is 409",
			method: http.MethodDelete,
			target: "/customers/" + customerID.String(),
			setup: func(d deps, actor *model.User) {
				d.svc.On("Remove", mock.Anything, actor, customerID).
					Return(fmt.Errorf("customer.service.Remove: %w", model.ErrCustomerInUse)).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusConflict, rec.Code)
			},
		},
		{
			name:   "upload document",
			method: http.MethodPost,
			target: "/customers/" + customerID.String() + "/documents",
			body: func() (io.Reader, map[string]string) {
				var buf bytes.Buffer
				mw := multipart.NewWriter(&buf)
				part, _ := mw.CreateFormFile("file", "libretto.pdf")
				_, _ = part.Write([]byte("%PDF-1.4"))
				_ = mw.Close()
				return &buf, map[string]string{"Content-Type": mw.FormDataContentType()}
			},
			setup: func(d deps, actor *model.User) {
				d.svc.On("AddDocument", mock.Anything, actor, customerID, "libretto.pdf", "application/octet-stream", mock.Anything).
					Return(&model.Document{FileID: "f1", FileName: "libretto.pdf", UploadedBy: actor.ID, UploadedAt: time.Now()}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, rec.Code)
				var out apiv1.Document
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
				assert.Equal(t, "f1", out.FileID)
			},
		},
		{
			name:   "upload without file part is 400",
			method: http.MethodPost,
			target: "/customers/" + customerID.String() + "/documents",
			body: func() (io.Reader, map[string]string) {
				var buf bytes.Buffer
				mw := multipart.NewWriter(&buf)
				_ = mw.WriteField("note", "x")
				_ = mw.Close()
				return &buf, map[string]string{"Content-Type": mw.FormDataContentType()}
			},
			setup: func(deps, *model.User) {},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "open document streams the blob",
			method: http.MethodGet,
			target: "/customers/" + customerID.String() + "/documents/f1",
			setup: func(d deps, actor *model.User) {
				d.svc.On("OpenDocument", mock.Anything, actor, customerID, "f1").Return(&model.OpenedFile{
					Info: model.FileInfo{ID: "f1", Name: "libretto.pdf", ContentType: "application/pdf", Size: 8},
					Body: io.NopCloser(strings.NewReader("%PDF-1.4")),
				}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Header().Get("Content-Disposition"), "libretto.pdf")
				assert.Equal(t, "%PDF-1.4", rec.Body.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{svc: mocks.NewMockCustomerService(t)}
			actor := newStaff()
			tt.setup(d, actor)

			var (
				body   io.Reader
				header map[string]string
			)
			if tt.body != nil {
				body, header = tt.body()
			}

			router := NewRouter(staffResolver(actor), NewCustomerHandler(d.svc))
			tt.assert(t, do(t, router, tt.method, tt.target, body, header))
		})
	}
}

func TestPartRequestHandler(t *testing.T) {
	t.Parallel()

	type deps struct {
		svc *mocks.MockPartRequestService
	}

	requestID := uuid.New()
	customerID := uuid.New()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		setup  func(d deps, actor *model.User)
		assert func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "list parses the filter",
			method: http.MethodGet,
			target: "/part-requests?status=ORDINATO&customerId=" + customerID.String() + "&search=filtro",
			setup: func(d deps, actor *model.User) {
				d.svc.On("List", mock.Anything, actor, model.PartRequestFilter{
					Status:     lo.ToPtr(model.StatusOrdered),
					CustomerID: &customerID,
					SearchText: "filtro",
				}).Return([]model.PartRequestView{{ID: requestID, Status: model.StatusOrdered}}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var out []apiv1.PartRequest
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
				require.Len(t, out, 1)
				assert.Equal(t, requestID, out[0].ID)
				assert.Equal(t, "ORDINATO", out[0].Status)
			},
		},
		{
			name:   "list rejects a bad vehicle id",
			method: http.MethodGet,
			target: "/part-requests?vehicleId=nope",
			setup:  func(deps, *model.User) {},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "create maps items",
			method: http.MethodPost,
			target: "/part-requests",
			body: fmt.Sprintf(`{"customerId":%q,"vehicleId":%q,"items":[{"freeTextName":"brake pads","qty":2}]}`,
				customerID, uuid.New()),
			setup: func(d deps, actor *model.User) {
				d.svc.On("Create", mock.Anything, actor, mock.MatchedBy(func(p model.CreatePartRequestParams) bool {
					return p.CustomerID == customerID && len(p.Items) == 1 &&
						p.Items[0].FreeTextName == "brake pads" && p.Items[0].Qty == 2
				})).Return(requestID, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusCreated, rec.Code)
			},
		},
		{
			name:   "set status",
			method: http.MethodPut,
			target: "/part-requests/" + requestID.String() + "/status",
			body:   `{"status":"ARRIVATO"}`,
			setup: func(d deps, actor *model.User) {
				d.svc.On("SetStatus", mock.Anything, actor, requestID, model.StatusArrived).Return(nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNoContent, rec.Code)
			},
		},
		{
			name:   "set status to unknown value is 400",
			method: http.MethodPut,
			target: "/part-requests/" + requestID.String() + "/status",
			body:   `{"status":"PERSO"}`,
			setup: func(d deps, actor *model.User) {
				d.svc.On("SetStatus", mock.Anything, actor, requestID, model.PartRequestStatus("PERSO")).
					Return(model.Invalid("unknown status %q", "PERSO")).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "allowed next statuses",
			method: http.MethodGet,
			target: "/part-requests/statuses/DA_ORDINARE/next",
			setup: func(d deps, _ *model.User) {
				d.svc.On("AllowedNext", model.StatusToOrder).
					Return([]model.PartRequestStatus{model.StatusOrdered, model.StatusCancelled}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `{"statuses":["ORDINATO","ANNULLATO"]}`, rec.Body.String())
			},
		},
		{
			name:   "get missing is 404",
			method: http.MethodGet,
			target: "/part-requests/" + requestID.String(),
			setup: func(d deps, actor *model.User) {
				d.svc.On("Get", mock.Anything, actor, requestID).Return(nil, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{svc: mocks.NewMockPartRequestService(t)}
			actor := newStaff()
			tt.setup(d, actor)

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}

			router := NewRouter(staffResolver(actor), NewPartRequestHandler(d.svc))
			tt.assert(t, do(t, router, tt.method, tt.target, body, nil))
		})
	}
}

func TestAuthHandler(t *testing.T) {
	t.Parallel()

	t.Run("sign in returns the session", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewMockAuthService(t)
		sess := &model.Session{Token: "abc", UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
		svc.On("SignIn", mock.Anything, "a@b.it", "secret").Return(sess, nil).Once()

		router := NewRouter(staffResolver(nil), NewAuthHandler(svc))
		rec := do(t, router, http.MethodPost, "/auth/sign-in", strings.NewReader(`{"email":"a@b.it","password":"secret"}`), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var out apiv1.Session
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
		assert.Equal(t, "abc", out.Token)
	})

	t.Run("bad credentials are 401", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewMockAuthService(t)
		svc.On("SignIn", mock.Anything, "a@b.it", "nope").Return(nil, model.ErrInvalidCredentials).Once()

		router := NewRouter(staffResolver(nil), NewAuthHandler(svc))
		rec := do(t, router, http.MethodPost, "/auth/sign-in", strings.NewReader(`{"email":"a@b.it","password":"nope"}`), nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sign out forwards the token", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewMockAuthService(t)
		svc.On("SignOut", mock.Anything, staffToken).Once()

		router := NewRouter(staffResolver(newStaff()), NewAuthHandler(svc))
		rec := do(t, router, http.MethodPost, "/auth/sign-out", nil, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("me without a session is 401", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewMockAuthService(t)
		router := NewRouter(staffResolver(nil), NewAuthHandler(svc))
		rec := do(t, router, http.MethodGet, "/auth/me", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("me returns the actor", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewMockAuthService(t)
		actor := newStaff()
		router := NewRouter(staffResolver(actor), NewAuthHandler(svc))
		rec := do(t, router, http.MethodGet, "/auth/me", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var out apiv1.User
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
		assert.Equal(t, actor.ID, out.ID)
		assert.Equal(t, "BENZINE", out.Role)
	})
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()

	router := NewRouter(staffResolver(nil))
	rec := do(t, router, http.MethodGet, "/nowhere", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeError(t, rec).Code)
}
