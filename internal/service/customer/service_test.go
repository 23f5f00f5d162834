package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/mocks"
)

type deps struct {
	customers    *mocks.MockCustomerRepository
	vehicles     *mocks.MockVehicleRepository
	partRequests *mocks.MockPartRequestRepository
	users        *mocks.MockUserRepository
	documents    *mocks.MockDocumentStore
	events       *mocks.MockEventRecorder
	tx           *mocks.InlineTxManager
}

func newDeps(t *testing.T) deps {
	return deps{
		customers:    mocks.NewMockCustomerRepository(t),
		vehicles:     mocks.NewMockVehicleRepository(t),
		partRequests: mocks.NewMockPartRequestRepository(t),
		users:        mocks.NewMockUserRepository(t),
		documents:    mocks.NewMockDocumentStore(t),
		events:       mocks.NewMockEventRecorder(t),
		tx:           &mocks.InlineTxManager{},
	}
}

func newSvc(d deps) *service {
	svc := NewCustomerService(d.customers, d.vehicles, d.partRequests, d.users, d.documents, d.events, d.tx, time.Second, time.Second)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

var (
	admin = &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	staff = &model.User{ID: uuid.New(), Role: model.RoleStaff}
)

func fakeCustomer() *model.Customer {
	return &model.Customer{
		ID:          uuid.New(),
		Type:        model.CustomerPrivate,
		DisplayName: gofakeit.Name(),
		Contacts:    model.Contacts{Email: gofakeit.Email(), Phone: gofakeit.Phone()},
		Notes:       "pays late",
		Sharing: model.Sharing{
			SharedWithClientUserIDs: []uuid.UUID{uuid.New()},
			ClientPermissions:       model.ClientPermissions{CanViewVehicles: true},
		},
	}
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	c := fakeCustomer()

	t.Run("staff sees search results with vehicle counts", func(t *testing.T) {
		t.Parallel()

		typ := model.CustomerPrivate
		d := newDeps(t)
		d.customers.
			On("List", mock.Anything, model.CustomerFilter{SearchText: "ross", Type: &typ}).
			Return([]*model.Customer{c}, nil).
			Once()
		d.vehicles.
			On("CountByCustomers", mock.Anything, []uuid.UUID{c.ID}).
			Return(map[uuid.UUID]int{c.ID: 2}, nil).
			Once()

		got, err := newSvc(d).List(context.Background(), staff, "  ross ", &typ)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].VehicleCount)
		assert.Equal(t, "pays late", got[0].Notes)
		assert.False(t, got[0].Restricted)
	})

	t.Run("customer role sees only the linked record", func(t *testing.T) {
		t.Parallel()

		client := &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &c.ID}
		d := newDeps(t)
		d.customers.
			On("List", mock.Anything, model.CustomerFilter{IDs: []uuid.UUID{c.ID}}).
			Return([]*model.Customer{c}, nil).
			Once()
		d.vehicles.On("CountByCustomers", mock.Anything, []uuid.UUID{c.ID}).Return(map[uuid.UUID]int{}, nil).Once()

		got, err := newSvc(d).List(context.Background(), client, "ignored", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Notes)
		assert.Empty(t, got[0].Sharing.SharedWithClientUserIDs)
		assert.True(t, got[0].Restricted)
	})

	t.Run("unlinked customer role gets nothing", func(t *testing.T) {
		t.Parallel()

		got, err := newSvc(newDeps(t)).List(context.Background(), &model.User{ID: uuid.New(), Role: model.RoleCustomer}, "", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		_, err := newSvc(newDeps(t)).List(context.Background(), nil, "", nil)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})
}

func TestServiceGet(t *testing.T) {
	t.Parallel()

	c := fakeCustomer()

	t.Run("missing customer is nil", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(nil, model.ErrCustomerNotFound).Once()

		got, err := newSvc(d).Get(context.Background(), staff, c.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("other customer's record is rejected", func(t *testing.T) {
		t.Parallel()

		other := uuid.New()
		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()

		_, err := newSvc(d).Get(context.Background(), &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &other}, c.ID)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	newID := uuid.New()

	type testCase struct {
		name   string
		actor  *model.User
		params model.CreateCustomerParams
		setup  func(d deps)
		assert func(t *testing.T, id uuid.UUID, err error)
	}

	tests := []testCase{
		{
			name:   "customer role cannot create",
			actor:  &model.User{ID: uuid.New(), Role: model.RoleCustomer},
			params: model.CreateCustomerParams{Type: model.CustomerPrivate, DisplayName: "x"},
			setup:  func(d deps) {},
			assert: func(t *testing.T, _ uuid.UUID, err error) {
				assert.ErrorIs(t, err, model.ErrUnauthorized)
			},
		},
		{
			name:   "blank display name",
			actor:  staff,
			params: model.CreateCustomerParams{Type: model.CustomerPrivate, DisplayName: "   "},
			setup:  func(d deps) {},
			assert: func(t *testing.T, _ uuid.UUID, err error) {
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
		{
			name:   "unknown type",
			actor:  staff,
			params: model.CreateCustomerParams{Type: "ENTE", DisplayName: "Comune"},
			setup:  func(d deps) {},
			assert: func(t *testing.T, _ uuid.UUID, err error) {
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
		{
			name:   "trims and records",
			actor:  staff,
			params: model.CreateCustomerParams{Type: model.CustomerCompany, DisplayName: "  Officina Srl "},
			setup: func(d deps) {
				d.customers.
					On("Create", mock.Anything, mock.MatchedBy(func(c *model.Customer) bool {
						return c.DisplayName == "Officina Srl" && c.Type == model.CustomerCompany
					})).
					Return(newID, nil).
					Once()
				d.events.
					On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
						return p.Type == model.EventCustomerCreated && p.EntityID == newID.String() && p.ActorUserID == staff.ID
					})).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, id uuid.UUID, err error) {
				require.NoError(t, err)
				assert.Equal(t, newID, id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			tt.setup(d)

			id, err := newSvc(d).Create(context.Background(), tt.actor, tt.params)
			tt.assert(t, id, err)
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("blank display name", func(t *testing.T) {
		t.Parallel()

		blank := " "
		err := newSvc(newDeps(t)).Update(context.Background(), staff, uuid.New(), model.CustomerUpdate{DisplayName: &blank})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("applies only provided fields", func(t *testing.T) {
		t.Parallel()

		c := fakeCustomer()
		notes := "new notes"
		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
		d.customers.
			On("Update", mock.Anything, mock.MatchedBy(func(got *model.Customer) bool {
				return got.Notes == notes && got.DisplayName == c.DisplayName
			})).
			Return(nil).
			Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				fields, _ := p.Payload["fields"].([]string)
				return p.Type == model.EventCustomerUpdated && assert.ObjectsAreEqual([]string{"notes"}, fields)
			})).
			Return(nil).
			Once()

		require.NoError(t, newSvc(d).Update(context.Background(), staff, c.ID, model.CustomerUpdate{Notes: &notes}))
	})
}

func TestServiceSetSharing(t *testing.T) {
	t.Parallel()

	c := fakeCustomer()
	clientID := uuid.New()
	staffID := uuid.New()

	t.Run("staff user cannot be shared with", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
		d.users.
			On("UsersByIDs", mock.Anything, []uuid.UUID{clientID, staffID}).
			Return([]*model.User{{ID: clientID, Role: model.RoleCustomer}, {ID: staffID, Role: model.RoleStaff}}, nil).
			Once()

		err := newSvc(d).SetSharing(context.Background(), admin, c.ID, model.Sharing{
			SharedWithClientUserIDs: []uuid.UUID{clientID, staffID, clientID},
		})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("staff cannot change sharing", func(t *testing.T) {
		t.Parallel()

		err := newSvc(newDeps(t)).SetSharing(context.Background(), staff, c.ID, model.Sharing{})
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("stores and records", func(t *testing.T) {
		t.Parallel()

		sharing := model.Sharing{
			SharedWithClientUserIDs: []uuid.UUID{clientID},
			ClientPermissions:       model.ClientPermissions{CanViewParts: true},
		}
		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
		d.users.
			On("UsersByIDs", mock.Anything, []uuid.UUID{clientID}).
			Return([]*model.User{{ID: clientID, Role: model.RoleCustomer}}, nil).
			Once()
		d.customers.On("SetSharing", mock.Anything, c.ID, sharing).Return(nil).Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				return p.Type == model.EventCustomerSharingUpdated && p.Payload["canViewParts"] == true
			})).
			Return(nil).
			Once()

		require.NoError(t, newSvc(d).SetSharing(context.Background(), admin, c.ID, sharing))
	})
}

func TestServiceRemove(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		setup  func(d deps, c *model.Customer)
		assert func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name: "has vehicles",
			setup: func(d deps, c *model.Customer) {
				d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
				d.vehicles.On("ExistsForCustomer", mock.Anything, c.ID).Return(true, nil).Once()
				d.partRequests.On("Exists", mock.Anything, model.PartRequestFilter{CustomerID: &c.ID}).Return(false, nil).Once()
			},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrCustomerInUse)
				assert.ErrorIs(t, err, model.ErrConflict)
			},
		},
		{
			name: "has part requests",
			setup: func(d deps, c *model.Customer) {
				d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
				d.vehicles.On("ExistsForCustomer", mock.Anything, c.ID).Return(false, nil).Once()
				d.partRequests.On("Exists", mock.Anything, model.PartRequestFilter{CustomerID: &c.ID}).Return(true, nil).Once()
			},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrCustomerInUse)
			},
		},
		{
			name: "deletes and drops blobs",
			setup: func(d deps, c *model.Customer) {
				c.Documents = []model.Document{{FileID: "f1"}, {FileID: "f2"}}
				d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
				d.vehicles.On("ExistsForCustomer", mock.Anything, c.ID).Return(false, nil).Once()
				d.partRequests.On("Exists", mock.Anything, model.PartRequestFilter{CustomerID: &c.ID}).Return(false, nil).Once()
				d.customers.On("Delete", mock.Anything, c.ID).Return(nil).Once()
				d.events.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
				d.documents.On("Delete", mock.Anything, "f1").Return(nil).Once()
				d.documents.On("Delete", mock.Anything, "f2").Return(errors.New("gridfs down")).Once()
			},
			assert: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := fakeCustomer()
			d := newDeps(t)
			tt.setup(d, c)

			tt.assert(t, newSvc(d).Remove(context.Background(), staff, c.ID))
		})
	}
}

func TestServiceAddDocument(t *testing.T) {
	t.Parallel()

	c := fakeCustomer()

	t.Run("attaches uploaded blob", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
		d.documents.
			On("Upload", mock.Anything, mock.MatchedBy(func(p model.UploadFileParams) bool {
				return p.Name == "libretto.pdf" && p.ContentType == "application/pdf"
			})).
			Return(&model.FileInfo{ID: "abc"}, nil).
			Once()
		d.customers.
			On("AddDocument", mock.Anything, c.ID, mock.MatchedBy(func(doc model.Document) bool {
				return doc.FileID == "abc" && doc.UploadedBy == staff.ID
			})).
			Return(nil).
			Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				return p.Type == model.EventCustomerDocumentAdded && p.Payload["fileName"] == "libretto.pdf"
			})).
			Return(nil).
			Once()

		doc, err := newSvc(d).AddDocument(context.Background(), staff, c.ID, "libretto.pdf", "application/pdf", strings.NewReader("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "abc", doc.FileID)
		assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), doc.UploadedAt)
	})

	t.Run("failed attach deletes the orphan blob", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
		d.documents.On("Upload", mock.Anything, mock.Anything).Return(&model.FileInfo{ID: "abc"}, nil).Once()
		d.customers.On("AddDocument", mock.Anything, c.ID, mock.Anything).Return(model.ErrCustomerNotFound).Once()
		d.documents.On("Delete", mock.Anything, "abc").Return(nil).Once()

		_, err := newSvc(d).AddDocument(context.Background(), staff, c.ID, "a.pdf", "application/pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestServiceRemoveDocument(t *testing.T) {
	t.Parallel()

	c := fakeCustomer()
	c.Documents = []model.Document{{FileID: "keep"}, {FileID: "drop"}}

	t.Run("unknown file", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()

		err := newSvc(d).RemoveDocument(context.Background(), staff, c.ID, "nope")
		assert.ErrorIs(t, err, model.ErrDocumentNotFound)
	})

	t.Run("removes entry then blob", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
		d.customers.On("RemoveDocument", mock.Anything, c.ID, "drop").Return(nil).Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				return p.Type == model.EventCustomerDocumentRemoved && p.Payload["fileId"] == "drop"
			})).
			Return(nil).
			Once()
		d.documents.On("Delete", mock.Anything, "drop").Return(nil).Once()

		require.NoError(t, newSvc(d).RemoveDocument(context.Background(), staff, c.ID, "drop"))
	})
}

func TestServiceOpenDocument(t *testing.T) {
	t.Parallel()

	c := fakeCustomer()
	c.Documents = []model.Document{{FileID: "doc1"}}

	t.Run("customer role without document permission", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()

		client := &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &c.ID}
		_, err := newSvc(d).OpenDocument(context.Background(), client, c.ID, "doc1")
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("staff opens", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, c.ID).Return(c, nil).Once()
		d.documents.
			On("Open", mock.Anything, "doc1").
			Return(&model.OpenedFile{Info: model.FileInfo{ID: "doc1"}, Body: io.NopCloser(strings.NewReader("x"))}, nil).
			Once()

		f, err := newSvc(d).OpenDocument(context.Background(), staff, c.ID, "doc1")
		require.NoError(t, err)
		assert.Equal(t, "doc1", f.Info.ID)
	})
}
