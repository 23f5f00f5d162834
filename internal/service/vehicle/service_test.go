package service

import (
	"context"
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
	vehicles     *mocks.MockVehicleRepository
	customers    *mocks.MockCustomerRepository
	partRequests *mocks.MockPartRequestRepository
	documents    *mocks.MockDocumentStore
	events       *mocks.MockEventRecorder
	tx           *mocks.InlineTxManager
}

func newDeps(t *testing.T) deps {
	return deps{
		vehicles:     mocks.NewMockVehicleRepository(t),
		customers:    mocks.NewMockCustomerRepository(t),
		partRequests: mocks.NewMockPartRequestRepository(t),
		documents:    mocks.NewMockDocumentStore(t),
		events:       mocks.NewMockEventRecorder(t),
		tx:           &mocks.InlineTxManager{},
	}
}

func newSvc(d deps) *service {
	return NewVehicleService(d.vehicles, d.customers, d.partRequests, d.documents, d.events, d.tx, time.Second, time.Second)
}

var staff = &model.User{ID: uuid.New(), Role: model.RoleStaff}

func fakeVehicle(customerID uuid.UUID) *model.Vehicle {
	return &model.Vehicle{
		ID:         uuid.New(),
		CustomerID: customerID,
		Plate:      "AB123CD",
		Make:       gofakeit.CarMaker(),
		Model:      gofakeit.CarModel(),
	}
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	newID := uuid.New()

	type testCase struct {
		name   string
		params model.CreateVehicleParams
		setup  func(d deps)
		assert func(t *testing.T, id uuid.UUID, err error)
	}

	tests := []testCase{
		{
			name:   "blank plate",
			params: model.CreateVehicleParams{CustomerID: customerID, Plate: " \t "},
			setup:  func(d deps) {},
			assert: func(t *testing.T, _ uuid.UUID, err error) {
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
		{
			name:   "missing customer",
			params: model.CreateVehicleParams{CustomerID: customerID, Plate: "ab 123 cd"},
			setup: func(d deps) {
				d.customers.On("CustomerByID", mock.Anything, customerID).Return(nil, model.ErrCustomerNotFound).Once()
			},
			assert: func(t *testing.T, _ uuid.UUID, err error) {
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},
		{
			name:   "duplicate plate",
			params: model.CreateVehicleParams{CustomerID: customerID, Plate: "ab 123 cd"},
			setup: func(d deps) {
				d.customers.On("CustomerByID", mock.Anything, customerID).Return(&model.Customer{ID: customerID}, nil).Once()
				d.vehicles.On("Create", mock.Anything, mock.Anything).Return(uuid.Nil, model.ErrPlateTaken).Once()
			},
			assert: func(t *testing.T, _ uuid.UUID, err error) {
				assert.ErrorIs(t, err, model.ErrConflict)
			},
		},
		{
			name:   "normalizes plate",
			params: model.CreateVehicleParams{CustomerID: customerID, Plate: " ab 123\tcd ", Make: "Fiat ", Model: " Panda"},
			setup: func(d deps) {
				d.customers.On("CustomerByID", mock.Anything, customerID).Return(&model.Customer{ID: customerID}, nil).Once()
				d.vehicles.
					On("Create", mock.Anything, mock.MatchedBy(func(v *model.Vehicle) bool {
						return v.Plate == "AB123CD" && v.Make == "Fiat" && v.Model == "Panda"
					})).
					Return(newID, nil).
					Once()
				d.events.
					On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
						return p.Type == model.EventVehicleCreated &&
							p.Payload["plate"] == "AB123CD" &&
							p.Payload["customerId"] == customerID.String()
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

			id, err := newSvc(d).Create(context.Background(), staff, tt.params)
			tt.assert(t, id, err)
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	v := fakeVehicle(uuid.New())
	plate := "zz 999 zz"
	km := 120000

	d := newDeps(t)
	d.vehicles.On("VehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
	d.vehicles.
		On("Update", mock.Anything, mock.MatchedBy(func(got *model.Vehicle) bool {
			return got.Plate == "ZZ999ZZ" && got.Km != nil && *got.Km == km
		})).
		Return(nil).
		Once()
	d.events.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, newSvc(d).Update(context.Background(), staff, v.ID, model.VehicleUpdate{Plate: &plate, Km: &km}))
}

func TestServiceRemove(t *testing.T) {
	t.Parallel()

	t.Run("referenced by part requests", func(t *testing.T) {
		t.Parallel()

		v := fakeVehicle(uuid.New())
		d := newDeps(t)
		d.vehicles.On("VehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
		d.partRequests.On("Exists", mock.Anything, model.PartRequestFilter{VehicleID: &v.ID}).Return(true, nil).Once()

		err := newSvc(d).Remove(context.Background(), staff, v.ID)
		assert.ErrorIs(t, err, model.ErrVehicleInUse)
	})

	t.Run("deletes registration blob", func(t *testing.T) {
		t.Parallel()

		v := fakeVehicle(uuid.New())
		v.RegistrationDoc = &model.RegistrationDoc{FileID: "reg"}
		d := newDeps(t)
		d.vehicles.On("VehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
		d.partRequests.On("Exists", mock.Anything, model.PartRequestFilter{VehicleID: &v.ID}).Return(false, nil).Once()
		d.vehicles.On("Delete", mock.Anything, v.ID).Return(nil).Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				return p.Type == model.EventVehicleDeleted && p.Payload["plate"] == v.Plate
			})).
			Return(nil).
			Once()
		d.documents.On("Delete", mock.Anything, "reg").Return(nil).Once()

		require.NoError(t, newSvc(d).Remove(context.Background(), staff, v.ID))
	})
}

func TestServiceUploadRegistrationDoc(t *testing.T) {
	t.Parallel()

	v := fakeVehicle(uuid.New())
	v.RegistrationDoc = &model.RegistrationDoc{FileID: "old"}

	d := newDeps(t)
	d.vehicles.On("VehicleByID", mock.Anything, v.ID).Return(v, nil).Twice()
	d.documents.On("Upload", mock.Anything, mock.Anything).Return(&model.FileInfo{ID: "new"}, nil).Once()
	d.vehicles.
		On("SetRegistrationDoc", mock.Anything, v.ID, mock.MatchedBy(func(doc *model.RegistrationDoc) bool {
			return doc.FileID == "new" && doc.FileName == "libretto.jpg"
		})).
		Return(nil).
		Once()
	d.events.
		On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
			return p.Type == model.EventVehicleDocUploaded
		})).
		Return(nil).
		Once()
	d.documents.On("Delete", mock.Anything, "old").Return(nil).Once()

	doc, err := newSvc(d).UploadRegistrationDoc(context.Background(), staff, v.ID, "libretto.jpg", "image/jpeg", strings.NewReader("jpg"))
	require.NoError(t, err)
	assert.Equal(t, "new", doc.FileID)
}

func TestServiceCustomerAccess(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	client := &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &customerID}

	type testCase struct {
		name   string
		perms  model.ClientPermissions
		call   func(svc *service, v *model.Vehicle) error
		setup  func(d deps, v *model.Vehicle)
		assert func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name:  "vehicles not shared",
			perms: model.ClientPermissions{CanViewParts: true},
			call: func(svc *service, v *model.Vehicle) error {
				_, err := svc.ListByCustomer(context.Background(), client, customerID)
				return err
			},
			setup: func(d deps, v *model.Vehicle) {},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrUnauthorized)
			},
		},
		{
			name:  "vehicles shared",
			perms: model.ClientPermissions{CanViewVehicles: true},
			call: func(svc *service, v *model.Vehicle) error {
				_, err := svc.ListByCustomer(context.Background(), client, customerID)
				return err
			},
			setup: func(d deps, v *model.Vehicle) {
				d.vehicles.On("ListByCustomer", mock.Anything, customerID).Return([]*model.Vehicle{v}, nil).Once()
			},
			assert: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:  "registration doc needs document permission",
			perms: model.ClientPermissions{CanViewVehicles: true},
			call: func(svc *service, v *model.Vehicle) error {
				_, err := svc.OpenRegistrationDoc(context.Background(), client, v.ID)
				return err
			},
			setup: func(d deps, v *model.Vehicle) {
				d.vehicles.On("VehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
			},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrUnauthorized)
			},
		},
		{
			name:  "registration doc opened",
			perms: model.ClientPermissions{CanViewDocuments: true},
			call: func(svc *service, v *model.Vehicle) error {
				f, err := svc.OpenRegistrationDoc(context.Background(), client, v.ID)
				if err == nil {
					return f.Body.Close()
				}
				return err
			},
			setup: func(d deps, v *model.Vehicle) {
				v.RegistrationDoc = &model.RegistrationDoc{FileID: "reg"}
				d.vehicles.On("VehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
				d.documents.
					On("Open", mock.Anything, "reg").
					Return(&model.OpenedFile{Body: io.NopCloser(strings.NewReader(""))}, nil).
					Once()
			},
			assert: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := fakeVehicle(customerID)
			d := newDeps(t)
			d.customers.
				On("CustomerByID", mock.Anything, customerID).
				Return(&model.Customer{ID: customerID, Sharing: model.Sharing{ClientPermissions: tt.perms}}, nil).
				Once()
			tt.setup(d, v)

			tt.assert(t, tt.call(newSvc(d), v))
		})
	}
}

func TestServiceGetMissing(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	d := newDeps(t)
	d.vehicles.On("VehicleByID", mock.Anything, id).Return(nil, model.ErrVehicleNotFound).Once()

	got, err := newSvc(d).Get(context.Background(), staff, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
