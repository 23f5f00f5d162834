package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/mocks"
)

type deps struct {
	parts        *mocks.MockPartRepository
	suppliers    *mocks.MockSupplierRepository
	vehicles     *mocks.MockVehicleRepository
	partRequests *mocks.MockPartRequestRepository
	events       *mocks.MockEventRecorder
	tx           *mocks.InlineTxManager
}

func newDeps(t *testing.T) deps {
	return deps{
		parts:        mocks.NewMockPartRepository(t),
		suppliers:    mocks.NewMockSupplierRepository(t),
		vehicles:     mocks.NewMockVehicleRepository(t),
		partRequests: mocks.NewMockPartRequestRepository(t),
		events:       mocks.NewMockEventRecorder(t),
		tx:           &mocks.InlineTxManager{},
	}
}

func newSvc(d deps) *service {
	return NewPartService(d.parts, d.suppliers, d.vehicles, d.partRequests, d.events, d.tx, time.Second, time.Second)
}

var staff = &model.User{ID: uuid.New(), Role: model.RoleStaff}

func TestServiceList(t *testing.T) {
	t.Parallel()

	supplierID := uuid.New()
	low := &model.Part{ID: uuid.New(), Name: "Filtro olio", SupplierID: &supplierID, StockQty: 2, MinStockQty: lo.ToPtr(2)}
	plenty := &model.Part{ID: uuid.New(), Name: "Candela", StockQty: 40, MinStockQty: lo.ToPtr(5)}
	untracked := &model.Part{ID: uuid.New(), Name: gofakeit.ProductName()}

	d := newDeps(t)
	d.parts.On("List", mock.Anything, model.PartFilter{SearchText: "filtro"}).Return([]*model.Part{low, plenty, untracked}, nil).Once()
	d.suppliers.
		On("List", mock.Anything, false, []uuid.UUID{supplierID}).
		Return([]*model.Supplier{{ID: supplierID, CompanyName: "Ricambi Spa"}}, nil).
		Once()

	got, err := newSvc(d).List(context.Background(), staff, " filtro ")
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].SupplierName)
	assert.Equal(t, "Ricambi Spa", *got[0].SupplierName)
	assert.True(t, got[0].IsLowStock)
	assert.False(t, got[1].IsLowStock)
	assert.False(t, got[2].IsLowStock)
	assert.Nil(t, got[2].SupplierName)
}

func TestServiceListByVehicle(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	vehicleID := uuid.New()

	t.Run("customer role on someone else's vehicle", func(t *testing.T) {
		t.Parallel()

		other := uuid.New()
		d := newDeps(t)
		d.vehicles.On("VehicleByID", mock.Anything, vehicleID).Return(&model.Vehicle{ID: vehicleID, CustomerID: customerID}, nil).Once()

		_, err := newSvc(d).ListByVehicle(context.Background(), &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &other}, vehicleID)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("customer role on own vehicle", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.vehicles.On("VehicleByID", mock.Anything, vehicleID).Return(&model.Vehicle{ID: vehicleID, CustomerID: customerID}, nil).Once()
		d.parts.On("List", mock.Anything, model.PartFilter{VehicleID: &vehicleID}).Return([]*model.Part{}, nil).Once()

		got, err := newSvc(d).ListByVehicle(context.Background(), &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &customerID}, vehicleID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		actor  *model.User
		params model.CreatePartParams
		setup  func(d deps)
		assert func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name:   "customer role",
			actor:  &model.User{ID: uuid.New(), Role: model.RoleCustomer},
			params: model.CreatePartParams{Name: "x"},
			setup:  func(d deps) {},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrUnauthorized)
			},
		},
		{
			name:   "blank name",
			actor:  staff,
			params: model.CreatePartParams{Name: "  "},
			setup:  func(d deps) {},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
		{
			name:   "negative stock",
			actor:  staff,
			params: model.CreatePartParams{Name: "Pastiglie", StockQty: -1},
			setup:  func(d deps) {},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrValidation)
			},
		},
		{
			name:   "created",
			actor:  staff,
			params: model.CreatePartParams{Name: " Pastiglie ", StockQty: 4, UnitPrice: lo.ToPtr(int64(2500))},
			setup: func(d deps) {
				d.parts.
					On("Create", mock.Anything, mock.MatchedBy(func(p *model.Part) bool {
						return p.Name == "Pastiglie" && p.StockQty == 4 && *p.UnitPrice == 2500
					})).
					Return(uuid.New(), nil).
					Once()
				d.events.
					On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
						return p.Type == model.EventPartCreated
					})).
					Return(nil).
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

			d := newDeps(t)
			tt.setup(d)

			_, err := newSvc(d).Create(context.Background(), tt.actor, tt.params)
			tt.assert(t, err)
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("negative stock", func(t *testing.T) {
		t.Parallel()

		err := newSvc(newDeps(t)).Update(context.Background(), staff, uuid.New(), model.PartUpdate{StockQty: lo.ToPtr(-3)})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("no fields skips the write", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		d := newDeps(t)
		d.parts.On("PartByID", mock.Anything, id).Return(&model.Part{ID: id, Name: "x"}, nil).Once()

		require.NoError(t, newSvc(d).Update(context.Background(), staff, id, model.PartUpdate{}))
	})

	t.Run("patches given fields", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		d := newDeps(t)
		d.parts.On("PartByID", mock.Anything, id).Return(&model.Part{ID: id, Name: "x", StockQty: 1}, nil).Once()
		d.parts.
			On("Update", mock.Anything, mock.MatchedBy(func(p *model.Part) bool {
				return p.Name == "x" && p.StockQty == 9 && *p.Location == "A3"
			})).
			Return(nil).
			Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				fields, _ := p.Payload["fields"].([]string)
				return assert.ObjectsAreEqual([]string{"stockQty", "location"}, fields)
			})).
			Return(nil).
			Once()

		require.NoError(t, newSvc(d).Update(context.Background(), staff, id, model.PartUpdate{StockQty: lo.ToPtr(9), Location: lo.ToPtr("A3")}))
	})
}

func TestServiceAdjustStock(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	t.Run("below zero", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.parts.On("AdjustStock", mock.Anything, id, -10).Return(0, 0, model.Invalid("stock cannot go below zero")).Once()

		_, err := newSvc(d).AdjustStock(context.Background(), staff, model.AdjustStockParams{PartID: id, Delta: -10})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("records old and new quantities", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.parts.On("AdjustStock", mock.Anything, id, -2).Return(5, 3, nil).Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				return p.Type == model.EventPartStockAdjusted &&
					p.Payload["oldQty"] == 5 &&
					p.Payload["newQty"] == 3 &&
					p.Payload["delta"] == -2 &&
					p.Payload["reason"] == "used on job"
			})).
			Return(nil).
			Once()

		res, err := newSvc(d).AdjustStock(context.Background(), staff, model.AdjustStockParams{PartID: id, Delta: -2, Reason: lo.ToPtr("used on job")})
		require.NoError(t, err)
		assert.Equal(t, 5, res.OldStockQty)
		assert.Equal(t, 3, res.NewStockQty)
	})
}

func TestServiceRemove(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	t.Run("used by part requests", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.parts.On("PartByID", mock.Anything, id).Return(&model.Part{ID: id}, nil).Once()
		d.partRequests.On("Exists", mock.Anything, model.PartRequestFilter{PartID: &id}).Return(true, nil).Once()

		err := newSvc(d).Remove(context.Background(), staff, id)
		assert.ErrorIs(t, err, model.ErrPartInUse)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.parts.On("PartByID", mock.Anything, id).Return(nil, model.ErrPartNotFound).Once()

		err := newSvc(d).Remove(context.Background(), staff, id)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
