package service

import (
	"context"
	"errors"
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
	requests  *mocks.MockPartRequestRepository
	customers *mocks.MockCustomerRepository
	vehicles  *mocks.MockVehicleRepository
	parts     *mocks.MockPartRepository
	users     *mocks.MockUserRepository
	events    *mocks.MockEventRecorder
	outbox    *mocks.MockOutbox
	announcer *mocks.MockAnnouncer
	tx        *mocks.InlineTxManager
}

func newDeps(t *testing.T) deps {
	return deps{
		requests:  mocks.NewMockPartRequestRepository(t),
		customers: mocks.NewMockCustomerRepository(t),
		vehicles:  mocks.NewMockVehicleRepository(t),
		parts:     mocks.NewMockPartRepository(t),
		users:     mocks.NewMockUserRepository(t),
		events:    mocks.NewMockEventRecorder(t),
		outbox:    mocks.NewMockOutbox(t),
		announcer: mocks.NewMockAnnouncer(t),
		tx:        &mocks.InlineTxManager{},
	}
}

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func newSvc(d deps) *service {
	svc := NewPartRequestService(
		d.requests, d.customers, d.vehicles, d.parts, d.users,
		d.events, d.outbox, d.announcer, d.tx,
		time.Second, time.Second,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

var staff = &model.User{ID: uuid.New(), Name: "Luca", Role: model.RoleStaff}

type fixture struct {
	customer *model.Customer
	vehicle  *model.Vehicle
	part     *model.Part
}

func newFixture(shared bool) fixture {
	c := &model.Customer{
		ID:          uuid.New(),
		DisplayName: "Rossi Mario",
		Contacts:    model.Contacts{Email: gofakeit.Email(), Phone: "3331234567"},
	}
	if shared {
		c.Sharing = model.Sharing{
			SharedWithClientUserIDs: []uuid.UUID{uuid.New()},
			ClientPermissions:       model.ClientPermissions{CanViewParts: true},
		}
	}
	return fixture{
		customer: c,
		vehicle:  &model.Vehicle{ID: uuid.New(), CustomerID: c.ID, Plate: "AB123CD", Make: "Fiat", Model: "Panda"},
		part:     &model.Part{ID: uuid.New(), Name: "Filtro aria", UnitPrice: lo.ToPtr(int64(1800)), UnitCost: lo.ToPtr(int64(900))},
	}
}

func TestValidateItems(t *testing.T) {
	t.Parallel()

	partID := uuid.New()

	tests := []struct {
		name  string
		items []model.RequestedItem
		ok    bool
	}{
		{name: "empty", items: nil},
		{name: "zero qty", items: []model.RequestedItem{{PartID: &partID, Qty: 0}}},
		{name: "negative qty", items: []model.RequestedItem{{FreeTextName: "bullone", Qty: -1}}},
		{name: "neither part nor name", items: []model.RequestedItem{{FreeTextName: "  ", Qty: 1}}},
		{name: "catalog part", items: []model.RequestedItem{{PartID: &partID, Qty: 2}}, ok: true},
		{name: "free text", items: []model.RequestedItem{{FreeTextName: "tergicristalli", Qty: 1}}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateItems(tt.items)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		shared bool
		params func(f fixture) model.CreatePartRequestParams
		setup  func(d deps, f fixture)
		assert func(t *testing.T, id uuid.UUID, err error, d deps)
	}

	newID := uuid.New()

	tests := []testCase{
		{
			name: "vehicle of another customer",
			params: func(f fixture) model.CreatePartRequestParams {
				return model.CreatePartRequestParams{
					CustomerID: uuid.New(),
					VehicleID:  f.vehicle.ID,
					Items:      []model.RequestedItem{{FreeTextName: "x", Qty: 1}},
				}
			},
			setup: func(d deps, f fixture) {
				d.customers.On("CustomerByID", mock.Anything, mock.Anything).Return(&model.Customer{ID: uuid.New()}, nil).Once()
				d.vehicles.On("VehicleByID", mock.Anything, f.vehicle.ID).Return(f.vehicle, nil).Once()
			},
			assert: func(t *testing.T, _ uuid.UUID, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrValidation)
				d.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name: "missing customer",
			params: func(f fixture) model.CreatePartRequestParams {
				return model.CreatePartRequestParams{
					CustomerID: f.customer.ID,
					VehicleID:  f.vehicle.ID,
					Items:      []model.RequestedItem{{FreeTextName: "x", Qty: 1}},
				}
			},
			setup: func(d deps, f fixture) {
				d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(nil, model.ErrCustomerNotFound).Once()
			},
			assert: func(t *testing.T, _ uuid.UUID, err error, d deps) {
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},
		{
			name:   "snapshots prices and skips notification when not shared",
			shared: false,
			params: func(f fixture) model.CreatePartRequestParams {
				return model.CreatePartRequestParams{
					CustomerID: f.customer.ID,
					VehicleID:  f.vehicle.ID,
					Items: []model.RequestedItem{
						{PartID: &f.part.ID, Qty: 2},
						{FreeTextName: "kit frizione", Qty: 1},
					},
				}
			},
			setup: func(d deps, f fixture) {
				d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
				d.vehicles.On("VehicleByID", mock.Anything, f.vehicle.ID).Return(f.vehicle, nil).Once()
				d.parts.On("List", mock.Anything, model.PartFilter{IDs: []uuid.UUID{f.part.ID}}).Return([]*model.Part{f.part}, nil).Once()
				d.requests.
					On("Create", mock.Anything, mock.MatchedBy(func(pr *model.PartRequest) bool {
						price, _ := pr.Items[0].Snapshot.UnitPrice()
						cost, _ := pr.Items[0].Snapshot.UnitCost()
						_, freeHasPrice := pr.Items[1].Snapshot.UnitPrice()
						return pr.Status == model.StatusToOrder &&
							len(pr.Timeline) == 1 &&
							pr.Timeline[0].ByUserID == staff.ID &&
							pr.Timeline[0].At.Equal(fixedNow) &&
							price == 1800 && cost == 900 && !freeHasPrice
					})).
					Return(newID, nil).
					Once()
				d.events.
					On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
						return p.Type == model.EventPartRequestCreated && p.Payload["itemCount"] == 2
					})).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, id uuid.UUID, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, newID, id)
				d.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
				d.announcer.AssertNotCalled(t, "Announce", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "frozen snapshot is kept",
			shared: false,
			params: func(f fixture) model.CreatePartRequestParams {
				return model.CreatePartRequestParams{
					CustomerID: f.customer.ID,
					VehicleID:  f.vehicle.ID,
					Items: []model.RequestedItem{
						{PartID: &f.part.ID, Qty: 1, Snapshot: model.NewPriceSnapshot(lo.ToPtr(int64(1500)), nil)},
					},
				}
			},
			setup: func(d deps, f fixture) {
				d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
				d.vehicles.On("VehicleByID", mock.Anything, f.vehicle.ID).Return(f.vehicle, nil).Once()
				d.parts.On("List", mock.Anything, mock.Anything).Return([]*model.Part{f.part}, nil).Once()
				d.requests.
					On("Create", mock.Anything, mock.MatchedBy(func(pr *model.PartRequest) bool {
						price, _ := pr.Items[0].Snapshot.UnitPrice()
						cost, _ := pr.Items[0].Snapshot.UnitCost()
						return price == 1500 && cost == 900
					})).
					Return(newID, nil).
					Once()
				d.events.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, _ uuid.UUID, err error, d deps) {
				require.NoError(t, err)
			},
		},
		{
			name:   "shared customer gets notified and announced after commit",
			shared: true,
			params: func(f fixture) model.CreatePartRequestParams {
				return model.CreatePartRequestParams{
					CustomerID: f.customer.ID,
					VehicleID:  f.vehicle.ID,
					Items:      []model.RequestedItem{{FreeTextName: "batteria", Qty: 1}},
				}
			},
			setup: func(d deps, f fixture) {
				d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
				d.vehicles.On("VehicleByID", mock.Anything, f.vehicle.ID).Return(f.vehicle, nil).Once()
				d.requests.On("Create", mock.Anything, mock.Anything).Return(newID, nil).Once()
				d.events.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

				n := &model.Notification{ID: uuid.New(), Status: model.NotificationPending}
				d.outbox.
					On("Enqueue", mock.Anything, mock.MatchedBy(func(p model.EnqueueParams) bool {
						return p.Channel == model.ChannelEmail &&
							p.Recipient == f.customer.Contacts.Email &&
							p.TemplateKey == model.TemplatePartRequestCreated &&
							p.Data["status"] == "DA_ORDINARE" &&
							p.Data["requestId"] == newID.String() &&
							p.Data["customerName"] == "Rossi Mario" &&
							p.Data["vehiclePlate"] == "AB123CD"
					})).
					Return(n, nil).
					Once()
				d.announcer.On("Announce", mock.Anything, *n).Return(errors.New("broker down")).Once()
			},
			assert: func(t *testing.T, id uuid.UUID, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, newID, id)
			},
		},
		{
			name:   "shared customer without email still gets a row",
			shared: true,
			params: func(f fixture) model.CreatePartRequestParams {
				return model.CreatePartRequestParams{
					CustomerID: f.customer.ID,
					VehicleID:  f.vehicle.ID,
					Items:      []model.RequestedItem{{FreeTextName: "batteria", Qty: 1}},
				}
			},
			setup: func(d deps, f fixture) {
				f.customer.Contacts.Email = ""
				d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
				d.vehicles.On("VehicleByID", mock.Anything, f.vehicle.ID).Return(f.vehicle, nil).Once()
				d.requests.On("Create", mock.Anything, mock.Anything).Return(newID, nil).Once()
				d.events.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

				n := &model.Notification{ID: uuid.New(), Status: model.NotificationPending}
				d.outbox.
					On("Enqueue", mock.Anything, mock.MatchedBy(func(p model.EnqueueParams) bool {
						return p.Recipient == "" && p.TemplateKey == model.TemplatePartRequestCreated
					})).
					Return(n, nil).
					Once()
				d.announcer.On("Announce", mock.Anything, *n).Return(nil).Once()
			},
			assert: func(t *testing.T, id uuid.UUID, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, newID, id)
			},
		},
		{
			name:   "outbox failure aborts the mutation",
			shared: true,
			params: func(f fixture) model.CreatePartRequestParams {
				return model.CreatePartRequestParams{
					CustomerID: f.customer.ID,
					VehicleID:  f.vehicle.ID,
					Items:      []model.RequestedItem{{FreeTextName: "batteria", Qty: 1}},
				}
			},
			setup: func(d deps, f fixture) {
				d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
				d.vehicles.On("VehicleByID", mock.Anything, f.vehicle.ID).Return(f.vehicle, nil).Once()
				d.requests.On("Create", mock.Anything, mock.Anything).Return(newID, nil).Once()
				d.events.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
				d.outbox.On("Enqueue", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed")).Once()
			},
			assert: func(t *testing.T, _ uuid.UUID, err error, d deps) {
				require.Error(t, err)
				d.announcer.AssertNotCalled(t, "Announce", mock.Anything, mock.Anything)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(tt.shared)
			d := newDeps(t)
			tt.setup(d, f)

			id, err := newSvc(d).Create(context.Background(), staff, tt.params(f))
			tt.assert(t, id, err, d)
		})
	}
}

func TestServiceCreateRequiresStaff(t *testing.T) {
	t.Parallel()

	_, err := newSvc(newDeps(t)).Create(context.Background(), &model.User{ID: uuid.New(), Role: model.RoleCustomer}, model.CreatePartRequestParams{})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestServiceSetStatus(t *testing.T) {
	t.Parallel()

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		err := newSvc(newDeps(t)).SetStatus(context.Background(), staff, uuid.New(), "PERSO")
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("missing request", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, id).Return(nil, model.ErrPartRequestNotFound).Once()

		err := newSvc(d).SetStatus(context.Background(), staff, id, model.StatusOrdered)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("any target is accepted and timeline grows", func(t *testing.T) {
		t.Parallel()

		f := newFixture(true)
		pr := &model.PartRequest{
			ID:         uuid.New(),
			CustomerID: f.customer.ID,
			VehicleID:  f.vehicle.ID,
			Status:     model.StatusCancelled,
			Timeline:   []model.TimelineEntry{{Status: model.StatusCancelled, ByUserID: staff.ID}},
		}

		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
		d.requests.
			On("Update", mock.Anything, mock.MatchedBy(func(got *model.PartRequest) bool {
				last := got.Timeline[len(got.Timeline)-1]
				return got.Status == model.StatusDelivered &&
					len(got.Timeline) == 2 &&
					last.Status == model.StatusDelivered &&
					last.At.Equal(fixedNow)
			})).
			Return(nil).
			Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				return p.Type == model.EventPartRequestStatusChanged &&
					p.Payload["oldStatus"] == "ANNULLATO" &&
					p.Payload["newStatus"] == "CONSEGNATO"
			})).
			Return(nil).
			Once()
		d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
		d.vehicles.On("VehicleByID", mock.Anything, f.vehicle.ID).Return(nil, model.ErrVehicleNotFound).Once()

		n := &model.Notification{ID: uuid.New()}
		d.outbox.
			On("Enqueue", mock.Anything, mock.MatchedBy(func(p model.EnqueueParams) bool {
				return p.TemplateKey == model.TemplatePartRequestStatus &&
					p.Data["oldStatus"] == "ANNULLATO" &&
					p.Data["newStatus"] == "CONSEGNATO" &&
					p.Data["vehiclePlate"] == model.UnknownName
			})).
			Return(n, nil).
			Once()
		d.announcer.On("Announce", mock.Anything, *n).Return(nil).Once()

		require.NoError(t, newSvc(d).SetStatus(context.Background(), staff, pr.ID, model.StatusDelivered))
	})

	t.Run("customer without email is skipped", func(t *testing.T) {
		t.Parallel()

		f := newFixture(true)
		f.customer.Contacts.Email = ""
		pr := &model.PartRequest{ID: uuid.New(), CustomerID: f.customer.ID, VehicleID: f.vehicle.ID, Status: model.StatusToOrder}

		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
		d.requests.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		d.events.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
		d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
		d.vehicles.On("VehicleByID", mock.Anything, f.vehicle.ID).Return(f.vehicle, nil).Once()

		require.NoError(t, newSvc(d).SetStatus(context.Background(), staff, pr.ID, model.StatusOrdered))
		d.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})
}

func TestServiceAllowedNext(t *testing.T) {
	t.Parallel()

	svc := newSvc(newDeps(t))

	tests := map[model.PartRequestStatus][]model.PartRequestStatus{
		model.StatusToOrder:   {model.StatusOrdered, model.StatusCancelled},
		model.StatusOrdered:   {model.StatusArrived, model.StatusCancelled},
		model.StatusArrived:   {model.StatusDelivered, model.StatusCancelled},
		model.StatusDelivered: {},
		model.StatusCancelled: {},
	}

	for status, want := range tests {
		got, err := svc.AllowedNext(status)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(status))
	}

	_, err := svc.AllowedNext("BOH")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("invalid items", func(t *testing.T) {
		t.Parallel()

		items := []model.RequestedItem{{FreeTextName: "x", Qty: 0}}
		err := newSvc(newDeps(t)).Update(context.Background(), staff, uuid.New(), model.PartRequestUpdate{Items: &items})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("patches notes only", func(t *testing.T) {
		t.Parallel()

		pr := &model.PartRequest{ID: uuid.New(), Status: model.StatusOrdered, Items: []model.RequestedItem{{FreeTextName: "x", Qty: 1}}}
		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
		d.requests.
			On("Update", mock.Anything, mock.MatchedBy(func(got *model.PartRequest) bool {
				return got.Status == model.StatusOrdered && *got.Notes == "urgente" && len(got.Items) == 1
			})).
			Return(nil).
			Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				_, hasItems := p.Payload["requestedItems"]
				return p.Type == model.EventPartRequestUpdated && p.Payload["notes"] == "urgente" && !hasItems
			})).
			Return(nil).
			Once()

		require.NoError(t, newSvc(d).Update(context.Background(), staff, pr.ID, model.PartRequestUpdate{Notes: lo.ToPtr("urgente")}))
	})

	t.Run("keeps frozen snapshots when the catalog price changed", func(t *testing.T) {
		t.Parallel()

		f := newFixture(false)
		pr := &model.PartRequest{
			ID:     uuid.New(),
			Status: model.StatusOrdered,
			Items: []model.RequestedItem{{
				PartID:   &f.part.ID,
				Qty:      1,
				Snapshot: model.NewPriceSnapshot(lo.ToPtr(int64(1800)), lo.ToPtr(int64(900))),
			}},
		}
		newPart := &model.Part{ID: uuid.New(), Name: "Pastiglie freno", UnitPrice: lo.ToPtr(int64(4200)), UnitCost: lo.ToPtr(int64(2100))}

		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
		d.parts.On("List", mock.Anything, model.PartFilter{IDs: []uuid.UUID{newPart.ID}}).Return([]*model.Part{newPart}, nil).Once()
		d.requests.
			On("Update", mock.Anything, mock.MatchedBy(func(got *model.PartRequest) bool {
				if len(got.Items) != 2 {
					return false
				}
				oldPrice, _ := got.Items[0].Snapshot.UnitPrice()
				oldCost, _ := got.Items[0].Snapshot.UnitCost()
				newPrice, _ := got.Items[1].Snapshot.UnitPrice()
				return got.Items[0].Qty == 2 && oldPrice == 1800 && oldCost == 900 && newPrice == 4200
			})).
			Return(nil).
			Once()
		d.events.
			On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
				items, ok := p.Payload["requestedItems"].([]map[string]any)
				return ok && len(items) == 2 &&
					items[0]["partId"] == f.part.ID.String() &&
					items[0]["qty"] == 2 &&
					items[0]["unitPriceSnapshot"] == int64(1800)
			})).
			Return(nil).
			Once()

		items := []model.RequestedItem{
			{PartID: &f.part.ID, Qty: 2},
			{PartID: &newPart.ID, Qty: 1},
		}
		require.NoError(t, newSvc(d).Update(context.Background(), staff, pr.ID, model.PartRequestUpdate{Items: &items}))
	})

	t.Run("does not consult the catalog for parts already on the request", func(t *testing.T) {
		t.Parallel()

		f := newFixture(false)
		pr := &model.PartRequest{
			ID:    uuid.New(),
			Items: []model.RequestedItem{{PartID: &f.part.ID, Qty: 1, Snapshot: model.NewPriceSnapshot(lo.ToPtr(int64(1800)), nil)}},
		}

		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
		d.requests.
			On("Update", mock.Anything, mock.MatchedBy(func(got *model.PartRequest) bool {
				_, hasCost := got.Items[0].Snapshot.UnitCost()
				price, _ := got.Items[0].Snapshot.UnitPrice()
				return price == 1800 && !hasCost
			})).
			Return(nil).
			Once()
		d.events.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

		items := []model.RequestedItem{{PartID: &f.part.ID, Qty: 3}}
		require.NoError(t, newSvc(d).Update(context.Background(), staff, pr.ID, model.PartRequestUpdate{Items: &items}))
		d.parts.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestServiceRemove(t *testing.T) {
	t.Parallel()

	pr := &model.PartRequest{ID: uuid.New(), Status: model.StatusArrived}
	d := newDeps(t)
	d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
	d.requests.On("Delete", mock.Anything, pr.ID).Return(nil).Once()
	d.events.
		On("Record", mock.Anything, mock.MatchedBy(func(p model.RecordEventParams) bool {
			return p.Type == model.EventPartRequestDeleted && p.Payload["status"] == "ARRIVATO"
		})).
		Return(nil).
		Once()

	require.NoError(t, newSvc(d).Remove(context.Background(), staff, pr.ID))
}

func expectLookups(d deps, f fixture, users ...*model.User) {
	d.customers.On("List", mock.Anything, model.CustomerFilter{IDs: []uuid.UUID{f.customer.ID}}).Return([]*model.Customer{f.customer}, nil).Once()
	d.vehicles.On("VehiclesByIDs", mock.Anything, []uuid.UUID{f.vehicle.ID}).Return([]*model.Vehicle{f.vehicle}, nil).Once()
	d.users.On("UsersByIDs", mock.Anything, mock.Anything).Return(users, nil).Maybe()
}

func TestServiceGet(t *testing.T) {
	t.Parallel()

	f := newFixture(true)
	missingPart := uuid.New()
	ghost := uuid.New()
	pr := &model.PartRequest{
		ID:         uuid.New(),
		CustomerID: f.customer.ID,
		VehicleID:  f.vehicle.ID,
		Status:     model.StatusOrdered,
		Supplier:   lo.ToPtr("Ricambi Spa"),
		Notes:      lo.ToPtr("internal"),
		Items: []model.RequestedItem{
			{PartID: &f.part.ID, Qty: 1, Snapshot: model.NewPriceSnapshot(lo.ToPtr(int64(1800)), lo.ToPtr(int64(900)))},
			{PartID: &missingPart, Qty: 1},
			{Qty: 1},
		},
		Timeline: []model.TimelineEntry{
			{Status: model.StatusToOrder, ByUserID: staff.ID},
			{Status: model.StatusOrdered, ByUserID: ghost},
		},
	}

	t.Run("staff sees everything enriched", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
		expectLookups(d, f, staff)
		d.parts.On("List", mock.Anything, mock.Anything).Return([]*model.Part{f.part}, nil).Once()

		got, err := newSvc(d).Get(context.Background(), staff, pr.ID)
		require.NoError(t, err)

		assert.Equal(t, "Rossi Mario", got.CustomerName)
		assert.Equal(t, "AB123CD", got.VehiclePlate)
		assert.Equal(t, "Fiat Panda", got.VehicleMakeModel)
		assert.Equal(t, "Filtro aria", got.Items[0].PartName)
		assert.Equal(t, model.PartNameNotFound, got.Items[1].PartName)
		assert.Equal(t, model.PartNameCustom, got.Items[2].PartName)
		assert.Equal(t, "Luca", got.Timeline[0].UserName)
		assert.Equal(t, model.UnknownUserName, got.Timeline[1].UserName)
		_, hasCost := got.Items[0].Snapshot.UnitCost()
		assert.True(t, hasCost)
		assert.NotNil(t, got.Supplier)
	})

	t.Run("customer role gets a narrowed view", func(t *testing.T) {
		t.Parallel()

		client := &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &f.customer.ID}
		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
		d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
		expectLookups(d, f, staff)
		d.parts.On("List", mock.Anything, mock.Anything).Return([]*model.Part{f.part}, nil).Once()

		got, err := newSvc(d).Get(context.Background(), client, pr.ID)
		require.NoError(t, err)

		_, hasCost := got.Items[0].Snapshot.UnitCost()
		price, hasPrice := got.Items[0].Snapshot.UnitPrice()
		assert.False(t, hasCost)
		assert.True(t, hasPrice)
		assert.Equal(t, int64(1800), price)
		assert.Nil(t, got.Supplier)
		assert.Nil(t, got.Notes)
	})

	t.Run("customer role without parts permission", func(t *testing.T) {
		t.Parallel()

		restricted := *f.customer
		restricted.Sharing.ClientPermissions = model.ClientPermissions{CanViewVehicles: true}
		client := &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &f.customer.ID}

		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, pr.ID).Return(pr, nil).Once()
		d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(&restricted, nil).Once()

		_, err := newSvc(d).Get(context.Background(), client, pr.ID)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("missing customer and vehicle fall back", func(t *testing.T) {
		t.Parallel()

		orphan := &model.PartRequest{
			ID:         uuid.New(),
			CustomerID: uuid.New(),
			VehicleID:  uuid.New(),
			Status:     model.StatusToOrder,
			Items:      []model.RequestedItem{{FreeTextName: "olio", Qty: 1}},
		}
		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, orphan.ID).Return(orphan, nil).Once()
		d.customers.On("List", mock.Anything, mock.Anything).Return([]*model.Customer{}, nil).Once()
		d.vehicles.On("VehiclesByIDs", mock.Anything, mock.Anything).Return([]*model.Vehicle{}, nil).Once()
		d.users.On("UsersByIDs", mock.Anything, mock.Anything).Return([]*model.User{}, nil).Maybe()

		got, err := newSvc(d).Get(context.Background(), staff, orphan.ID)
		require.NoError(t, err)
		assert.Equal(t, model.UnknownName, got.CustomerName)
		assert.Equal(t, model.UnknownName, got.VehiclePlate)
		assert.Empty(t, got.VehicleMakeModel)
	})

	t.Run("missing request is nil", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		d := newDeps(t)
		d.requests.On("PartRequestByID", mock.Anything, id).Return(nil, model.ErrPartRequestNotFound).Once()

		got, err := newSvc(d).Get(context.Background(), staff, id)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	f := newFixture(true)
	f.customer.DisplayName = "Ştefan Müller"
	pr := &model.PartRequest{ID: uuid.New(), CustomerID: f.customer.ID, VehicleID: f.vehicle.ID, Status: model.StatusToOrder}

	t.Run("case folded search on customer name", func(t *testing.T) {
		t.Parallel()

		filter := model.PartRequestFilter{SearchText: "MÜLLER"}
		d := newDeps(t)
		d.requests.On("List", mock.Anything, filter).Return([]*model.PartRequest{pr}, nil).Once()
		expectLookups(d, f)

		got, err := newSvc(d).List(context.Background(), staff, filter)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, pr.ID, got[0].ID)
	})

	t.Run("search on plate with no match", func(t *testing.T) {
		t.Parallel()

		filter := model.PartRequestFilter{SearchText: "zz999"}
		d := newDeps(t)
		d.requests.On("List", mock.Anything, filter).Return([]*model.PartRequest{pr}, nil).Once()
		expectLookups(d, f)

		got, err := newSvc(d).List(context.Background(), staff, filter)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("customer role is pinned to own customer", func(t *testing.T) {
		t.Parallel()

		client := &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &f.customer.ID}
		other := uuid.New()

		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, f.customer.ID).Return(f.customer, nil).Once()
		d.requests.On("List", mock.Anything, model.PartRequestFilter{CustomerID: &f.customer.ID}).Return([]*model.PartRequest{}, nil).Once()

		got, err := newSvc(d).List(context.Background(), client, model.PartRequestFilter{CustomerID: &other})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unlinked customer role gets nothing", func(t *testing.T) {
		t.Parallel()

		got, err := newSvc(newDeps(t)).List(context.Background(), &model.User{ID: uuid.New(), Role: model.RoleCustomer}, model.PartRequestFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("customer role on a deleted customer", func(t *testing.T) {
		t.Parallel()

		gone := uuid.New()
		d := newDeps(t)
		d.customers.On("CustomerByID", mock.Anything, gone).Return(nil, model.ErrCustomerNotFound).Once()

		_, err := newSvc(d).List(context.Background(), &model.User{ID: uuid.New(), Role: model.RoleCustomer, CustomerID: &gone}, model.PartRequestFilter{})
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})
}
