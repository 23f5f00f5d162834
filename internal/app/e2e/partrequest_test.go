//go:build integration

package e2e

import (
	"context"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/samber/lo"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/simoilconte/Bensine/internal/model"
	customerrepo "github.com/simoilconte/Bensine/internal/repository/customer"
	eventrepo "github.com/simoilconte/Bensine/internal/repository/event"
	notificationrepo "github.com/simoilconte/Bensine/internal/repository/notification"
	partrepo "github.com/simoilconte/Bensine/internal/repository/part"
	partrequestrepo "github.com/simoilconte/Bensine/internal/repository/partrequest"
	userrepo "github.com/simoilconte/Bensine/internal/repository/user"
	vehiclerepo "github.com/simoilconte/Bensine/internal/repository/vehicle"
	eventsvc "github.com/simoilconte/Bensine/internal/service/event"
	notificationsvc "github.com/simoilconte/Bensine/internal/service/notification"
	partrequestsvc "github.com/simoilconte/Bensine/internal/service/partrequest"
	ntfproducer "github.com/simoilconte/Bensine/internal/service/producer/notification"
	"github.com/simoilconte/Bensine/platform/db/txmanager"
)

type partRequestService interface {
	Create(ctx context.Context, actor *model.User, params model.CreatePartRequestParams) (uuid.UUID, error)
	SetStatus(ctx context.Context, actor *model.User, id uuid.UUID, status model.PartRequestStatus) error
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.PartRequestView, error)
	List(ctx context.Context, actor *model.User, f model.PartRequestFilter) ([]model.PartRequestView, error)
	Remove(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type (
	userStore interface {
		Create(ctx context.Context, u *model.User) (uuid.UUID, error)
	}
	customerStore interface {
		Create(ctx context.Context, c *model.Customer) (uuid.UUID, error)
		SetSharing(ctx context.Context, id uuid.UUID, s model.Sharing) error
	}
	vehicleStore interface {
		Create(ctx context.Context, v *model.Vehicle) (uuid.UUID, error)
	}
	partStore interface {
		Create(ctx context.Context, p *model.Part) (uuid.UUID, error)
	}
	outboxReader interface {
		ListByStatus(ctx context.Context, status model.NotificationStatus) ([]*model.Notification, error)
	}
	eventReader interface {
		List(ctx context.Context, f model.EventFilter) ([]*model.Event, error)
	}
)

var _ = Describe("Part request lifecycle", func() {
	var (
		ctx context.Context

		users     userStore
		customers customerStore
		vehicles  vehicleStore
		parts     partStore
		outbox    outboxReader
		events    eventReader

		svc partRequestService

		staff      *model.User
		customerID uuid.UUID
		vehicleID  uuid.UUID
		partID     uuid.UUID
	)

	createUser := func(role model.Role, customerID *uuid.UUID) *model.User {
		u := &model.User{
			Email:        gofakeit.Email(),
			Name:         gofakeit.Name(),
			Role:         role,
			CustomerID:   customerID,
			PasswordHash: "not-a-real-hash",
		}
		id, err := users.Create(ctx, u)
		Expect(err).NotTo(HaveOccurred())
		u.ID = id
		return u
	}

	BeforeEach(func() {
		ctx = suiteCtx
		pool := pg.Pool()
		tx := txmanager.New(pool)

		userRepo := userrepo.NewUserRepository(pool)
		customerRepository := customerrepo.NewCustomerRepository(pool)
		vehicleRepo := vehiclerepo.NewVehicleRepository(pool)
		partRepo := partrepo.NewPartRepository(pool)
		notificationRepo := notificationrepo.NewNotificationRepository(pool)
		eventRepo := eventrepo.NewEventRepository(pool)

		users = userRepo
		customers = customerRepository
		vehicles = vehicleRepo
		parts = partRepo
		outbox = notificationRepo
		events = eventRepo

		svc = partrequestsvc.NewPartRequestService(
			partrequestrepo.NewPartRequestRepository(pool),
			customerRepository,
			vehicleRepo,
			partRepo,
			userRepo,
			eventsvc.NewEventService(eventRepo, dbTimeout),
			notificationsvc.NewNotificationService(notificationRepo, tx, dbTimeout, dbTimeout),
			ntfproducer.NewDiscardAnnouncer(),
			tx,
			dbTimeout,
			dbTimeout,
		)

		staff = createUser(model.RoleStaff, nil)

		var err error
		customerID, err = customers.Create(ctx, &model.Customer{
			Type:          model.CustomerPrivate,
			DisplayName:   "Mario Rossi",
			PrivateFields: &model.PrivateFields{FirstName: "Mario", LastName: "Rossi"},
			Contacts:      model.Contacts{Phone: "+39 333 1234567", Email: "mario.rossi@example.com"},
		})
		Expect(err).NotTo(HaveOccurred())

		vehicleID, err = vehicles.Create(ctx, &model.Vehicle{
			CustomerID: customerID,
			Plate:      "AB123CD",
			Make:       "Fiat",
			Model:      "Panda",
		})
		Expect(err).NotTo(HaveOccurred())

		partID, err = parts.Create(ctx, &model.Part{
			Name:      "Filtro olio",
			UnitCost:  lo.ToPtr(int64(450)),
			UnitPrice: lo.ToPtr(int64(900)),
			StockQty:  4,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	createRequest := func() uuid.UUID {
		id, err := svc.Create(ctx, staff, model.CreatePartRequestParams{
			CustomerID: customerID,
			VehicleID:  vehicleID,
			Items: []model.RequestedItem{
				{PartID: &partID, Qty: 2},
				{FreeTextName: "Spazzole tergicristallo", Qty: 1},
			},
			Supplier: lo.ToPtr("Ricambi Nord"),
		})
		Expect(err).NotTo(HaveOccurred())
		return id
	}

	It("creates a request with frozen catalog prices and a first timeline entry", func() {
		id := createRequest()

		view, err := svc.Get(ctx, staff, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(view).NotTo(BeNil())

		Expect(view.Status).To(Equal(model.StatusToOrder))
		Expect(view.CustomerName).To(Equal("Mario Rossi"))
		Expect(view.VehiclePlate).To(Equal("AB123CD"))
		Expect(view.Timeline).To(HaveLen(1))
		Expect(view.Timeline[0].ByUserID).To(Equal(staff.ID))

		Expect(view.Items).To(HaveLen(2))
		price, ok := view.Items[0].Snapshot.UnitPrice()
		Expect(ok).To(BeTrue())
		Expect(price).To(Equal(int64(900)))
		Expect(view.Items[0].PartName).To(Equal("Filtro olio"))
		Expect(view.Items[1].PartName).To(Equal("Spazzole tergicristallo"))
	})

	It("appends the timeline and records an event on every status change", func() {
		id := createRequest()

		Expect(svc.SetStatus(ctx, staff, id, model.StatusOrdered)).To(Succeed())
		Expect(svc.SetStatus(ctx, staff, id, model.StatusArrived)).To(Succeed())

		view, err := svc.Get(ctx, staff, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Status).To(Equal(model.StatusArrived))
		Expect(lo.Map(view.Timeline, func(e model.TimelineEntryView, _ int) model.PartRequestStatus {
			return e.Status
		})).To(Equal([]model.PartRequestStatus{model.StatusToOrder, model.StatusOrdered, model.StatusArrived}))

		list, err := events.List(ctx, model.EventFilter{
			EntityType: lo.ToPtr(model.EntityPartRequest),
			EntityID:   lo.ToPtr(id.String()),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(3))
	})

	It("leaves the outbox empty when the customer has not opted in", func() {
		id := createRequest()
		Expect(svc.SetStatus(ctx, staff, id, model.StatusOrdered)).To(Succeed())

		pending, err := outbox.ListByStatus(ctx, model.NotificationPending)
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(BeEmpty())
	})

	It("queues a notification in the same transaction when sharing is on", func() {
		client := createUser(model.RoleCustomer, &customerID)
		Expect(customers.SetSharing(ctx, customerID, model.Sharing{
			SharedWithClientUserIDs: []uuid.UUID{client.ID},
			ClientPermissions:       model.ClientPermissions{CanViewParts: true},
		})).To(Succeed())

		id := createRequest()
		Expect(svc.SetStatus(ctx, staff, id, model.StatusOrdered)).To(Succeed())

		pending, err := outbox.ListByStatus(ctx, model.NotificationPending)
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(HaveLen(2))

		keys := lo.Map(pending, func(n *model.Notification, _ int) string { return n.TemplateKey })
		Expect(keys).To(ConsistOf(model.TemplatePartRequestCreated, model.TemplatePartRequestStatus))
		for _, n := range pending {
			Expect(n.Recipient).To(Equal("mario.rossi@example.com"))
			Expect(n.Channel).To(Equal(model.ChannelEmail))
		}
	})

	It("hides costs and supplier from the customer's own view", func() {
		client := createUser(model.RoleCustomer, &customerID)
		Expect(customers.SetSharing(ctx, customerID, model.Sharing{
			SharedWithClientUserIDs: []uuid.UUID{client.ID},
			ClientPermissions:       model.ClientPermissions{CanViewParts: true},
		})).To(Succeed())

		id := createRequest()

		view, err := svc.Get(ctx, client, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Supplier).To(BeNil())
		_, hasCost := view.Items[0].Snapshot.UnitCost()
		Expect(hasCost).To(BeFalse())
	})

	It("filters the list by status and forgets removed requests", func() {
		first := createRequest()
		second := createRequest()
		Expect(svc.SetStatus(ctx, staff, second, model.StatusCancelled)).To(Succeed())

		cancelled, err := svc.List(ctx, staff, model.PartRequestFilter{Status: lo.ToPtr(model.StatusCancelled)})
		Expect(err).NotTo(HaveOccurred())
		Expect(cancelled).To(HaveLen(1))
		Expect(cancelled[0].ID).To(Equal(second))

		Expect(svc.Remove(ctx, staff, first)).To(Succeed())

		view, err := svc.Get(ctx, staff, first)
		Expect(err).NotTo(HaveOccurred())
		Expect(view).To(BeNil())
	})
})
