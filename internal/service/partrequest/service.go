package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/platform/logger"
)

type PartRequestRepository interface {
	Create(ctx context.Context, pr *model.PartRequest) (uuid.UUID, error)
	PartRequestByID(ctx context.Context, id uuid.UUID) (*model.PartRequest, error)
	List(ctx context.Context, f model.PartRequestFilter) ([]*model.PartRequest, error)
	Update(ctx context.Context, pr *model.PartRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CustomerRepository interface {
	CustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, f model.CustomerFilter) ([]*model.Customer, error)
}

type VehicleRepository interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	VehiclesByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Vehicle, error)
}

type PartRepository interface {
	List(ctx context.Context, f model.PartFilter) ([]*model.Part, error)
}

type UserRepository interface {
	UsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error)
}

type EventRecorder interface {
	Record(ctx context.Context, params model.RecordEventParams) error
}

// Outbox stores a notification in the caller's transaction.
type Outbox interface {
	Enqueue(ctx context.Context, params model.EnqueueParams) (*model.Notification, error)
}

// Announcer publishes a committed notification to the delivery pipeline.
type Announcer interface {
	Announce(ctx context.Context, n model.Notification) error
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	requests       PartRequestRepository
	customers      CustomerRepository
	vehicles       VehicleRepository
	parts          PartRepository
	users          UserRepository
	events         EventRecorder
	outbox         Outbox
	announcer      Announcer
	tx             TxManager
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
	now            func() time.Time
}

func NewPartRequestService(
	requests PartRequestRepository,
	customers CustomerRepository,
	vehicles VehicleRepository,
	parts PartRepository,
	users UserRepository,
	events EventRecorder,
	outbox Outbox,
	announcer Announcer,
	tx TxManager,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		requests:       requests,
		customers:      customers,
		vehicles:       vehicles,
		parts:          parts,
		users:          users,
		events:         events,
		outbox:         outbox,
		announcer:      announcer,
		tx:             tx,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
		now:            time.Now,
	}
}

func (svc *service) Create(ctx context.Context, actor *model.User, params model.CreatePartRequestParams) (uuid.UUID, error) {
	const op string = "partrequest.service.Create"
	log := logger.With(
		logger.String("customer_id", params.CustomerID.String()),
		logger.String("vehicle_id", params.VehicleID.String()),
	)

	if err := policy.RequireStaff(actor); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateItems(params.Items); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var (
		id      uuid.UUID
		pending []*model.Notification
	)
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		customer, err := svc.customers.CustomerByID(ctx, params.CustomerID)
		if err != nil {
			return err
		}
		vehicle, err := svc.vehicles.VehicleByID(ctx, params.VehicleID)
		if err != nil {
			return err
		}
		if vehicle.CustomerID != customer.ID {
			return model.Invalid("vehicle %s does not belong to customer %s", vehicle.ID, customer.ID)
		}

		items, err := svc.captureSnapshots(ctx, params.Items, nil)
		if err != nil {
			return err
		}

		now := svc.now().UTC()
		pr := &model.PartRequest{
			CustomerID: customer.ID,
			VehicleID:  vehicle.ID,
			Items:      items,
			Status:     model.StatusToOrder,
			Timeline:   []model.TimelineEntry{{Status: model.StatusToOrder, At: now, ByUserID: actor.ID}},
			Supplier:   params.Supplier,
			Notes:      params.Notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if id, err = svc.requests.Create(ctx, pr); err != nil {
			return err
		}

		err = svc.events.Record(ctx, model.RecordEventParams{
			Type:       model.EventPartRequestCreated,
			EntityType: model.EntityPartRequest,
			EntityID:   id.String(),
			Payload: map[string]any{
				"customerId": customer.ID.String(),
				"vehicleId":  vehicle.ID.String(),
				"itemCount":  len(items),
			},
			ActorUserID: actor.ID,
		})
		if err != nil {
			return err
		}

		n, err := svc.notify(ctx, customer, model.TemplatePartRequestCreated, map[string]any{
			"status":       string(model.StatusToOrder),
			"requestId":    id.String(),
			"customerName": customer.DisplayName,
			"vehiclePlate": vehicle.Plate,
		})
		if n != nil {
			pending = append(pending, n)
		}
		return err
	})
	if err != nil {
		log.Error(ctx, "create part request", logger.ErrorF(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.announce(ctx, pending)
	log.Info(ctx, "part request created", logger.String("part_request_id", id.String()))

	return id, nil
}

// SetStatus moves the request to any status and appends the timeline. AllowedNext is not enforced.
func (svc *service) SetStatus(ctx context.Context, actor *model.User, id uuid.UUID, status model.PartRequestStatus) error {
	const op string = "partrequest.service.SetStatus"
	log := logger.With(logger.String("part_request_id", id.String()), logger.String("status", string(status)))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !status.Valid() {
		return fmt.Errorf("%s: %w", op, model.Invalid("unknown status %q", status))
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var pending []*model.Notification
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		pr, err := svc.requests.PartRequestByID(ctx, id)
		if err != nil {
			return err
		}

		old := pr.Status
		now := svc.now().UTC()
		pr.Status = status
		pr.Timeline = append(pr.Timeline, model.TimelineEntry{Status: status, At: now, ByUserID: actor.ID})
		pr.UpdatedAt = now

		if err := svc.requests.Update(ctx, pr); err != nil {
			return err
		}

		err = svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventPartRequestStatusChanged,
			EntityType:  model.EntityPartRequest,
			EntityID:    id.String(),
			Payload:     map[string]any{"oldStatus": string(old), "newStatus": string(status)},
			ActorUserID: actor.ID,
		})
		if err != nil {
			return err
		}

		customer, err := svc.optionalCustomer(ctx, pr.CustomerID)
		if err != nil {
			return err
		}
		plate := model.UnknownName
		if v, err := svc.vehicles.VehicleByID(ctx, pr.VehicleID); err == nil {
			plate = v.Plate
		} else if !errors.Is(err, model.ErrVehicleNotFound) {
			return err
		}

		n, err := svc.notify(ctx, customer, model.TemplatePartRequestStatus, map[string]any{
			"oldStatus":    string(old),
			"newStatus":    string(status),
			"requestId":    id.String(),
			"customerName": customerName(customer),
			"vehiclePlate": plate,
		})
		if n != nil {
			pending = append(pending, n)
		}
		return err
	})
	if err != nil {
		log.Error(ctx, "set part request status", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.announce(ctx, pending)

	return nil
}

// AllowedNext reports the forward and cancel moves a UI should offer from status.
func (svc *service) AllowedNext(status model.PartRequestStatus) ([]model.PartRequestStatus, error) {
	const op string = "partrequest.service.AllowedNext"

	next, ok := transitions[status]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("unknown status %q", status))
	}
	return append([]model.PartRequestStatus{}, next...), nil
}

var transitions = map[model.PartRequestStatus][]model.PartRequestStatus{
	model.StatusToOrder:   {model.StatusOrdered, model.StatusCancelled},
	model.StatusOrdered:   {model.StatusArrived, model.StatusCancelled},
	model.StatusArrived:   {model.StatusDelivered, model.StatusCancelled},
	model.StatusDelivered: {},
	model.StatusCancelled: {},
}

func (svc *service) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.PartRequestUpdate) error {
	const op string = "partrequest.service.Update"
	log := logger.With(logger.String("part_request_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if upd.Items != nil {
		if err := validateItems(*upd.Items); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		pr, err := svc.requests.PartRequestByID(ctx, id)
		if err != nil {
			return err
		}
		if upd.IsEmpty() {
			return nil
		}

		patch := map[string]any{}
		if upd.Items != nil {
			items, err := svc.captureSnapshots(ctx, *upd.Items, frozenSnapshots(pr.Items))
			if err != nil {
				return err
			}
			pr.Items = items
			patch["requestedItems"] = itemsPayload(items)
		}
		if upd.Supplier != nil {
			pr.Supplier = upd.Supplier
			patch["supplier"] = *upd.Supplier
		}
		if upd.Notes != nil {
			pr.Notes = upd.Notes
			patch["notes"] = *upd.Notes
		}
		pr.UpdatedAt = svc.now().UTC()

		if err := svc.requests.Update(ctx, pr); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventPartRequestUpdated,
			EntityType:  model.EntityPartRequest,
			EntityID:    id.String(),
			Payload:     patch,
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "update part request", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (svc *service) Remove(ctx context.Context, actor *model.User, id uuid.UUID) error {
	const op string = "partrequest.service.Remove"
	log := logger.With(logger.String("part_request_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		pr, err := svc.requests.PartRequestByID(ctx, id)
		if err != nil {
			return err
		}
		if err := svc.requests.Delete(ctx, id); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventPartRequestDeleted,
			EntityType:  model.EntityPartRequest,
			EntityID:    id.String(),
			Payload:     map[string]any{"status": string(pr.Status)},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "remove part request", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Get returns nil, nil when the request does not exist.
func (svc *service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.PartRequestView, error) {
	const op string = "partrequest.service.Get"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	pr, err := svc.requests.PartRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPartRequestNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if policy.IsCustomer(actor) {
		customer, err := svc.optionalCustomer(ctx, pr.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := policy.RequireCustomerAccess(actor, customer, policy.CapabilityParts); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	l, err := svc.lookup(ctx, []*model.PartRequest{pr})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v := policy.ShapePartRequest(actor, l.view(pr))
	return &v, nil
}

// List returns requests newest first. A customer-role caller is pinned to their own customer.
func (svc *service) List(ctx context.Context, actor *model.User, f model.PartRequestFilter) ([]model.PartRequestView, error) {
	const op string = "partrequest.service.List"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	if policy.IsCustomer(actor) {
		if actor.CustomerID == nil {
			return []model.PartRequestView{}, nil
		}
		customer, err := svc.optionalCustomer(ctx, *actor.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := policy.RequireCustomerAccess(actor, customer, policy.CapabilityParts); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		f.CustomerID = actor.CustomerID
	}

	prs, err := svc.requests.List(ctx, f)
	if err != nil {
		logger.Error(ctx, "repository list part requests", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	l, err := svc.lookup(ctx, prs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if f.SearchText != "" {
		prs = lo.Filter(prs, func(pr *model.PartRequest, _ int) bool {
			return l.matches(pr, f.SearchText)
		})
	}

	return lo.Map(prs, func(pr *model.PartRequest, _ int) model.PartRequestView {
		return policy.ShapePartRequest(actor, l.view(pr))
	}), nil
}

func (svc *service) optionalCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c, err := svc.customers.CustomerByID(ctx, id)
	if errors.Is(err, model.ErrCustomerNotFound) {
		return nil, nil
	}
	return c, err
}

func (svc *service) announce(ctx context.Context, pending []*model.Notification) {
	for _, n := range pending {
		if err := svc.announcer.Announce(ctx, *n); err != nil {
			logger.Warn(ctx, "announce notification",
				logger.String("notification_id", n.ID.String()),
				logger.ErrorF(err),
			)
		}
	}
}
