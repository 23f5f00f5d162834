package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/platform/logger"
)

type UserRepository interface {
	UserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role model.Role, customerID *uuid.UUID) error
}

type CustomerRepository interface {
	CustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, f model.CustomerFilter) ([]*model.Customer, error)
}

type EventRecorder interface {
	Record(ctx context.Context, params model.RecordEventParams) error
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	users          UserRepository
	customers      CustomerRepository
	events         EventRecorder
	tx             TxManager
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewUserService(
	users UserRepository,
	customers CustomerRepository,
	events EventRecorder,
	tx TxManager,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		users:          users,
		customers:      customers,
		events:         events,
		tx:             tx,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// List returns every user with the display name of the linked customer, when any.
func (svc *service) List(ctx context.Context, actor *model.User) ([]model.UserView, error) {
	const op string = "user.service.List"

	if err := policy.RequireAdmin(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	users, err := svc.users.List(ctx)
	if err != nil {
		logger.Error(ctx, "repository list users", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids := lo.Uniq(lo.FilterMap(users, func(u *model.User, _ int) (uuid.UUID, bool) {
		if u.CustomerID == nil {
			return uuid.Nil, false
		}
		return *u.CustomerID, true
	}))

	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		customers, err := svc.customers.List(ctx, model.CustomerFilter{IDs: ids})
		if err != nil {
			logger.Error(ctx, "repository list customers", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, c := range customers {
			names[c.ID] = c.DisplayName
		}
	}

	return lo.Map(users, func(u *model.User, _ int) model.UserView {
		v := model.UserView{User: *u}
		v.PasswordHash = ""
		if u.CustomerID != nil {
			if name, ok := names[*u.CustomerID]; ok {
				v.CustomerName = &name
			}
		}
		return v
	}), nil
}

// SetRole changes a user's role. CLIENTE needs an existing customer; staff roles drop the link.
func (svc *service) SetRole(ctx context.Context, actor *model.User, params model.SetRoleParams) error {
	const op string = "user.service.SetRole"
	log := logger.With(
		logger.String("user_id", params.UserID.String()),
		logger.String("role", string(params.Role)),
	)

	if err := policy.RequireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !params.Role.Valid() {
		return fmt.Errorf("%s: %w", op, model.Invalid("unknown role %q", params.Role))
	}

	customerID := params.CustomerID
	if params.Role == model.RoleCustomer {
		if customerID == nil {
			return fmt.Errorf("%s: %w", op, model.Invalid("customer role requires a customer id"))
		}
	} else {
		customerID = nil
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := svc.users.UserByID(ctx, params.UserID)
		if err != nil {
			return err
		}
		if customerID != nil {
			if _, err := svc.customers.CustomerByID(ctx, *customerID); err != nil {
				return err
			}
		}

		if err := svc.users.SetRole(ctx, u.ID, params.Role, customerID); err != nil {
			return err
		}

		payload := map[string]any{"oldRole": string(u.Role), "newRole": string(params.Role)}
		if customerID != nil {
			payload["customerId"] = customerID.String()
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventUserRoleChanged,
			EntityType:  model.EntityUser,
			EntityID:    u.ID.String(),
			Payload:     payload,
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "set role", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LinkToCustomer points an existing customer-role user at a customer record.
func (svc *service) LinkToCustomer(ctx context.Context, actor *model.User, userID, customerID uuid.UUID) error {
	const op string = "user.service.LinkToCustomer"
	log := logger.With(
		logger.String("user_id", userID.String()),
		logger.String("customer_id", customerID.String()),
	)

	if err := policy.RequireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := svc.users.UserByID(ctx, userID)
		if err != nil {
			return err
		}
		if u.Role != model.RoleCustomer {
			return model.Invalid("only customer-role users can be linked")
		}
		if _, err := svc.customers.CustomerByID(ctx, customerID); err != nil {
			return err
		}

		if err := svc.users.SetRole(ctx, u.ID, u.Role, &customerID); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventUserLinkedToCustomer,
			EntityType:  model.EntityUser,
			EntityID:    u.ID.String(),
			Payload:     map[string]any{"customerId": customerID.String()},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "link to customer", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
