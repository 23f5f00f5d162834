package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/platform/logger"
)

type FuelTypeRepository interface {
	Create(ctx context.Context, ft *model.FuelType) (uuid.UUID, error)
	FuelTypeByID(ctx context.Context, id uuid.UUID) (*model.FuelType, error)
	List(ctx context.Context, activeOnly bool) ([]*model.FuelType, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, ft *model.FuelType) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type VehicleRepository interface {
	ExistsWithFuelType(ctx context.Context, fuelType string) (bool, error)
}

type EventRecorder interface {
	Record(ctx context.Context, params model.RecordEventParams) error
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	fuelTypes      FuelTypeRepository
	vehicles       VehicleRepository
	events         EventRecorder
	tx             TxManager
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewFuelTypeService(
	fuelTypes FuelTypeRepository,
	vehicles VehicleRepository,
	events EventRecorder,
	tx TxManager,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		fuelTypes:      fuelTypes,
		vehicles:       vehicles,
		events:         events,
		tx:             tx,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (svc *service) List(ctx context.Context, actor *model.User, activeOnly bool) ([]*model.FuelType, error) {
	const op string = "fueltype.service.List"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	fts, err := svc.fuelTypes.List(ctx, activeOnly)
	if err != nil {
		logger.Error(ctx, "repository list fuel types", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return fts, nil
}

// Create appends at the end of the list unless an explicit order is given.
func (svc *service) Create(ctx context.Context, actor *model.User, params model.CreateFuelTypeParams) (uuid.UUID, error) {
	const op string = "fueltype.service.Create"

	if err := policy.RequireAdmin(actor); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, model.Invalid("fuel type name is required"))
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var id uuid.UUID
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		order := params.Order
		if order == nil {
			n, err := svc.fuelTypes.Count(ctx)
			if err != nil {
				return err
			}
			order = &n
		}

		var err error
		id, err = svc.fuelTypes.Create(ctx, &model.FuelType{Name: name, Order: *order, IsActive: true})
		if err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventFuelTypeCreated,
			EntityType:  model.EntityFuelType,
			EntityID:    id.String(),
			Payload:     map[string]any{"name": name, "order": *order},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		logger.Error(ctx, "create fuel type", logger.String("name", name), logger.ErrorF(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (svc *service) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.FuelTypeUpdate) error {
	const op string = "fueltype.service.Update"

	if err := policy.RequireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return fmt.Errorf("%s: %w", op, model.Invalid("fuel type name cannot be blank"))
		}
		upd.Name = &name
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		ft, err := svc.fuelTypes.FuelTypeByID(ctx, id)
		if err != nil {
			return err
		}

		ft.Name = lo.FromPtrOr(upd.Name, ft.Name)
		ft.Order = lo.FromPtrOr(upd.Order, ft.Order)
		ft.IsActive = lo.FromPtrOr(upd.IsActive, ft.IsActive)

		if err := svc.fuelTypes.Update(ctx, ft); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventFuelTypeUpdated,
			EntityType:  model.EntityFuelType,
			EntityID:    id.String(),
			Payload:     map[string]any{"name": ft.Name, "order": ft.Order, "isActive": ft.IsActive},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		logger.Error(ctx, "update fuel type", logger.String("fuel_type_id", id.String()), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Remove deactivates a fuel type any vehicle still uses and deletes it otherwise.
func (svc *service) Remove(ctx context.Context, actor *model.User, id uuid.UUID) (model.RemoveOutcome, error) {
	const op string = "fueltype.service.Remove"
	log := logger.With(logger.String("fuel_type_id", id.String()))

	if err := policy.RequireAdmin(actor); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var outcome model.RemoveOutcome
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		ft, err := svc.fuelTypes.FuelTypeByID(ctx, id)
		if err != nil {
			return err
		}

		used, err := svc.vehicles.ExistsWithFuelType(ctx, ft.Name)
		if err != nil {
			return err
		}

		evt := model.EventFuelTypeDeleted
		if used {
			outcome, evt = model.RemoveDeactivated, model.EventFuelTypeDeactivated
			err = svc.fuelTypes.Deactivate(ctx, id)
		} else {
			outcome = model.RemoveDeleted
			err = svc.fuelTypes.Delete(ctx, id)
		}
		if err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        evt,
			EntityType:  model.EntityFuelType,
			EntityID:    id.String(),
			Payload:     map[string]any{"name": ft.Name},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "remove fuel type", logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return outcome, nil
}
