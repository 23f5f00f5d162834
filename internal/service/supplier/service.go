package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/platform/logger"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) (uuid.UUID, error)
	SupplierByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	List(ctx context.Context, activeOnly bool, ids []uuid.UUID) ([]*model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PartRepository interface {
	CountBySupplier(ctx context.Context, supplierIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type EventRecorder interface {
	Record(ctx context.Context, params model.RecordEventParams) error
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	suppliers      SupplierRepository
	parts          PartRepository
	events         EventRecorder
	tx             TxManager
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewSupplierService(
	suppliers SupplierRepository,
	parts PartRepository,
	events EventRecorder,
	tx TxManager,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		suppliers:      suppliers,
		parts:          parts,
		events:         events,
		tx:             tx,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (svc *service) List(ctx context.Context, actor *model.User, activeOnly bool) ([]*model.Supplier, error) {
	const op string = "supplier.service.List"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	suppliers, err := svc.suppliers.List(ctx, activeOnly, nil)
	if err != nil {
		logger.Error(ctx, "repository list suppliers", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return suppliers, nil
}

// Get returns nil, nil when the supplier does not exist.
func (svc *service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.SupplierView, error) {
	const op string = "supplier.service.Get"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	s, err := svc.suppliers.SupplierByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSupplierNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts, err := svc.parts.CountBySupplier(ctx, []uuid.UUID{id})
	if err != nil {
		logger.Error(ctx, "repository count parts", logger.String("supplier_id", id.String()), logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.SupplierView{Supplier: *s, PartsCount: counts[id]}, nil
}

func (svc *service) Create(ctx context.Context, actor *model.User, params model.CreateSupplierParams) (uuid.UUID, error) {
	const op string = "supplier.service.Create"

	if err := policy.RequireStaff(actor); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	name := strings.TrimSpace(params.CompanyName)
	if name == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, model.Invalid("company name is required"))
	}

	s := &model.Supplier{
		CompanyName: name,
		ContactName: params.ContactName,
		Phone:       params.Phone,
		Email:       params.Email,
		Address:     params.Address,
		Notes:       params.Notes,
		IsActive:    true,
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var id uuid.UUID
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if id, err = svc.suppliers.Create(ctx, s); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventSupplierCreated,
			EntityType:  model.EntitySupplier,
			EntityID:    id.String(),
			Payload:     map[string]any{"companyName": name},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		logger.Error(ctx, "create supplier", logger.ErrorF(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (svc *service) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.SupplierUpdate) error {
	const op string = "supplier.service.Update"

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if upd.CompanyName != nil {
		name := strings.TrimSpace(*upd.CompanyName)
		if name == "" {
			return fmt.Errorf("%s: %w", op, model.Invalid("company name cannot be blank"))
		}
		upd.CompanyName = &name
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		s, err := svc.suppliers.SupplierByID(ctx, id)
		if err != nil {
			return err
		}

		s.CompanyName = lo.FromPtrOr(upd.CompanyName, s.CompanyName)
		s.IsActive = lo.FromPtrOr(upd.IsActive, s.IsActive)
		s.ContactName = lo.CoalesceOrEmpty(upd.ContactName, s.ContactName)
		s.Phone = lo.CoalesceOrEmpty(upd.Phone, s.Phone)
		s.Email = lo.CoalesceOrEmpty(upd.Email, s.Email)
		s.Address = lo.CoalesceOrEmpty(upd.Address, s.Address)
		s.Notes = lo.CoalesceOrEmpty(upd.Notes, s.Notes)

		if err := svc.suppliers.Update(ctx, s); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventSupplierUpdated,
			EntityType:  model.EntitySupplier,
			EntityID:    id.String(),
			Payload:     map[string]any{"companyName": s.CompanyName, "isActive": s.IsActive},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		logger.Error(ctx, "update supplier", logger.String("supplier_id", id.String()), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Remove deactivates a supplier still referenced by parts and deletes it otherwise.
func (svc *service) Remove(ctx context.Context, actor *model.User, id uuid.UUID) (model.RemoveOutcome, error) {
	const op string = "supplier.service.Remove"
	log := logger.With(logger.String("supplier_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var outcome model.RemoveOutcome
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		s, err := svc.suppliers.SupplierByID(ctx, id)
		if err != nil {
			return err
		}

		counts, err := svc.parts.CountBySupplier(ctx, []uuid.UUID{id})
		if err != nil {
			return err
		}

		evt := model.EventSupplierDeleted
		if n := counts[id]; n > 0 {
			outcome, evt = model.RemoveDeactivated, model.EventSupplierDeactivated
			err = svc.suppliers.Deactivate(ctx, id)
		} else {
			outcome = model.RemoveDeleted
			err = svc.suppliers.Delete(ctx, id)
		}
		if err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        evt,
			EntityType:  model.EntitySupplier,
			EntityID:    id.String(),
			Payload:     map[string]any{"companyName": s.CompanyName, "partsCount": counts[id]},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "remove supplier", logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "supplier removed", logger.String("outcome", string(outcome)))
	return outcome, nil
}
