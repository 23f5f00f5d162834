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

type PartRepository interface {
	Create(ctx context.Context, p *model.Part) (uuid.UUID, error)
	PartByID(ctx context.Context, id uuid.UUID) (*model.Part, error)
	List(ctx context.Context, f model.PartFilter) ([]*model.Part, error)
	Update(ctx context.Context, p *model.Part) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SupplierRepository interface {
	List(ctx context.Context, activeOnly bool, ids []uuid.UUID) ([]*model.Supplier, error)
}

type VehicleRepository interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
}

type PartRequestRepository interface {
	Exists(ctx context.Context, f model.PartRequestFilter) (bool, error)
}

type EventRecorder interface {
	Record(ctx context.Context, params model.RecordEventParams) error
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	parts          PartRepository
	suppliers      SupplierRepository
	vehicles       VehicleRepository
	partRequests   PartRequestRepository
	events         EventRecorder
	tx             TxManager
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewPartService(
	parts PartRepository,
	suppliers SupplierRepository,
	vehicles VehicleRepository,
	partRequests PartRequestRepository,
	events EventRecorder,
	tx TxManager,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		parts:          parts,
		suppliers:      suppliers,
		vehicles:       vehicles,
		partRequests:   partRequests,
		events:         events,
		tx:             tx,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (svc *service) List(ctx context.Context, actor *model.User, searchText string) ([]model.PartView, error) {
	const op string = "part.service.List"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	parts, err := svc.parts.List(ctx, model.PartFilter{SearchText: strings.TrimSpace(searchText)})
	if err != nil {
		logger.Error(ctx, "repository list parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := svc.enrich(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}

// ListByVehicle returns the parts tied to a vehicle. A customer-role caller must own it.
func (svc *service) ListByVehicle(ctx context.Context, actor *model.User, vehicleID uuid.UUID) ([]model.PartView, error) {
	const op string = "part.service.ListByVehicle"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	if policy.IsCustomer(actor) {
		v, err := svc.vehicles.VehicleByID(ctx, vehicleID)
		if err != nil && !errors.Is(err, model.ErrVehicleNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if v == nil || actor.CustomerID == nil || *actor.CustomerID != v.CustomerID {
			return nil, fmt.Errorf("%s: %w: not your vehicle", op, model.ErrUnauthorized)
		}
	}

	parts, err := svc.parts.List(ctx, model.PartFilter{VehicleID: &vehicleID})
	if err != nil {
		logger.Error(ctx, "repository list parts", logger.String("vehicle_id", vehicleID.String()), logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := svc.enrich(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}

// Get returns nil, nil when the part does not exist.
func (svc *service) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.PartView, error) {
	const op string = "part.service.Get"

	if err := policy.RequireActor(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	p, err := svc.parts.PartByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPartNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := svc.enrich(ctx, []*model.Part{p})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &views[0], nil
}

func (svc *service) enrich(ctx context.Context, parts []*model.Part) ([]model.PartView, error) {
	supplierIDs := lo.Uniq(lo.FilterMap(parts, func(p *model.Part, _ int) (uuid.UUID, bool) {
		if p.SupplierID == nil {
			return uuid.Nil, false
		}
		return *p.SupplierID, true
	}))

	names := map[uuid.UUID]string{}
	if len(supplierIDs) > 0 {
		suppliers, err := svc.suppliers.List(ctx, false, supplierIDs)
		if err != nil {
			logger.Error(ctx, "repository list suppliers", logger.ErrorF(err))
			return nil, err
		}
		for _, s := range suppliers {
			names[s.ID] = s.CompanyName
		}
	}

	return lo.Map(parts, func(p *model.Part, _ int) model.PartView {
		v := model.PartView{Part: *p, IsLowStock: p.IsLowStock()}
		if p.SupplierID != nil {
			if name, ok := names[*p.SupplierID]; ok {
				v.SupplierName = &name
			}
		}
		return v
	}), nil
}

func (svc *service) Create(ctx context.Context, actor *model.User, params model.CreatePartParams) (uuid.UUID, error) {
	const op string = "part.service.Create"

	if err := policy.RequireStaff(actor); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, model.Invalid("part name is required"))
	}
	if params.StockQty < 0 {
		return uuid.Nil, fmt.Errorf("%s: %w", op, model.Invalid("stock cannot be negative"))
	}

	p := &model.Part{
		Name:        name,
		SKU:         params.SKU,
		OEMCode:     params.OEMCode,
		SupplierID:  params.SupplierID,
		UnitCost:    params.UnitCost,
		UnitPrice:   params.UnitPrice,
		PartPrice:   params.PartPrice,
		LaborPrice:  params.LaborPrice,
		StockQty:    params.StockQty,
		MinStockQty: params.MinStockQty,
		Location:    params.Location,
		Notes:       params.Notes,
		VehicleID:   params.VehicleID,
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	var id uuid.UUID
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if id, err = svc.parts.Create(ctx, p); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventPartCreated,
			EntityType:  model.EntityPart,
			EntityID:    id.String(),
			Payload:     map[string]any{"name": name, "stockQty": params.StockQty},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		logger.Error(ctx, "create part", logger.String("name", name), logger.ErrorF(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (svc *service) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.PartUpdate) error {
	const op string = "part.service.Update"
	log := logger.With(logger.String("part_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return fmt.Errorf("%s: %w", op, model.Invalid("part name cannot be blank"))
		}
		upd.Name = &name
	}
	if upd.StockQty != nil && *upd.StockQty < 0 {
		return fmt.Errorf("%s: %w", op, model.Invalid("stock cannot be negative"))
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := svc.parts.PartByID(ctx, id)
		if err != nil {
			return err
		}

		changed := applyUpdate(p, upd)
		if len(changed) == 0 {
			return nil
		}
		if err := svc.parts.Update(ctx, p); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventPartUpdated,
			EntityType:  model.EntityPart,
			EntityID:    id.String(),
			Payload:     map[string]any{"fields": changed},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "update part", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func applyUpdate(p *model.Part, upd model.PartUpdate) []string {
	var changed []string
	set := func(field string, ok bool, apply func()) {
		if ok {
			apply()
			changed = append(changed, field)
		}
	}

	set("name", upd.Name != nil, func() { p.Name = *upd.Name })
	set("sku", upd.SKU != nil, func() { p.SKU = upd.SKU })
	set("oemCode", upd.OEMCode != nil, func() { p.OEMCode = upd.OEMCode })
	set("supplierId", upd.SupplierID != nil, func() { p.SupplierID = upd.SupplierID })
	set("unitCost", upd.UnitCost != nil, func() { p.UnitCost = upd.UnitCost })
	set("unitPrice", upd.UnitPrice != nil, func() { p.UnitPrice = upd.UnitPrice })
	set("partPrice", upd.PartPrice != nil, func() { p.PartPrice = upd.PartPrice })
	set("laborPrice", upd.LaborPrice != nil, func() { p.LaborPrice = upd.LaborPrice })
	set("stockQty", upd.StockQty != nil, func() { p.StockQty = *upd.StockQty })
	set("minStockQty", upd.MinStockQty != nil, func() { p.MinStockQty = upd.MinStockQty })
	set("location", upd.Location != nil, func() { p.Location = upd.Location })
	set("notes", upd.Notes != nil, func() { p.Notes = upd.Notes })
	set("vehicleId", upd.VehicleID != nil, func() { p.VehicleID = upd.VehicleID })

	return changed
}

// AdjustStock applies delta atomically. The resulting quantity must stay non-negative.
func (svc *service) AdjustStock(ctx context.Context, actor *model.User, params model.AdjustStockParams) (*model.AdjustStockResult, error) {
	const op string = "part.service.AdjustStock"
	log := logger.With(logger.String("part_id", params.PartID.String()), logger.Int("delta", params.Delta))

	if err := policy.RequireStaff(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	res := &model.AdjustStockResult{PartID: params.PartID}
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		res.OldStockQty, res.NewStockQty, err = svc.parts.AdjustStock(ctx, params.PartID, params.Delta)
		if err != nil {
			return err
		}

		payload := map[string]any{
			"oldQty": res.OldStockQty,
			"newQty": res.NewStockQty,
			"delta":  params.Delta,
		}
		if params.Reason != nil {
			payload["reason"] = *params.Reason
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventPartStockAdjusted,
			EntityType:  model.EntityPart,
			EntityID:    params.PartID.String(),
			Payload:     payload,
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "adjust stock", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

func (svc *service) Remove(ctx context.Context, actor *model.User, id uuid.UUID) error {
	const op string = "part.service.Remove"
	log := logger.With(logger.String("part_id", id.String()))

	if err := policy.RequireStaff(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := svc.parts.PartByID(ctx, id)
		if err != nil {
			return err
		}

		used, err := svc.partRequests.Exists(ctx, model.PartRequestFilter{PartID: &id})
		if err != nil {
			return err
		}
		if used {
			return model.ErrPartInUse
		}

		if err := svc.parts.Delete(ctx, id); err != nil {
			return err
		}

		return svc.events.Record(ctx, model.RecordEventParams{
			Type:        model.EventPartDeleted,
			EntityType:  model.EntityPart,
			EntityID:    id.String(),
			Payload:     map[string]any{"name": p.Name},
			ActorUserID: actor.ID,
		})
	})
	if err != nil {
		log.Error(ctx, "remove part", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
