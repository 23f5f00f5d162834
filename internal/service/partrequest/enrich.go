package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/logger"
)

type lookups struct {
	customers map[uuid.UUID]*model.Customer
	vehicles  map[uuid.UUID]*model.Vehicle
	parts     map[uuid.UUID]*model.Part
	users     map[uuid.UUID]*model.User
}

// lookup batch-loads everything the views reference. Missing rows simply stay absent.
func (svc *service) lookup(ctx context.Context, prs []*model.PartRequest) (lookups, error) {
	var (
		customerIDs []uuid.UUID
		vehicleIDs  []uuid.UUID
		partIDs     []uuid.UUID
		userIDs     []uuid.UUID
	)
	for _, pr := range prs {
		customerIDs = append(customerIDs, pr.CustomerID)
		vehicleIDs = append(vehicleIDs, pr.VehicleID)
		for _, it := range pr.Items {
			if it.PartID != nil {
				partIDs = append(partIDs, *it.PartID)
			}
		}
		for _, e := range pr.Timeline {
			userIDs = append(userIDs, e.ByUserID)
		}
	}

	l := lookups{
		customers: map[uuid.UUID]*model.Customer{},
		vehicles:  map[uuid.UUID]*model.Vehicle{},
		parts:     map[uuid.UUID]*model.Part{},
		users:     map[uuid.UUID]*model.User{},
	}
	if len(prs) == 0 {
		return l, nil
	}

	customers, err := svc.customers.List(ctx, model.CustomerFilter{IDs: lo.Uniq(customerIDs)})
	if err != nil {
		logger.Error(ctx, "repository list customers", logger.ErrorF(err))
		return lookups{}, err
	}
	l.customers = lo.KeyBy(customers, func(c *model.Customer) uuid.UUID { return c.ID })

	vehicles, err := svc.vehicles.VehiclesByIDs(ctx, lo.Uniq(vehicleIDs))
	if err != nil {
		logger.Error(ctx, "repository vehicles by ids", logger.ErrorF(err))
		return lookups{}, err
	}
	l.vehicles = lo.KeyBy(vehicles, func(v *model.Vehicle) uuid.UUID { return v.ID })

	if len(partIDs) > 0 {
		parts, err := svc.parts.List(ctx, model.PartFilter{IDs: lo.Uniq(partIDs)})
		if err != nil {
			logger.Error(ctx, "repository list parts", logger.ErrorF(err))
			return lookups{}, err
		}
		l.parts = lo.KeyBy(parts, func(p *model.Part) uuid.UUID { return p.ID })
	}

	if len(userIDs) > 0 {
		users, err := svc.users.UsersByIDs(ctx, lo.Uniq(userIDs))
		if err != nil {
			logger.Error(ctx, "repository users by ids", logger.ErrorF(err))
			return lookups{}, err
		}
		l.users = lo.KeyBy(users, func(u *model.User) uuid.UUID { return u.ID })
	}

	return l, nil
}

func (l lookups) view(pr *model.PartRequest) model.PartRequestView {
	v := model.PartRequestView{
		ID:           pr.ID,
		CustomerID:   pr.CustomerID,
		VehicleID:    pr.VehicleID,
		CustomerName: model.UnknownName,
		VehiclePlate: model.UnknownName,
		Status:       pr.Status,
		Supplier:     pr.Supplier,
		Notes:        pr.Notes,
		CreatedAt:    pr.CreatedAt,
		UpdatedAt:    pr.UpdatedAt,
	}

	if c, ok := l.customers[pr.CustomerID]; ok {
		v.CustomerName = customerName(c)
		if c.Contacts.Email != "" {
			v.CustomerEmail = lo.ToPtr(c.Contacts.Email)
		}
		if c.Contacts.Phone != "" {
			v.CustomerPhone = lo.ToPtr(c.Contacts.Phone)
		}
	}
	if veh, ok := l.vehicles[pr.VehicleID]; ok {
		v.VehiclePlate = veh.Plate
		v.VehicleMakeModel = veh.MakeModel()
	}

	v.Items = lo.Map(pr.Items, func(it model.RequestedItem, _ int) model.PartRequestItemView {
		return model.PartRequestItemView{RequestedItem: it, PartName: l.partName(it)}
	})
	v.Timeline = lo.Map(pr.Timeline, func(e model.TimelineEntry, _ int) model.TimelineEntryView {
		return model.TimelineEntryView{TimelineEntry: e, UserName: l.users[e.ByUserID].DisplayName()}
	})

	return v
}

func (l lookups) partName(it model.RequestedItem) string {
	if it.PartID != nil {
		if p, ok := l.parts[*it.PartID]; ok {
			return p.Name
		}
		return model.PartNameNotFound
	}
	if name := strings.TrimSpace(it.FreeTextName); name != "" {
		return name
	}
	return model.PartNameCustom
}

// matches does a Unicode case-folded substring match on customer name or plate.
func (l lookups) matches(pr *model.PartRequest, search string) bool {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))
	if needle == "" {
		return true
	}

	if c, ok := l.customers[pr.CustomerID]; ok && strings.Contains(fold.String(c.DisplayName), needle) {
		return true
	}
	if v, ok := l.vehicles[pr.VehicleID]; ok && strings.Contains(fold.String(v.Plate), needle) {
		return true
	}
	return false
}
