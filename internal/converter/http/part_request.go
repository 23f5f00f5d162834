package converter

import (
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

func PartRequestToAPI(v model.PartRequestView) apiv1.PartRequest {
	return apiv1.PartRequest{
		ID:               v.ID,
		CustomerID:       v.CustomerID,
		VehicleID:        v.VehicleID,
		CustomerName:     v.CustomerName,
		CustomerEmail:    v.CustomerEmail,
		CustomerPhone:    v.CustomerPhone,
		VehiclePlate:     v.VehiclePlate,
		VehicleMakeModel: v.VehicleMakeModel,
		Items: lo.Map(v.Items, func(it model.PartRequestItemView, _ int) apiv1.PartRequestItem {
			return apiv1.PartRequestItem{
				RequestedItem: RequestedItemToAPI(it.RequestedItem),
				PartName:      it.PartName,
			}
		}),
		Status: string(v.Status),
		Timeline: lo.Map(v.Timeline, func(e model.TimelineEntryView, _ int) apiv1.TimelineEntry {
			return apiv1.TimelineEntry{
				Status:   string(e.Status),
				At:       e.At,
				ByUserID: e.ByUserID,
				UserName: e.UserName,
			}
		}),
		Supplier:  v.Supplier,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func PartRequestsToAPI(list []model.PartRequestView) []apiv1.PartRequest {
	return lo.Map(list, func(v model.PartRequestView, _ int) apiv1.PartRequest { return PartRequestToAPI(v) })
}

func RequestedItemToAPI(it model.RequestedItem) apiv1.RequestedItem {
	return apiv1.RequestedItem{
		PartID:            it.PartID,
		FreeTextName:      it.FreeTextName,
		Qty:               it.Qty,
		UnitPriceSnapshot: it.Snapshot.UnitPricePtr(),
		UnitCostSnapshot:  it.Snapshot.UnitCostPtr(),
	}
}

func RequestedItemsToModel(items []apiv1.RequestedItem) []model.RequestedItem {
	return lo.Map(items, func(it apiv1.RequestedItem, _ int) model.RequestedItem {
		return model.RequestedItem{
			PartID:       it.PartID,
			FreeTextName: it.FreeTextName,
			Qty:          it.Qty,
			Snapshot:     model.NewPriceSnapshot(it.UnitPriceSnapshot, it.UnitCostSnapshot),
		}
	})
}

func CreatePartRequestRequestToParams(req apiv1.CreatePartRequestRequest) model.CreatePartRequestParams {
	return model.CreatePartRequestParams{
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		Items:      RequestedItemsToModel(req.Items),
		Supplier:   req.Supplier,
		Notes:      req.Notes,
	}
}

func UpdatePartRequestRequestToModel(req apiv1.UpdatePartRequestRequest) model.PartRequestUpdate {
	upd := model.PartRequestUpdate{
		Supplier: req.Supplier,
		Notes:    req.Notes,
	}
	if req.Items != nil {
		upd.Items = lo.ToPtr(RequestedItemsToModel(*req.Items))
	}
	return upd
}

func StatusesToAPI(list []model.PartRequestStatus) apiv1.StatusList {
	return apiv1.StatusList{
		Statuses: lo.Map(list, func(s model.PartRequestStatus, _ int) string { return string(s) }),
	}
}
