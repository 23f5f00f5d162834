package converter

import (
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

func PartToAPI(v model.PartView) apiv1.Part {
	return apiv1.Part{
		ID:           v.ID,
		Name:         v.Name,
		SKU:          v.SKU,
		OEMCode:      v.OEMCode,
		SupplierID:   v.SupplierID,
		SupplierName: v.SupplierName,
		UnitCost:     v.UnitCost,
		UnitPrice:    v.UnitPrice,
		PartPrice:    v.PartPrice,
		LaborPrice:   v.LaborPrice,
		StockQty:     v.StockQty,
		MinStockQty:  v.MinStockQty,
		IsLowStock:   v.IsLowStock,
		Location:     v.Location,
		Notes:        v.Notes,
		VehicleID:    v.VehicleID,
		CreatedAt:    v.CreatedAt,
	}
}

func PartsToAPI(list []model.PartView) []apiv1.Part {
	return lo.Map(list, func(v model.PartView, _ int) apiv1.Part { return PartToAPI(v) })
}

func PartInputToCreateParams(in apiv1.PartInput) model.CreatePartParams {
	return model.CreatePartParams{
		Name:        lo.FromPtr(in.Name),
		SKU:         in.SKU,
		OEMCode:     in.OEMCode,
		SupplierID:  in.SupplierID,
		UnitCost:    in.UnitCost,
		UnitPrice:   in.UnitPrice,
		PartPrice:   in.PartPrice,
		LaborPrice:  in.LaborPrice,
		StockQty:    lo.FromPtr(in.StockQty),
		MinStockQty: in.MinStockQty,
		Location:    in.Location,
		Notes:       in.Notes,
		VehicleID:   in.VehicleID,
	}
}

func PartInputToUpdate(in apiv1.PartInput) model.PartUpdate {
	return model.PartUpdate{
		Name:        in.Name,
		SKU:         in.SKU,
		OEMCode:     in.OEMCode,
		SupplierID:  in.SupplierID,
		UnitCost:    in.UnitCost,
		UnitPrice:   in.UnitPrice,
		PartPrice:   in.PartPrice,
		LaborPrice:  in.LaborPrice,
		StockQty:    in.StockQty,
		MinStockQty: in.MinStockQty,
		Location:    in.Location,
		Notes:       in.Notes,
		VehicleID:   in.VehicleID,
	}
}

func AdjustStockResultToAPI(r *model.AdjustStockResult) apiv1.AdjustStockResponse {
	return apiv1.AdjustStockResponse(*r)
}

func SupplierToAPI(s *model.Supplier) apiv1.Supplier {
	return apiv1.Supplier{
		ID:          s.ID,
		CompanyName: s.CompanyName,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Notes:       s.Notes,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

func SupplierViewToAPI(v *model.SupplierView) apiv1.Supplier {
	out := SupplierToAPI(&v.Supplier)
	out.PartsCount = lo.ToPtr(v.PartsCount)
	return out
}

func SuppliersToAPI(list []*model.Supplier) []apiv1.Supplier {
	return lo.Map(list, func(s *model.Supplier, _ int) apiv1.Supplier { return SupplierToAPI(s) })
}

func SupplierInputToCreateParams(in apiv1.SupplierInput) model.CreateSupplierParams {
	return model.CreateSupplierParams{
		CompanyName: lo.FromPtr(in.CompanyName),
		ContactName: in.ContactName,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		Notes:       in.Notes,
	}
}

func SupplierInputToUpdate(in apiv1.SupplierInput) model.SupplierUpdate {
	return model.SupplierUpdate(in)
}

func FuelTypeToAPI(f *model.FuelType) apiv1.FuelType {
	return apiv1.FuelType(*f)
}

func FuelTypesToAPI(list []*model.FuelType) []apiv1.FuelType {
	return lo.Map(list, func(f *model.FuelType, _ int) apiv1.FuelType { return FuelTypeToAPI(f) })
}

func FuelTypeInputToCreateParams(in apiv1.FuelTypeInput) model.CreateFuelTypeParams {
	return model.CreateFuelTypeParams{
		Name:  lo.FromPtr(in.Name),
		Order: in.Order,
	}
}

func FuelTypeInputToUpdate(in apiv1.FuelTypeInput) model.FuelTypeUpdate {
	return model.FuelTypeUpdate(in)
}
