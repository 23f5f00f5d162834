package model

import (
	"time"

	"github.com/google/uuid"
)

// Part is a catalog entry. Money fields are euro cents.
type Part struct {
	ID          uuid.UUID
	Name        string
	SKU         *string
	OEMCode     *string
	SupplierID  *uuid.UUID
	UnitCost    *int64
	UnitPrice   *int64
	PartPrice   *int64
	LaborPrice  *int64
	StockQty    int
	MinStockQty *int
	Location    *string
	Notes       *string
	VehicleID   *uuid.UUID
	CreatedAt   time.Time
}

func (p *Part) IsLowStock() bool {
	return p.MinStockQty != nil && p.StockQty <= *p.MinStockQty
}

type PartView struct {
	Part
	SupplierName *string
	IsLowStock   bool
}

type PartFilter struct {
	SearchText string
	VehicleID  *uuid.UUID
	SupplierID *uuid.UUID
	IDs        []uuid.UUID
}

type CreatePartParams struct {
	Name        string
	SKU         *string
	OEMCode     *string
	SupplierID  *uuid.UUID
	UnitCost    *int64
	UnitPrice   *int64
	PartPrice   *int64
	LaborPrice  *int64
	StockQty    int
	MinStockQty *int
	Location    *string
	Notes       *string
	VehicleID   *uuid.UUID
}

type PartUpdate struct {
	Name        *string
	SKU         *string
	OEMCode     *string
	SupplierID  *uuid.UUID
	UnitCost    *int64
	UnitPrice   *int64
	PartPrice   *int64
	LaborPrice  *int64
	StockQty    *int
	MinStockQty *int
	Location    *string
	Notes       *string
	VehicleID   *uuid.UUID
}

type AdjustStockParams struct {
	PartID uuid.UUID
	Delta  int
	Reason *string
}

type AdjustStockResult struct {
	PartID      uuid.UUID
	OldStockQty int
	NewStockQty int
}
