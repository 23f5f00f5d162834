package apiv1

import (
	"time"

	"github.com/google/uuid"
)

// Prices are in euro cents.
type Part struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	SKU          *string    `json:"sku,omitempty"`
	OEMCode      *string    `json:"oemCode,omitempty"`
	SupplierID   *uuid.UUID `json:"supplierId,omitempty"`
	SupplierName *string    `json:"supplierName,omitempty"`
	UnitCost     *int64     `json:"unitCost,omitempty"`
	UnitPrice    *int64     `json:"unitPrice,omitempty"`
	PartPrice    *int64     `json:"partPrice,omitempty"`
	LaborPrice   *int64     `json:"laborPrice,omitempty"`
	StockQty     int        `json:"stockQty"`
	MinStockQty  *int       `json:"minStockQty,omitempty"`
	IsLowStock   bool       `json:"isLowStock"`
	Location     *string    `json:"location,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	VehicleID    *uuid.UUID `json:"vehicleId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type PartInput struct {
	Name        *string    `json:"name,omitempty"`
	SKU         *string    `json:"sku,omitempty"`
	OEMCode     *string    `json:"oemCode,omitempty"`
	SupplierID  *uuid.UUID `json:"supplierId,omitempty"`
	UnitCost    *int64     `json:"unitCost,omitempty"`
	UnitPrice   *int64     `json:"unitPrice,omitempty"`
	PartPrice   *int64     `json:"partPrice,omitempty"`
	LaborPrice  *int64     `json:"laborPrice,omitempty"`
	StockQty    *int       `json:"stockQty,omitempty"`
	MinStockQty *int       `json:"minStockQty,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	VehicleID   *uuid.UUID `json:"vehicleId,omitempty"`
}

type AdjustStockRequest struct {
	Delta  int     `json:"delta"`
	Reason *string `json:"reason,omitempty"`
}

type AdjustStockResponse struct {
	PartID      uuid.UUID `json:"partId"`
	OldStockQty int       `json:"oldStockQty"`
	NewStockQty int       `json:"newStockQty"`
}

type Supplier struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	ContactName *string   `json:"contactName,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	IsActive    bool      `json:"isActive"`
	PartsCount  *int      `json:"partsCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SupplierInput struct {
	CompanyName *string `json:"companyName,omitempty"`
	ContactName *string `json:"contactName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type FuelType struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type FuelTypeInput struct {
	Name     *string `json:"name,omitempty"`
	Order    *int    `json:"order,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
