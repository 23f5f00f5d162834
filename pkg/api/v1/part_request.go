package apiv1

import (
	"time"

	"github.com/google/uuid"
)

type RequestedItem struct {
	PartID            *uuid.UUID `json:"partId,omitempty"`
	FreeTextName      string     `json:"freeTextName,omitempty"`
	Qty               int        `json:"qty"`
	UnitPriceSnapshot *int64     `json:"unitPriceSnapshot,omitempty"`
	UnitCostSnapshot  *int64     `json:"unitCostSnapshot,omitempty"`
}

type PartRequestItem struct {
	RequestedItem
	PartName string `json:"partName"`
}

type TimelineEntry struct {
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
	ByUserID uuid.UUID `json:"byUserId"`
	UserName string    `json:"userName"`
}

type PartRequest struct {
	ID               uuid.UUID         `json:"id"`
	CustomerID       uuid.UUID         `json:"customerId"`
	VehicleID        uuid.UUID         `json:"vehicleId"`
	CustomerName     string            `json:"customerName"`
	CustomerEmail    *string           `json:"customerEmail,omitempty"`
	CustomerPhone    *string           `json:"customerPhone,omitempty"`
	VehiclePlate     string            `json:"vehiclePlate"`
	VehicleMakeModel string            `json:"vehicleMakeModel"`
	Items            []PartRequestItem `json:"items"`
	Status           string            `json:"status"`
	Timeline         []TimelineEntry   `json:"timeline"`
	Supplier         *string           `json:"supplier,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type CreatePartRequestRequest struct {
	CustomerID uuid.UUID       `json:"customerId"`
	VehicleID  uuid.UUID       `json:"vehicleId"`
	Items      []RequestedItem `json:"items"`
	Supplier   *string         `json:"supplier,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
}

type UpdatePartRequestRequest struct {
	Items    *[]RequestedItem `json:"items,omitempty"`
	Supplier *string          `json:"supplier,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type StatusList struct {
	Statuses []string `json:"statuses"`
}
