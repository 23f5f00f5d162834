package model

import (
	"time"

	"github.com/google/uuid"
)

type PartRequestStatus string

const (
	StatusToOrder   PartRequestStatus = "DA_ORDINARE"
	StatusOrdered   PartRequestStatus = "ORDINATO"
	StatusArrived   PartRequestStatus = "ARRIVATO"
	StatusDelivered PartRequestStatus = "CONSEGNATO"
	StatusCancelled PartRequestStatus = "ANNULLATO"
)

var PartRequestStatuses = []PartRequestStatus{
	StatusToOrder,
	StatusOrdered,
	StatusArrived,
	StatusDelivered,
	StatusCancelled,
}

func (s PartRequestStatus) Valid() bool {
	for _, st := range PartRequestStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Fallback labels used when a referenced record is gone.
const (
	PartNameNotFound = "part not found"
	PartNameCustom   = "custom part"
	UnknownName      = "unknown"
	UnknownUserName  = "unknown user"
)

// PriceSnapshot freezes catalog prices at line-item creation. Values are euro cents.
type PriceSnapshot struct {
	unitPrice int64
	unitCost  int64
	hasPrice  bool
	hasCost   bool
}

func NewPriceSnapshot(unitPrice, unitCost *int64) PriceSnapshot {
	var s PriceSnapshot
	if unitPrice != nil {
		s.unitPrice, s.hasPrice = *unitPrice, true
	}
	if unitCost != nil {
		s.unitCost, s.hasCost = *unitCost, true
	}
	return s
}

func (s PriceSnapshot) UnitPrice() (int64, bool) { return s.unitPrice, s.hasPrice }
func (s PriceSnapshot) UnitCost() (int64, bool)  { return s.unitCost, s.hasCost }

func (s PriceSnapshot) UnitPricePtr() *int64 {
	if !s.hasPrice {
		return nil
	}
	v := s.unitPrice
	return &v
}

func (s PriceSnapshot) UnitCostPtr() *int64 {
	if !s.hasCost {
		return nil
	}
	v := s.unitCost
	return &v
}

// Complete reports whether both values are already frozen.
func (s PriceSnapshot) Complete() bool { return s.hasPrice && s.hasCost }

// FillMissing returns a snapshot where only the unset values take the catalog ones.
func (s PriceSnapshot) FillMissing(unitPrice, unitCost *int64) PriceSnapshot {
	out := s
	if !out.hasPrice && unitPrice != nil {
		out.unitPrice, out.hasPrice = *unitPrice, true
	}
	if !out.hasCost && unitCost != nil {
		out.unitCost, out.hasCost = *unitCost, true
	}
	return out
}

// WithoutCost drops the cost value. Used when shaping customer-facing views.
func (s PriceSnapshot) WithoutCost() PriceSnapshot {
	out := s
	out.unitCost, out.hasCost = 0, false
	return out
}

type RequestedItem struct {
	PartID       *uuid.UUID
	FreeTextName string
	Qty          int
	Snapshot     PriceSnapshot
}

type TimelineEntry struct {
	Status   PartRequestStatus
	At       time.Time
	ByUserID uuid.UUID
}

type PartRequest struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	VehicleID  uuid.UUID
	Items      []RequestedItem
	Status     PartRequestStatus
	Timeline   []TimelineEntry
	Supplier   *string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreatePartRequestParams struct {
	CustomerID uuid.UUID
	VehicleID  uuid.UUID
	Items      []RequestedItem
	Supplier   *string
	Notes      *string
}

// PartRequestUpdate is a typed partial update. Status and timeline are never part of it.
type PartRequestUpdate struct {
	Items    *[]RequestedItem
	Supplier *string
	Notes    *string
}

func (u PartRequestUpdate) IsEmpty() bool {
	return u.Items == nil && u.Supplier == nil && u.Notes == nil
}

type PartRequestFilter struct {
	Status     *PartRequestStatus
	CustomerID *uuid.UUID
	VehicleID  *uuid.UUID
	PartID     *uuid.UUID
	SearchText string
}

type PartRequestItemView struct {
	RequestedItem
	PartName string
}

type TimelineEntryView struct {
	TimelineEntry
	UserName string
}

type PartRequestView struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	VehicleID        uuid.UUID
	CustomerName     string
	CustomerEmail    *string
	CustomerPhone    *string
	VehiclePlate     string
	VehicleMakeModel string
	Items            []PartRequestItemView
	Status           PartRequestStatus
	Timeline         []TimelineEntryView
	Supplier         *string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
