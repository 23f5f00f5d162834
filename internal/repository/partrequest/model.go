package repository

import (
	"time"

	"github.com/google/uuid"
)

type itemRecord struct {
	PartID            *uuid.UUID `json:"partId,omitempty"`
	FreeTextName      string     `json:"freeTextName,omitempty"`
	Qty               int        `json:"qty"`
	UnitPriceSnapshot *int64     `json:"unitPriceSnapshot,omitempty"`
	UnitCostSnapshot  *int64     `json:"unitCostSnapshot,omitempty"`
}

type timelineRecord struct {
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
	ByUserID uuid.UUID `json:"byUserId"`
}

type partRequestRow struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	VehicleID  uuid.UUID
	Items      []byte
	Status     string
	Timeline   []byte
	Supplier   *string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
