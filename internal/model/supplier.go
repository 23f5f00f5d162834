package model

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID          uuid.UUID
	CompanyName string
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	Notes       *string
	IsActive    bool
	CreatedAt   time.Time
}

type SupplierView struct {
	Supplier
	PartsCount int
}

type CreateSupplierParams struct {
	CompanyName string
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	Notes       *string
}

type SupplierUpdate struct {
	CompanyName *string
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	Notes       *string
	IsActive    *bool
}

// RemoveOutcome tells whether a catalog entry was deleted or only deactivated.
type RemoveOutcome string

const (
	RemoveDeleted     RemoveOutcome = "deleted"
	RemoveDeactivated RemoveOutcome = "deactivated"
)
