package model

import (
	"time"

	"github.com/google/uuid"
)

type FuelType struct {
	ID        uuid.UUID
	Name      string
	Order     int
	IsActive  bool
	CreatedAt time.Time
}

type CreateFuelTypeParams struct {
	Name  string
	Order *int
}

type FuelTypeUpdate struct {
	Name     *string
	Order    *int
	IsActive *bool
}
