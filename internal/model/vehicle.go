package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type TireSpec struct {
	Width       int
	AspectRatio int
	RimDiameter int
	LoadIndex   string
	SpeedRating string
	Brand       string
}

type TireSet struct {
	Front *TireSpec
	Rear  *TireSpec
}

type Tires struct {
	Summer *TireSet
	Winter *TireSet
	Notes  string
}

type RegistrationDoc struct {
	FileID      string
	FileName    string
	ContentType string
	UploadedAt  time.Time
}

type Vehicle struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	Plate           string
	Make            string
	Model           string
	Year            *int
	VIN             *string
	FuelType        *string
	Km              *int
	Tires           *Tires
	RegistrationDoc *RegistrationDoc
	CreatedAt       time.Time
}

// MakeModel joins make and model the way lists display them.
func (v *Vehicle) MakeModel() string {
	return strings.TrimSpace(v.Make + " " + v.Model)
}

type CreateVehicleParams struct {
	CustomerID uuid.UUID
	Plate      string
	Make       string
	Model      string
	Year       *int
	VIN        *string
	FuelType   *string
	Km         *int
	Tires      *Tires
}

type VehicleUpdate struct {
	Plate    *string
	Make     *string
	Model    *string
	Year     *int
	VIN      *string
	FuelType *string
	Km       *int
	Tires    *Tires
}

func (u VehicleUpdate) IsEmpty() bool {
	return u.Plate == nil && u.Make == nil && u.Model == nil && u.Year == nil &&
		u.VIN == nil && u.FuelType == nil && u.Km == nil && u.Tires == nil
}

// NormalizePlate uppercases and strips every whitespace rune.
func NormalizePlate(plate string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, plate)
}
