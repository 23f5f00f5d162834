package apiv1

import (
	"time"

	"github.com/google/uuid"
)

type TireSpec struct {
	Width       int    `json:"width"`
	AspectRatio int    `json:"aspectRatio"`
	RimDiameter int    `json:"rimDiameter"`
	LoadIndex   string `json:"loadIndex"`
	SpeedRating string `json:"speedRating"`
	Brand       string `json:"brand"`
}

type TireSet struct {
	Front *TireSpec `json:"front,omitempty"`
	Rear  *TireSpec `json:"rear,omitempty"`
}

type Tires struct {
	Summer *TireSet `json:"summer,omitempty"`
	Winter *TireSet `json:"winter,omitempty"`
	Notes  string   `json:"notes"`
}

type RegistrationDoc struct {
	FileID      string    `json:"fileId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type Vehicle struct {
	ID              uuid.UUID        `json:"id"`
	CustomerID      uuid.UUID        `json:"customerId"`
	Plate           string           `json:"plate"`
	Make            string           `json:"make"`
	Model           string           `json:"model"`
	Year            *int             `json:"year,omitempty"`
	VIN             *string          `json:"vin,omitempty"`
	FuelType        *string          `json:"fuelType,omitempty"`
	Km              *int             `json:"km,omitempty"`
	Tires           *Tires           `json:"tires,omitempty"`
	RegistrationDoc *RegistrationDoc `json:"registrationDoc,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type CreateVehicleRequest struct {
	CustomerID uuid.UUID `json:"customerId"`
	Plate      string    `json:"plate"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Year       *int      `json:"year,omitempty"`
	VIN        *string   `json:"vin,omitempty"`
	FuelType   *string   `json:"fuelType,omitempty"`
	Km         *int      `json:"km,omitempty"`
	Tires      *Tires    `json:"tires,omitempty"`
}

type UpdateVehicleRequest struct {
	Plate    *string `json:"plate,omitempty"`
	Make     *string `json:"make,omitempty"`
	Model    *string `json:"model,omitempty"`
	Year     *int    `json:"year,omitempty"`
	VIN      *string `json:"vin,omitempty"`
	FuelType *string `json:"fuelType,omitempty"`
	Km       *int    `json:"km,omitempty"`
	Tires    *Tires  `json:"tires,omitempty"`
}
