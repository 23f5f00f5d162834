package repository

import (
	"time"

	"github.com/google/uuid"
)

type tireSpecRecord struct {
	Width       int    `json:"width"`
	AspectRatio int    `json:"aspectRatio"`
	RimDiameter int    `json:"rimDiameter"`
	LoadIndex   string `json:"loadIndex,omitempty"`
	SpeedRating string `json:"speedRating,omitempty"`
	Brand       string `json:"brand,omitempty"`
}

type tireSetRecord struct {
	Front *tireSpecRecord `json:"front,omitempty"`
	Rear  *tireSpecRecord `json:"rear,omitempty"`
}

type tiresRecord struct {
	Summer *tireSetRecord `json:"summer,omitempty"`
	Winter *tireSetRecord `json:"winter,omitempty"`
	Notes  string         `json:"notes,omitempty"`
}

type registrationDocRecord struct {
	FileID      string    `json:"fileId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type vehicleRow struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	Plate           string
	Make            string
	Model           string
	Year            *int
	VIN             *string
	FuelType        *string
	Km              *int
	Tires           []byte
	RegistrationDoc []byte
	CreatedAt       time.Time
}
