package apiv1

import (
	"time"

	"github.com/google/uuid"
)

type PrivateFields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type CompanyFields struct {
	RagioneSociale string  `json:"ragioneSociale"`
	PIVA           string  `json:"piva"`
	ReferenteNome  *string `json:"referenteNome,omitempty"`
}

type Contacts struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Document struct {
	FileID     string    `json:"fileId"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy uuid.UUID `json:"uploadedBy"`
}

type ClientPermissions struct {
	CanViewVehicles  bool `json:"canViewVehicles"`
	CanViewParts     bool `json:"canViewParts"`
	CanViewDocuments bool `json:"canViewDocuments"`
}

type Sharing struct {
	SharedWithClientUserIDs []uuid.UUID       `json:"sharedWithClientUserIds"`
	ClientPermissions       ClientPermissions `json:"clientPermissions"`
}

// Customer omits notes and sharing when Restricted is set.
type Customer struct {
	ID            uuid.UUID      `json:"id"`
	Type          string         `json:"type"`
	DisplayName   string         `json:"displayName"`
	PrivateFields *PrivateFields `json:"privateFields,omitempty"`
	CompanyFields *CompanyFields `json:"companyFields,omitempty"`
	Contacts      Contacts       `json:"contacts"`
	Notes         *string        `json:"notes,omitempty"`
	Documents     []Document     `json:"documents"`
	Sharing       *Sharing       `json:"sharing,omitempty"`
	VehicleCount  int            `json:"vehicleCount"`
	Restricted    bool           `json:"restricted"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type CreateCustomerRequest struct {
	Type          string         `json:"type"`
	DisplayName   string         `json:"displayName"`
	PrivateFields *PrivateFields `json:"privateFields,omitempty"`
	CompanyFields *CompanyFields `json:"companyFields,omitempty"`
	Contacts      Contacts       `json:"contacts"`
	Notes         string         `json:"notes"`
}

type UpdateCustomerRequest struct {
	Type          *string        `json:"type,omitempty"`
	DisplayName   *string        `json:"displayName,omitempty"`
	PrivateFields *PrivateFields `json:"privateFields,omitempty"`
	CompanyFields *CompanyFields `json:"companyFields,omitempty"`
	Contacts      *Contacts      `json:"contacts,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}
