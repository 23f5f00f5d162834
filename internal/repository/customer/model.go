package repository

import (
	"time"

	"github.com/google/uuid"
)

type privateFieldsRecord struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type companyFieldsRecord struct {
	RagioneSociale string  `json:"ragioneSociale"`
	PIVA           string  `json:"piva"`
	ReferenteNome  *string `json:"referenteNome,omitempty"`
}

type contactsRecord struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type documentRecord struct {
	FileID     string    `json:"fileId"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy uuid.UUID `json:"uploadedBy"`
}

type customerRow struct {
	ID               uuid.UUID
	Type             string
	DisplayName      string
	PrivateFields    []byte
	CompanyFields    []byte
	Contacts         []byte
	Notes            string
	Documents        []byte
	SharedUserIDs    []uuid.UUID
	CanViewVehicles  bool
	CanViewParts     bool
	CanViewDocuments bool
	CreatedAt        time.Time
}
