package model

import (
	"time"

	"github.com/google/uuid"
)

type CustomerType string

const (
	CustomerPrivate CustomerType = "PRIVATO"
	CustomerCompany CustomerType = "AZIENDA"
)

func (t CustomerType) Valid() bool {
	return t == CustomerPrivate || t == CustomerCompany
}

type PrivateFields struct {
	FirstName string
	LastName  string
}

type CompanyFields struct {
	RagioneSociale string
	PIVA           string
	ReferenteNome  *string
}

type Contacts struct {
	Phone   string
	Email   string
	Address string
}

type Document struct {
	FileID     string
	FileName   string
	FileType   string
	UploadedAt time.Time
	UploadedBy uuid.UUID
}

type ClientPermissions struct {
	CanViewVehicles  bool
	CanViewParts     bool
	CanViewDocuments bool
}

func (p ClientPermissions) Any() bool {
	return p.CanViewVehicles || p.CanViewParts || p.CanViewDocuments
}

type Sharing struct {
	SharedWithClientUserIDs []uuid.UUID
	ClientPermissions       ClientPermissions
}

// Notifiable reports whether the customer opted in to customer-facing notifications.
func (s Sharing) Notifiable() bool {
	return len(s.SharedWithClientUserIDs) > 0 && s.ClientPermissions.Any()
}

type Customer struct {
	ID            uuid.UUID
	Type          CustomerType
	DisplayName   string
	PrivateFields *PrivateFields
	CompanyFields *CompanyFields
	Contacts      Contacts
	Notes         string
	Documents     []Document
	Sharing       Sharing
	CreatedAt     time.Time
}

type CustomerView struct {
	Customer
	VehicleCount int
	// Restricted marks a view narrowed for a customer-role caller.
	Restricted bool
}

type CreateCustomerParams struct {
	Type          CustomerType
	DisplayName   string
	PrivateFields *PrivateFields
	CompanyFields *CompanyFields
	Contacts      Contacts
	Notes         string
}

// CustomerUpdate is a partial update: nil fields are left untouched.
type CustomerUpdate struct {
	Type          *CustomerType
	DisplayName   *string
	PrivateFields *PrivateFields
	CompanyFields *CompanyFields
	Contacts      *Contacts
	Notes         *string
}

func (u CustomerUpdate) IsEmpty() bool {
	return u.Type == nil && u.DisplayName == nil && u.PrivateFields == nil &&
		u.CompanyFields == nil && u.Contacts == nil && u.Notes == nil
}

type CustomerFilter struct {
	SearchText string
	Type       *CustomerType
	IDs        []uuid.UUID
}

type AddDocumentParams struct {
	CustomerID  uuid.UUID
	FileName    string
	ContentType string
}
