package model

import (
	"time"

	"github.com/google/uuid"
)

type (
	EventType  string
	EntityType string
)

const (
	EntityCustomer    EntityType = "customer"
	EntityVehicle     EntityType = "vehicle"
	EntityPart        EntityType = "part"
	EntityPartRequest EntityType = "partRequest"
	EntitySupplier    EntityType = "supplier"
	EntityFuelType    EntityType = "fuelType"
	EntityUser        EntityType = "user"
)

const (
	EventCustomerCreated         EventType = "CUSTOMER_CREATED"
	EventCustomerUpdated         EventType = "CUSTOMER_UPDATED"
	EventCustomerDeleted         EventType = "CUSTOMER_DELETED"
	EventCustomerSharingUpdated  EventType = "CUSTOMER_SHARING_UPDATED"
	EventCustomerDocumentAdded   EventType = "CUSTOMER_DOCUMENT_ADDED"
	EventCustomerDocumentRemoved EventType = "CUSTOMER_DOCUMENT_REMOVED"

	EventVehicleCreated     EventType = "VEHICLE_CREATED"
	EventVehicleUpdated     EventType = "VEHICLE_UPDATED"
	EventVehicleDeleted     EventType = "VEHICLE_DELETED"
	EventVehicleDocUploaded EventType = "VEHICLE_DOC_UPLOADED"

	EventPartCreated       EventType = "PART_CREATED"
	EventPartUpdated       EventType = "PART_UPDATED"
	EventPartStockAdjusted EventType = "PART_STOCK_ADJUSTED"
	EventPartDeleted       EventType = "PART_DELETED"

	EventPartRequestCreated       EventType = "PART_REQUEST_CREATED"
	EventPartRequestUpdated       EventType = "PART_REQUEST_UPDATED"
	EventPartRequestStatusChanged EventType = "PART_REQUEST_STATUS_CHANGED"
	EventPartRequestDeleted       EventType = "PART_REQUEST_DELETED"

	EventSupplierCreated     EventType = "SUPPLIER_CREATED"
	EventSupplierUpdated     EventType = "SUPPLIER_UPDATED"
	EventSupplierDeactivated EventType = "SUPPLIER_DEACTIVATED"
	EventSupplierDeleted     EventType = "SUPPLIER_DELETED"

	EventFuelTypeCreated     EventType = "FUEL_TYPE_CREATED"
	EventFuelTypeUpdated     EventType = "FUEL_TYPE_UPDATED"
	EventFuelTypeDeactivated EventType = "FUEL_TYPE_DEACTIVATED"
	EventFuelTypeDeleted     EventType = "FUEL_TYPE_DELETED"

	EventUserRoleChanged      EventType = "USER_ROLE_CHANGED"
	EventUserLinkedToCustomer EventType = "USER_LINKED_TO_CUSTOMER"
)

// Event is an immutable audit record.
type Event struct {
	ID          uuid.UUID
	Type        EventType
	EntityType  EntityType
	EntityID    string
	Payload     map[string]any
	ActorUserID uuid.UUID
	CreatedAt   time.Time
}

type RecordEventParams struct {
	Type        EventType
	EntityType  EntityType
	EntityID    string
	Payload     map[string]any
	ActorUserID uuid.UUID
}

type EventFilter struct {
	Type       *EventType
	EntityType *EntityType
	EntityID   *string
	Limit      uint64
}
