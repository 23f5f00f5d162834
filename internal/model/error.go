package model

import (
	"errors"
	"fmt"
)

// Kind roots. Transport maps on these.
var (
	ErrValidation   = errors.New("invalid input") // 400
	ErrUnauthorized = errors.New("unauthorized")  // 401
	ErrNotFound     = errors.New("not found")     // 404
	ErrConflict     = errors.New("conflict")      // 409
	ErrInvalidState = errors.New("invalid state") // 422
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrCustomerNotFound     = fmt.Errorf("customer %w", ErrNotFound)
	ErrVehicleNotFound      = fmt.Errorf("vehicle %w", ErrNotFound)
	ErrPartNotFound         = fmt.Errorf("part %w", ErrNotFound)
	ErrSupplierNotFound     = fmt.Errorf("supplier %w", ErrNotFound)
	ErrFuelTypeNotFound     = fmt.Errorf("fuel type %w", ErrNotFound)
	ErrPartRequestNotFound  = fmt.Errorf("part request %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
	ErrDocumentNotFound     = fmt.Errorf("document %w", ErrNotFound)
	ErrSessionNotFound      = fmt.Errorf("session %w", ErrNotFound)

	ErrEmailTaken    = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrPlateTaken    = fmt.Errorf("plate already registered: %w", ErrConflict)
	ErrCustomerInUse = fmt.Errorf("customer has vehicles or part requests: %w", ErrConflict)
	ErrVehicleInUse  = fmt.Errorf("vehicle has part requests: %w", ErrConflict)
	ErrPartInUse     = fmt.Errorf("part is used by part requests: %w", ErrConflict)

	ErrNotificationNotFailed = fmt.Errorf("notification is not in FAILED state: %w", ErrInvalidState)
)

// Invalid wraps ErrValidation with a human-readable reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
