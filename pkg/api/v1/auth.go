package apiv1

import (
	"time"

	"github.com/google/uuid"
)

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Role     *string `json:"role,omitempty"`
}

type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	CustomerID   *uuid.UUID `json:"customerId,omitempty"`
	CustomerName *string    `json:"customerName,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type SetRoleRequest struct {
	Role       string     `json:"role"`
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
}

type LinkCustomerRequest struct {
	CustomerID uuid.UUID `json:"customerId"`
}
