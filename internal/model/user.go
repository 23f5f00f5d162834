package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "BENZINE"
	RoleCustomer Role = "CLIENTE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

func (r Role) IsStaff() bool { return r == RoleAdmin || r == RoleStaff }

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	CustomerID   *uuid.UUID
	PasswordHash string
	CreatedAt    time.Time
}

// DisplayName prefers the name, then the email.
func (u *User) DisplayName() string {
	if u == nil {
		return UnknownUserName
	}
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	if u.Email != "" {
		return u.Email
	}
	return UnknownUserName
}

type UserView struct {
	User
	CustomerName *string
}

type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired treats a session as dead from its expiry instant on.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

type SignUpParams struct {
	Email    string
	Name     string
	Password string
	Role     *Role
}

type SetRoleParams struct {
	UserID     uuid.UUID
	Role       Role
	CustomerID *uuid.UUID
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
