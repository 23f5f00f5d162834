// Package policy holds the role rules every use case checks before touching data.
package policy

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
)

// Capability names the sharing flag a customer-role caller needs for a sub-resource.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityVehicles
	CapabilityParts
	CapabilityDocuments
)

func (c Capability) String() string {
	switch c {
	case CapabilityVehicles:
		return "vehicles"
	case CapabilityParts:
		return "parts"
	case CapabilityDocuments:
		return "documents"
	}
	return "none"
}

func RequireActor(actor *model.User) error {
	if actor == nil {
		return fmt.Errorf("%w: sign in required", model.ErrUnauthorized)
	}
	return nil
}

func RequireStaff(actor *model.User) error {
	if err := RequireActor(actor); err != nil {
		return err
	}
	if !actor.Role.IsStaff() {
		return fmt.Errorf("%w: staff role required", model.ErrUnauthorized)
	}
	return nil
}

func RequireAdmin(actor *model.User) error {
	if err := RequireActor(actor); err != nil {
		return err
	}
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: admin role required", model.ErrUnauthorized)
	}
	return nil
}

// RequireCustomerAccess lets staff through and limits a customer-role caller to their own
// record, with the sharing flag for capability switched on.
func RequireCustomerAccess(actor *model.User, customer *model.Customer, capability Capability) error {
	if err := RequireActor(actor); err != nil {
		return err
	}
	if actor.Role.IsStaff() {
		return nil
	}
	if customer == nil || actor.CustomerID == nil || *actor.CustomerID != customer.ID {
		return fmt.Errorf("%w: not your customer record", model.ErrUnauthorized)
	}
	if !allowed(customer.Sharing.ClientPermissions, capability) {
		return fmt.Errorf("%w: %s not shared", model.ErrUnauthorized, capability)
	}
	return nil
}

func allowed(p model.ClientPermissions, c Capability) bool {
	switch c {
	case CapabilityNone:
		return true
	case CapabilityVehicles:
		return p.CanViewVehicles
	case CapabilityParts:
		return p.CanViewParts
	case CapabilityDocuments:
		return p.CanViewDocuments
	}
	return false
}

// IsCustomer reports whether views for actor must be narrowed.
func IsCustomer(actor *model.User) bool {
	return actor != nil && actor.Role == model.RoleCustomer
}

// ShapeCustomer drops notes and sharing for a customer-role caller.
func ShapeCustomer(actor *model.User, v model.CustomerView) model.CustomerView {
	if !IsCustomer(actor) {
		return v
	}
	v.Notes = ""
	v.Sharing = model.Sharing{}
	v.Restricted = true
	return v
}

// ShapePartRequest drops cost snapshots, supplier and notes for a customer-role caller.
func ShapePartRequest(actor *model.User, v model.PartRequestView) model.PartRequestView {
	if !IsCustomer(actor) {
		return v
	}
	v.Supplier = nil
	v.Notes = nil
	v.Items = lo.Map(v.Items, func(it model.PartRequestItemView, _ int) model.PartRequestItemView {
		it.Snapshot = it.Snapshot.WithoutCost()
		return it
	})
	return v
}
