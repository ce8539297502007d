package kernel

import (
	"fmt"

	"washday/internal/pkg/errs"
)

// Role identifies the kind of actor requesting an order mutation.
// Status transitions are authorized per role: drivers move orders through the
// pickup/delivery legs, admins may apply any valid transition, and customers
// may only cancel.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the ordering customer (possibly a guest).
	RoleCustomer

	// RoleDriver is a pickup/delivery driver.
	RoleDriver

	// RoleAdmin is a laundromat or storefront administrator.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleDriver:   "driver",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role name as stored in sessions and audit entries.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the role is one of the defined actor roles.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleDriver && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
