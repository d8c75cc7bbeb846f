package enums

import "fmt"

// Role is the account-level permissions role stored on a profile.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"

	// RoleUnknown is returned when the role could not be resolved, e.g.
	// because the profile lookup failed. Callers must not grant access
	// while the role is unknown.
	RoleUnknown Role = ""
)

var validRoles = []Role{
	RoleAdmin,
	RoleVendor,
	RoleCustomer,
	RoleStaff,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
