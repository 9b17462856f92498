package entity

// Role selects which onboarding sequence an invitation activates
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

var validRoles = map[Role]bool{
	RoleCustomer: true,
	RoleVendor:   true,
}

// IsValid returns true if the role is a recognized onboarding role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole maps a raw parameter value to a Role, reporting whether it matched
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, validRoles[role]
}
