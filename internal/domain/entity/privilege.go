package entity

import "slices"

// Privilege is a capability granted to a user.
type Privilege string

const (
	// PrivilegeStandard is held by every user.
	PrivilegeStandard Privilege = "STANDARD"
	// PrivilegeUserAdmin allows managing other users' credentials and the policy.
	PrivilegeUserAdmin Privilege = "USER_ADMIN"
)

// String returns the string representation of the Privilege.
func (p Privilege) String() string {
	return string(p)
}

// IsValid checks if the Privilege is a known value.
func (p Privilege) IsValid() bool {
	switch p {
	case PrivilegeStandard, PrivilegeUserAdmin:
		return true
	default:
		return false
	}
}

// Privileges is a slice of Privilege for convenience.
type Privileges []Privilege

// Contains checks if the slice contains a specific privilege.
func (ps Privileges) Contains(p Privilege) bool {
	return slices.Contains(ps, p)
}

// ToStrings converts Privileges to []string for JWT and storage compatibility.
func (ps Privileges) ToStrings() []string {
	result := make([]string, len(ps))
	for i, p := range ps {
		result[i] = p.String()
	}

	return result
}

// PrivilegesFromStrings converts []string to Privileges, filtering out unknown values.
// The standard privilege is always present in the result.
func PrivilegesFromStrings(ss []string) Privileges {
	result := Privileges{PrivilegeStandard}
	for _, s := range ss {
		p := Privilege(s)
		if p.IsValid() && !result.Contains(p) {
			result = append(result, p)
		}
	}

	return result
}
