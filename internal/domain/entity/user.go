// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"credguard/internal/domain/credential"

	"github.com/google/uuid"
)

// User is an account that logs in with a password-based credential.
type User struct {
	ID         uuid.UUID              // The Global Unique Identifier (GUID) for the user.
	Name       string                 // The user's display name.
	Username   string                 // The login identifier; unique across all users.
	Privileges Privileges             // Always contains PrivilegeStandard.
	Credential *credential.Credential // Nil only while the account is being assembled.
	CreatedAt  time.Time              // Timestamp of when this user account was created.
	UpdatedAt  time.Time              // Timestamp of the last modification to this user's data.
}

// NewUser creates a user holding the standard privilege.
func NewUser(name, username string, cred *credential.Credential) *User {
	return &User{
		Name:       name,
		Username:   username,
		Privileges: Privileges{PrivilegeStandard},
		Credential: cred,
	}
}

// AddPrivilege grants p. Granting a privilege twice is a no-op.
func (u *User) AddPrivilege(p Privilege) {
	if !p.IsValid() || u.Privileges.Contains(p) {
		return
	}
	u.Privileges = append(u.Privileges, p)
}

// RemovePrivilege revokes p. The standard privilege cannot be removed.
func (u *User) RemovePrivilege(p Privilege) {
	if p == PrivilegeStandard {
		return
	}

	kept := u.Privileges[:0]
	for _, existing := range u.Privileges {
		if existing != p {
			kept = append(kept, existing)
		}
	}
	u.Privileges = kept
}

// HasPrivilege reports whether the user holds p.
func (u *User) HasPrivilege(p Privilege) bool {
	return u.Privileges.Contains(p)
}

// Equal reports whether both users share the same username.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}

	return u.Username == other.Username
}

// Compare orders users by name, then by username.
func (u *User) Compare(other *User) int {
	if c := strings.Compare(u.Name, other.Name); c != 0 {
		return c
	}

	return strings.Compare(u.Username, other.Username)
}
