package types

import (
	"fmt"
	"strings"
)

// Role distinguishes buyers from sellers.
type Role string

// User roles.
const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User is a marketplace account. Email is unique across users.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email" binding:"required"`
	Name      string  `json:"name"`
	Role      Role    `json:"role"`
	Avatar    *string `json:"avatar,omitempty"`
	CreatedAt int64   `json:"createdAt"`
}

// EntityID returns the user ID.
func (u User) EntityID() string { return u.ID }

// Validate checks the email and role.
func (u User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: email must not be empty", ErrInvalidData)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}
	return nil
}

// Clone returns a copy that shares no pointers with u.
func (u User) Clone() User {
	if u.Avatar != nil {
		a := *u.Avatar
		u.Avatar = &a
	}
	return u
}

// Matches reports whether query occurs, ignoring case, in the name or email.
func (u User) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q)
}

// UserPatch names the fields of a partial user update. Email is not
// patchable; it identifies the account.
type UserPatch struct {
	Name   *string `json:"name,omitempty"`
	Role   *Role   `json:"role,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Apply returns a copy of u with the named fields replaced.
func (up UserPatch) Apply(u User) User {
	u = u.Clone()
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Role != nil {
		u.Role = *up.Role
	}
	if up.Avatar != nil {
		a := *up.Avatar
		u.Avatar = &a
	}
	return u
}
