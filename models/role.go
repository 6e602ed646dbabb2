package models

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned by [ParseRole] for values outside the closed set
// of roles.
var ErrUnknownRole = errors.New("unknown role")

// Role is the access level of a user. The set of roles is closed.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a stored role value into a [Role].
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return role, nil
}
