package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Role is the authorization level carried by a user and by their tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a role name to a Role. An empty name yields RoleUser;
// names are matched case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", common.ErrInvalidInput, s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string { return string(r) }

// User is a registered account. Email is the natural key; ID is a generated
// surrogate that never changes. PasswordHash is never the raw password.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}
