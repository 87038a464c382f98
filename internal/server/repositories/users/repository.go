// Package users persists user records keyed by email. Each backend enforces
// email uniqueness with its own conditional-write primitive, so Save never
// overwrites an existing record.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository is a durable email → user mapping.
//
// Save stores a new user and returns common.ErrEmailAlreadyInUse if the
// email is taken. FindByEmail reports absence as found == false with a nil
// error. Backend outages wrap common.ErrStoreUnavailable and are not retried.
type Repository interface {
	Save(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, bool, error)
}

// Store is the user store consumed by the auth service.
type Store struct {
	Repository
}

func NewStore(r Repository) *Store {
	return &Store{Repository: r}
}

// ExistsByEmail reports whether a user with email is stored.
func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, found, err := s.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return found, nil
}
