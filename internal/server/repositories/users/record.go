package users

import (
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// record is the stored shape of a user. Attribute names match the original
// users table: email, id, name, password, role. All are strings.
type record struct {
	Email    string `dynamodbav:"email" json:"email"`
	ID       string `dynamodbav:"id" json:"id"`
	Name     string `dynamodbav:"name" json:"name"`
	Password string `dynamodbav:"password" json:"password"`
	Role     string `dynamodbav:"role" json:"role"`
}

func newRecord(u *models.User) record {
	return record{
		Email:    u.Email,
		ID:       u.ID,
		Name:     u.Name,
		Password: u.PasswordHash,
		Role:     string(u.Role),
	}
}

func (r record) user() (*models.User, error) {
	role := models.Role(r.Role)
	if r.Email == "" || r.ID == "" || !role.Valid() {
		return nil, fmt.Errorf("corrupt user record for %q", r.Email)
	}
	return &models.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		Role:         role,
	}, nil
}
