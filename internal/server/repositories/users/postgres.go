package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save relies on the primary key on email; a conflicting insert affects no rows.
func (r *PostgresRepository) Save(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (email, id, name, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		user.Email, user.ID, user.Name, user.PasswordHash, string(user.Role))
	if err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}
	if n == 0 {
		return common.ErrEmailAlreadyInUse
	}

	return nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	query :=
		`SELECT email, id, name, password_hash, role FROM users
		 WHERE email = $1`

	var rec record
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&rec.Email, &rec.ID, &rec.Name, &rec.Password, &rec.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}

	u, err := rec.user()
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

var _ Repository = (*PostgresRepository)(nil)
