// Package password provides salted one-way hashing of user passwords.
package password

import (
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Supported algorithm names.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	// Hash returns a salted hash of password. Two calls with the same
	// input return different values. An empty password is rejected with
	// common.ErrInvalidInput.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed hash is a
	// mismatch, not an error.
	Verify(password, hash string) bool
}

// NewHasher returns the Hasher for algorithm. bcryptCost is only used by bcrypt.
func NewHasher(algorithm string, bcryptCost int) (Hasher, error) {
	switch algorithm {
	case "", AlgorithmBcrypt:
		return NewBcryptHasher(bcryptCost), nil
	case AlgorithmArgon2id:
		return NewArgon2Hasher(nil), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
}

func checkPassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is empty", common.ErrInvalidInput)
	}
	return nil
}
