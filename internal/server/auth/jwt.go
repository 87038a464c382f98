// Package auth issues and validates the signed, time-bound bearer tokens
// that prove a caller's identity and role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Config is the immutable token configuration, built once at startup.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Claims is the verified payload of a token. "sub" carries the email.
type Claims struct {
	UserID string      `json:"uid,omitempty"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Email returns the subject, which is the user's email.
func (c *Claims) Email() string { return c.Subject }

// TokenService signs tokens with HS256 using a process-wide secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService copies cfg so later changes to the caller's slice have no effect.
func NewTokenService(cfg Config) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", cfg.TTL)
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &TokenService{secret: secret, ttl: cfg.TTL, issuer: cfg.Issuer, now: time.Now}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue returns a signed token for user valid for the configured TTL.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate checks the signature first and expiry second, and returns the
// claims on success. Failures are one of common.ErrTokenMalformed,
// common.ErrTokenInvalidSignature or common.ErrTokenExpired.
//
// Segments are decoded strictly, so every signature has exactly one
// accepted encoding. A token is expired once now reaches "exp".
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrTokenMalformed
	}

	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parser := jwt.NewParser(opts...)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		// Header and payload decode but the full parse is malformed: only the
		// signature segment is left, so it cannot match.
		if errors.Is(err, jwt.ErrTokenMalformed) {
			if _, _, uerr := parser.ParseUnverified(tokenString, &Claims{}); uerr == nil {
				return nil, common.ErrTokenInvalidSignature
			}
		}
		return nil, mapJWTError(err)
	}
	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return common.ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	default:
		return fmt.Errorf("%w: %v", common.ErrTokenMalformed, err)
	}
}
