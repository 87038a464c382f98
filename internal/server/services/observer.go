package services

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Outcome labels passed to an Observer.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeEmailInUse         = "email_in_use"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeStoreUnavailable   = "store_unavailable"
	OutcomeTokenMalformed     = "malformed"
	OutcomeTokenExpired       = "expired"
	OutcomeTokenSignature     = "invalid_signature"
	OutcomeError              = "error"
)

// Observer receives the outcome of each AuthService call.
type Observer interface {
	ObserveRegistration(outcome string)
	ObserveLogin(outcome string)
	ObserveTokenRejection(reason string)
}

type nopObserver struct{}

func (nopObserver) ObserveRegistration(string)   {}
func (nopObserver) ObserveLogin(string)          {}
func (nopObserver) ObserveTokenRejection(string) {}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, common.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, common.ErrEmailAlreadyInUse):
		return OutcomeEmailInUse
	case errors.Is(err, common.ErrInvalidCredentials):
		return OutcomeInvalidCredentials
	case errors.Is(err, common.ErrStoreUnavailable):
		return OutcomeStoreUnavailable
	case errors.Is(err, common.ErrTokenExpired):
		return OutcomeTokenExpired
	case errors.Is(err, common.ErrTokenInvalidSignature):
		return OutcomeTokenSignature
	case errors.Is(err, common.ErrTokenMalformed):
		return OutcomeTokenMalformed
	default:
		return OutcomeError
	}
}
