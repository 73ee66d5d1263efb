package service

import (
	"errors"

	"github.com/sefazor/crowdfunding-backend/internal/i18n"
	"github.com/sefazor/crowdfunding-backend/internal/repository"
)

var (
	ErrInvalidTemplateReference = errors.New("pledge references an unknown package option")
	ErrCrossPackageSelection    = errors.New("pledge options span more than one package")
	ErrAmountOutOfRange         = errors.New("pledge option amount out of range")
	ErrTotalBelowMinimum        = errors.New("pledge total below minimum")
	ErrMissingReductionReason   = errors.New("reduced pledge without reason")
	ErrIdentityMismatch         = errors.New("submitted email does not match session")
	ErrReducedPledgeAlreadyUsed = errors.New("user already holds a reduced or rewarded pledge")

	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrPledgeNotFound    = errors.New("pledge not found")
	ErrPledgeAlreadyPaid = errors.New("pledge already paid")
	ErrPackageNotFound   = errors.New("package not found")
)

// IsValidationError reports whether err is a pricing or cart failure whose
// details must not reach the client.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTemplateReference) ||
		errors.Is(err, ErrCrossPackageSelection) ||
		errors.Is(err, ErrAmountOutOfRange) ||
		errors.Is(err, ErrTotalBelowMinimum)
}

// MessageKey returns the translation key a failure is shown to the user as.
func MessageKey(err error) string {
	switch {
	case errors.Is(err, ErrReducedPledgeAlreadyUsed):
		return i18n.KeyReducedAlreadyHas
	case errors.Is(err, ErrIdentityMismatch), errors.Is(err, ErrUnauthorized):
		return i18n.KeyUnauthorized
	case errors.Is(err, ErrPledgeAlreadyPaid):
		return i18n.KeyPledgeAlreadyPaid
	case errors.Is(err, ErrPledgeNotFound):
		return i18n.KeyPledgeNotFound
	case errors.Is(err, ErrInvalidInput):
		return i18n.KeyInvalidRequest
	case errors.Is(err, ErrPackageNotFound):
		return i18n.KeyPackageNotFound
	default:
		return i18n.KeyUnexpected
	}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}
