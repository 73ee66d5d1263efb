package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/repository"
)

type PaymentSourceFinder interface {
	FindPaymentSource(userID uuid.UUID, method string) (*models.PaymentSource, error)
}

// AliasManager picks the alias a card payment is bound to. Aliases are not
// stored here; the payment provider reports them back once a card is used.
type AliasManager struct {
	newID func() string
}

func NewAliasManager() *AliasManager {
	return &AliasManager{newID: uuid.NewString}
}

// NewAliasManagerWithGenerator is used where alias minting must be predictable.
func NewAliasManagerWithGenerator(newID func() string) *AliasManager {
	return &AliasManager{newID: newID}
}

func (m *AliasManager) Resolve(finder PaymentSourceFinder, userID uuid.UUID, sessionUser bool) (string, error) {
	if sessionUser {
		source, err := finder.FindPaymentSource(userID, models.PaymentMethodPostFinanceCard)
		switch {
		case err == nil:
			if source.PspID != "" {
				return source.PspID, nil
			}
		case errors.Is(err, repository.ErrNotFound):
		default:
			return "", fmt.Errorf("find payment source of %s: %w", userID, err)
		}
	}

	return m.newID(), nil
}
