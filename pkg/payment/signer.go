package payment

import (
	"context"
	"fmt"

	"github.com/sefazor/crowdfunding-backend/internal/config"
)

// SignRequest is the committed order data a payment signature covers.
type SignRequest struct {
	OrderID string
	Amount  int
	Alias   string
	UserID  string
}

type Signer interface {
	Sign(ctx context.Context, req SignRequest) (string, error)
}

func NewSigner(cfg *config.Config) (Signer, error) {
	switch cfg.Payment.Provider {
	case config.PaymentProviderPostFinance:
		return NewPostFinanceSigner(cfg.Payment.PostFinancePSPID, cfg.Payment.PostFinanceSecret), nil
	case config.PaymentProviderStripe:
		return NewStripeService(cfg.Payment.StripeSecretKey), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Payment.Provider)
	}
}
