package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

type StripeService struct {
	secretKey string
}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey: secretKey,
	}
}

// Sign opens a PaymentIntent for the committed pledge and returns its client
// secret, which the frontend uses the way it uses a PostFinance signature.
// The idempotency key makes resuming the same pledge reuse the intent.
func (s *StripeService) Sign(ctx context.Context, req SignRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:           stripe.Int64(int64(req.Amount)),
		Currency:         stripe.String(string(stripe.CurrencyCHF)),
		SetupFutureUsage: stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession)),
		Description:      stripe.String(fmt.Sprintf("Pledge %s", req.OrderID)),
	}
	params.Context = ctx
	params.SetIdempotencyKey(fmt.Sprintf("pledge-%s-%d", req.OrderID, req.Amount))
	params.AddMetadata("pledge_id", req.OrderID)
	params.AddMetadata("user_id", req.UserID)
	params.AddMetadata("alias", req.Alias)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent for pledge %s: %w", req.OrderID, err)
	}

	return intent.ClientSecret, nil
}
