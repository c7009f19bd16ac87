package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

const ProviderStripe = "stripe"

// StripeVerifier checks that a PaymentIntent has succeeded.
type StripeVerifier struct{}

func NewStripeVerifier(secretKey string) (*StripeVerifier, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key not set in configuration")
	}
	stripe.Key = secretKey
	return &StripeVerifier{}, nil
}

func (v *StripeVerifier) Provider() string { return ProviderStripe }

func (v *StripeVerifier) Verify(ctx context.Context, paymentIntentID string) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(paymentIntentID, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.HTTPStatusCode == http.StatusNotFound {
			return ErrNotCompleted
		}
		return fmt.Errorf("stripe payment intent lookup failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return ErrNotCompleted
	}
	return nil
}
