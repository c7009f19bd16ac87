package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/plutov/paypal/v4"
)

const ProviderPayPal = "paypal"

// PayPalVerifier checks that a PayPal checkout order has been captured.
type PayPalVerifier struct {
	client *paypal.Client

	mu          sync.Mutex
	tokenExpiry time.Time
}

// NewPayPalVerifier targets the live API when mode is "live" and the
// sandbox otherwise. A non-empty baseURL overrides both.
func NewPayPalVerifier(clientID, secret, mode, baseURL string) (*PayPalVerifier, error) {
	if clientID == "" || secret == "" {
		return nil, fmt.Errorf("paypal credentials not set in configuration")
	}
	if baseURL == "" {
		baseURL = paypal.APIBaseSandBox
		if strings.EqualFold(mode, "live") {
			baseURL = paypal.APIBaseLive
		}
	}
	client, err := paypal.NewClient(clientID, secret, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create paypal client: %w", err)
	}
	return &PayPalVerifier{client: client}, nil
}

func (v *PayPalVerifier) Provider() string { return ProviderPayPal }

func (v *PayPalVerifier) ensureToken(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if time.Now().Before(v.tokenExpiry) {
		return nil
	}
	tok, err := v.client.GetAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("paypal auth failed: %w", err)
	}
	// Refresh a minute early.
	v.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return nil
}

func (v *PayPalVerifier) Verify(ctx context.Context, orderID string) error {
	if err := v.ensureToken(ctx); err != nil {
		return err
	}

	order, err := v.client.GetOrder(ctx, orderID)
	if err != nil {
		var perr *paypal.ErrorResponse
		if errors.As(err, &perr) && perr.Response != nil && perr.Response.StatusCode == http.StatusNotFound {
			return ErrNotCompleted
		}
		return fmt.Errorf("paypal order lookup failed: %w", err)
	}
	if order.Status != "COMPLETED" {
		return ErrNotCompleted
	}
	return nil
}
