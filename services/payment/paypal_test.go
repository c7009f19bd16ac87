package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayPalServer(t *testing.T, orders map[string]string, tokenCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/v2/checkout/orders/"):]
		status, ok := orders[id]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"name":"RESOURCE_NOT_FOUND","message":"not found"}`))
			return
		}
		w.Write([]byte(`{"id":"` + id + `","status":"` + status + `"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPayPalVerifier(t *testing.T) {
	var tokenCalls int32
	srv := newPayPalServer(t, map[string]string{"paid": "COMPLETED", "pending": "APPROVED"}, &tokenCalls)

	v, err := NewPayPalVerifier("id", "secret", "sandbox", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, ProviderPayPal, v.Provider())

	t.Run("completed order verifies", func(t *testing.T) {
		assert.NoError(t, v.Verify(context.Background(), "paid"))
	})

	t.Run("approved but uncaptured order is rejected", func(t *testing.T) {
		assert.True(t, errors.Is(v.Verify(context.Background(), "pending"), ErrNotCompleted))
	})

	t.Run("unknown order is rejected", func(t *testing.T) {
		assert.True(t, errors.Is(v.Verify(context.Background(), "missing"), ErrNotCompleted))
	})

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls), "access token should be reused")
}

func TestNewPayPalVerifierRequiresCredentials(t *testing.T) {
	_, err := NewPayPalVerifier("", "", "live", "")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	stripeV := &StripeVerifier{}
	r := NewRegistry(stripeV, nil)

	got, ok := r.Get(ProviderStripe)
	assert.True(t, ok)
	assert.Same(t, stripeV, got)

	_, ok = r.Get(ProviderPayPal)
	assert.False(t, ok)
}
