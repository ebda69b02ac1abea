package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-checkout/internal/domain"
)

func TestCreateOrderWithoutCredentials(t *testing.T) {
	c := NewClient("", "", "http://unused", time.Second)

	_, err := c.CreateOrder(context.Background(), 5319, "INR", "sess-1", domain.PaymentPrefill{})
	assert.ErrorIs(t, err, domain.ErrPaymentUnavailable)

	// Initialization failure is sticky.
	_, err = c.CreateOrder(context.Background(), 5319, "INR", "sess-1", domain.PaymentPrefill{})
	assert.ErrorIs(t, err, domain.ErrPaymentUnavailable)
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var req struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
			Notes    struct {
				Contact string `json:"contact"`
			} `json:"notes"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(5319), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, "sess-1", req.Receipt)
		assert.Equal(t, "9876543210", req.Notes.Contact)

		w.Write([]byte(`{"id": "order_abc", "amount": 5319, "currency": "INR"}`))
	}))
	defer srv.Close()

	c := NewClient("key_id", "key_secret", srv.URL, time.Second)
	order, err := c.CreateOrder(context.Background(), 5319, "INR", "sess-1",
		domain.PaymentPrefill{Name: "Asha", Contact: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(5319), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("key_id", "key_secret", srv.URL, time.Second)
	_, err := c.CreateOrder(context.Background(), 5319, "INR", "sess-1", domain.PaymentPrefill{})
	assert.ErrorIs(t, err, domain.ErrPaymentUnavailable)
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("key_id", "key_secret", "http://unused", time.Second)

	mac := hmac.New(sha256.New, []byte("key_secret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	good := hex.EncodeToString(mac.Sum(nil))

	assert.NoError(t, c.VerifySignature("order_abc", "pay_xyz", good))
	assert.ErrorIs(t, c.VerifySignature("order_abc", "pay_xyz", "tampered"), domain.ErrPaymentSignature)
	assert.ErrorIs(t, c.VerifySignature("order_abc", "pay_other", good), domain.ErrPaymentSignature)
}
