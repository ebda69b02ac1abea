package phone

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-checkout/internal/domain"
)

func TestVerifyFormatGate(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	for _, number := range []string{"", "12345", "5876543210", "98765432100", "987654321a"} {
		err := c.Verify(context.Background(), number)
		assert.ErrorIs(t, err, domain.ErrInvalidPhoneFormat, "number %q", number)
	}
	assert.Equal(t, 0, calls, "malformed numbers must not reach the network")
}

func TestVerifyConfirmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Number string `json:"number"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "9876543210", req.Number)
		w.Write([]byte(`{"isValid": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	assert.NoError(t, c.Verify(context.Background(), "9876543210"))
}

func TestVerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isValid": false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Verify(context.Background(), "9876543210")
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestVerifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Verify(context.Background(), "9876543210")
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}
