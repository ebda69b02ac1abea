package pincode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-checkout/internal/domain"
)

const foundResponse = `[{
	"Message": "Number of pincode(s) found:3",
	"Status": "Success",
	"PostOffice": [
		{"Name": "Connaught Place", "Block": "New Delhi", "State": "Delhi"},
		{"Name": "Janpath", "Block": "New Delhi", "State": "Delhi"},
		{"Name": "", "Block": "Central Delhi", "State": "Delhi"}
	]
}]`

const notFoundResponse = `[{"Message": "No records found", "Status": "Error", "PostOffice": null}]`

func TestLookupShortCircuitsInvalidPincode(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	for _, pin := range []string{"", "1100", "11000a", "1100011"} {
		_, err := c.Lookup(context.Background(), pin)
		assert.ErrorIs(t, err, domain.ErrInvalidPincode, "pin %q", pin)
	}
	assert.Equal(t, 0, calls, "partial pincodes must not reach the network")
}

func TestLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pincode/110001", r.URL.Path)
		w.Write([]byte(foundResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	result, err := c.Lookup(context.Background(), "110001")
	require.NoError(t, err)

	// Duplicates collapse, empties drop, first-seen order is preserved.
	assert.Equal(t, []string{"New Delhi", "Central Delhi"}, result.Blocks)
	assert.Equal(t, []string{"Connaught Place", "Janpath"}, result.Street)
	assert.Equal(t, "Delhi", result.State)
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(notFoundResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "000000")
	assert.ErrorIs(t, err, domain.ErrPincodeNotFound)
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "110001")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
}

func TestLookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "110001")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
}

func TestLookupMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "110001")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
}
