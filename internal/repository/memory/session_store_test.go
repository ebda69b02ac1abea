package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-checkout/internal/domain"
	infracache "storefront-checkout/internal/infrastructure/cache"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(infracache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	s := &domain.CheckoutSession{ID: "s1", UserID: "u1"}
	store.Put(s)

	got, ok := store.Get("s1")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	store.Delete("s1")
	_, ok = store.Get("s1")
	assert.False(t, ok)
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(infracache.NewMemoryCache(time.Minute, time.Minute), 20*time.Millisecond)

	store.Put(&domain.CheckoutSession{ID: "s1", UserID: "u1"})
	time.Sleep(50 * time.Millisecond)

	_, ok := store.Get("s1")
	assert.False(t, ok, "expired session must not be returned")
}
