package memory

import (
	"time"

	"storefront-checkout/internal/domain"
	"storefront-checkout/pkg/cache"
)

// SessionStore keeps live checkout sessions in the in-memory cache. Sessions
// expire after the TTL so abandoned checkouts clean themselves up; nothing
// crosses from one checkout session to another.
type SessionStore struct {
	cache cache.CacheService
	ttl   time.Duration
}

func NewSessionStore(c cache.CacheService, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

func (s *SessionStore) Put(session *domain.CheckoutSession) {
	s.cache.Set(sessionKey(session.ID), session, s.ttl)
}

func (s *SessionStore) Get(id string) (*domain.CheckoutSession, bool) {
	v, ok := s.cache.Get(sessionKey(id))
	if !ok {
		return nil, false
	}
	session, ok := v.(*domain.CheckoutSession)
	return session, ok
}

func (s *SessionStore) Delete(id string) {
	s.cache.Delete(sessionKey(id))
}

func sessionKey(id string) string {
	return "checkout:session:" + id
}

var _ domain.SessionStore = (*SessionStore)(nil)
