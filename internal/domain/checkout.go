package domain

import (
	"context"
	"time"
)

type PaymentMode string

const (
	PaymentModeCOD    PaymentMode = "COD"
	PaymentModeOnline PaymentMode = "Online"
)

// LineItem is a cart line snapshotted into the checkout session at session
// start. Items are immutable for the life of the session.
type LineItem struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductPrice    float64 `json:"productPrice"`
	ProductImage    string  `json:"productImage"`
	ProductQuantity int     `json:"productQuantity"`
}

// LookupResult holds the candidate localities resolved from a pincode.
// It is ephemeral: any edit to the pincode invalidates it.
type LookupResult struct {
	Blocks []string `json:"blocks"` // candidate city/district values
	Street []string `json:"street"` // candidate locality values
	State  string   `json:"state"`
}

// ChallengeState is the human-verification gate in front of order submission.
// The code is regenerated on every open, on every incorrect attempt, and on
// manual refresh; it never survives a close.
type ChallengeState struct {
	Code     string    `json:"code"`
	OpenedAt time.Time `json:"openedAt"`
}

// CheckoutSession is the bounded state of one cart-to-order flow. All state
// here is scoped to the single active checkout and discarded on expiry.
// Mutations are serialized by the checkout usecase; the struct itself carries
// no locking.
type CheckoutSession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	UserEmail string     `json:"userEmail"`
	Items     []LineItem `json:"items"`

	// Address book, loaded once at session start and replaced wholesale from
	// the repository after every save or delete.
	Addresses         []Address `json:"addresses"`
	SelectedAddressID string    `json:"selectedAddressId,omitempty"`
	StagingNew        bool      `json:"stagingNew"`
	Draft             Address   `json:"draft"`

	// Phone verification re-arms to false on every edit of the draft phone.
	PhoneVerified bool `json:"phoneVerified"`

	// Lookup is the last successful resolution of the draft pincode.
	// LookupGen increments on every pincode edit; in-flight lookups started
	// under an older generation discard their results (last write wins).
	Lookup    *LookupResult `json:"lookup,omitempty"`
	LookupGen uint64        `json:"-"`

	PaymentMode PaymentMode     `json:"paymentMode"`
	Challenge   *ChallengeState `json:"challenge,omitempty"`

	// Online-payment handoff state.
	AwaitingPayment bool   `json:"awaitingPayment"`
	GatewayOrderID  string `json:"gatewayOrderId,omitempty"`

	// OrderID is set once the order has been accepted; the session is spent.
	OrderID   string    `json:"orderId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the session, safe to read and encode outside
// the owning lock.
func (s *CheckoutSession) Clone() *CheckoutSession {
	c := *s
	c.Items = append([]LineItem(nil), s.Items...)
	c.Addresses = append([]Address(nil), s.Addresses...)
	if s.Lookup != nil {
		l := *s.Lookup
		l.Blocks = append([]string(nil), s.Lookup.Blocks...)
		l.Street = append([]string(nil), s.Lookup.Street...)
		c.Lookup = &l
	}
	if s.Challenge != nil {
		ch := *s.Challenge
		c.Challenge = &ch
	}
	return &c
}

// EffectiveAddress returns the currently selected saved address, if any.
func (s *CheckoutSession) EffectiveAddress() (*Address, bool) {
	if s.SelectedAddressID == "" {
		return nil, false
	}
	for i := range s.Addresses {
		if s.Addresses[i].ID == s.SelectedAddressID {
			return &s.Addresses[i], true
		}
	}
	return nil, false
}

// SessionStore holds live checkout sessions. Implementations expire sessions
// after a TTL; a missing session is simply not found.
type SessionStore interface {
	Put(session *CheckoutSession)
	Get(id string) (*CheckoutSession, bool)
	Delete(id string)
}

// PincodeLookupService resolves a 6-digit pincode to locality candidates.
type PincodeLookupService interface {
	Lookup(ctx context.Context, pincode string) (*LookupResult, error)
}

// PhoneVerificationService confirms a phone number with an external provider.
// A nil return means the provider explicitly confirmed validity.
type PhoneVerificationService interface {
	Verify(ctx context.Context, phone string) error
}

type PaymentPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// GatewayOrder is the gateway-side order the payment sheet is opened against.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // smallest currency unit
	Currency string `json:"currency"`
}

// PaymentGatewayService fronts the third-party payment provider.
type PaymentGatewayService interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, prefill PaymentPrefill) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) error
}
