package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrEmptyCart       = errors.New("cart is empty")

	ErrInvalidPincode  = errors.New("pincode must be 6 digits")
	ErrPincodeNotFound = errors.New("pincode not found")
	ErrLookupFailed    = errors.New("pincode lookup failed")
	// ErrLookupSuperseded means the pincode was edited while this lookup was
	// pending; the caller's result is stale and was discarded.
	ErrLookupSuperseded = errors.New("pincode lookup superseded")

	ErrInvalidPhoneFormat = errors.New("phone must be 10 digits starting with 6-9")
	ErrVerificationFailed = errors.New("phone verification failed")
	ErrPhoneNotVerified   = errors.New("phone has not been verified")

	ErrChallengeNotOpen  = errors.New("no challenge is open")
	ErrChallengeMismatch = errors.New("challenge code did not match")

	ErrAddressNotFound   = errors.New("address not found")
	ErrNoAddressSelected = errors.New("no shipping address selected")

	ErrPaymentUnavailable = errors.New("payment gateway unavailable")
	ErrPaymentSignature   = errors.New("payment signature verification failed")
	ErrNoPaymentPending   = errors.New("no payment is pending for this session")

	// ErrActionInFlight guards against double submission of the same action
	// on one session.
	ErrActionInFlight = errors.New("action already in progress")
)

// ValidationError reports a rejected field with enough detail for the client
// to point at the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SubmissionError reports a failed order submission. PaymentCaptured marks
// the severe case: the gateway captured funds but no order was recorded, so
// the client must not retry payment.
type SubmissionError struct {
	Message         string
	PaymentCaptured bool
	Err             error
}

func (e *SubmissionError) Error() string {
	if e.PaymentCaptured {
		return fmt.Sprintf("payment captured but order not recorded: %s", e.Message)
	}
	return fmt.Sprintf("order submission failed: %s", e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
