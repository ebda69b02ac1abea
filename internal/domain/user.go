package domain

import (
	"context"
	"regexp"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

type User struct {
	ID    string `json:"id"` // UUID
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Address is a saved shipping address. Saved addresses are immutable: the
// only operations are add and delete. ID is assigned by the repository on
// save and is empty while the address is still a staged draft.
type Address struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

var (
	// Indian mobile numbers: 10 digits, leading digit 6-9.
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	// Indian postal codes: exactly 6 digits.
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

func ValidPhone(phone string) bool     { return phonePattern.MatchString(phone) }
func ValidPincode(pincode string) bool { return pincodePattern.MatchString(pincode) }

// Validate checks the field-level invariants that must hold before an address
// may be persisted. Phone verification and pincode resolution are session
// state and are enforced by the checkout usecase, not here.
func (a *Address) Validate() error {
	required := []struct {
		field, value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
		{"country", a.Country},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.field, Message: "is required"}
		}
	}
	if !ValidPincode(a.Pincode) {
		return &ValidationError{Field: "pincode", Message: "must be exactly 6 digits"}
	}
	if !ValidPhone(a.Phone) {
		return &ValidationError{Field: "phone", Message: "must be a 10-digit mobile number starting with 6-9"}
	}
	return nil
}

type AddressRepository interface {
	Add(ctx context.Context, addr *Address) error
	GetByUserID(ctx context.Context, userID string) ([]Address, error)
	Delete(ctx context.Context, id, userID string) error
}
