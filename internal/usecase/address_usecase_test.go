package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-checkout/internal/domain"
)

func validAddress() domain.Address {
	return domain.Address{
		Name:    "Asha",
		Phone:   "9876543210",
		Street:  "14 Park Lane",
		City:    "New Delhi",
		State:   "Delhi",
		Pincode: "110001",
		Country: "India",
	}
}

func TestAddressUsecaseAdd(t *testing.T) {
	repo := newFakeAddressRepo()
	uc := NewAddressUsecase(repo)

	addrs, err := uc.Add(context.Background(), "u1", validAddress())
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.NotEmpty(t, addrs[0].ID)
	assert.Equal(t, "u1", addrs[0].UserID)
}

func TestAddressUsecaseAddValidation(t *testing.T) {
	uc := NewAddressUsecase(newFakeAddressRepo())

	broken := validAddress()
	broken.Pincode = "1100"
	_, err := uc.Add(context.Background(), "u1", broken)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "pincode", vErr.Field)
}

func TestAddressUsecaseDelete(t *testing.T) {
	repo := newFakeAddressRepo()
	uc := NewAddressUsecase(repo)

	addrs, err := uc.Add(context.Background(), "u1", validAddress())
	require.NoError(t, err)

	remaining, err := uc.Delete(context.Background(), addrs[0].ID, "u1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = uc.Delete(context.Background(), addrs[0].ID, "u1")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
}
