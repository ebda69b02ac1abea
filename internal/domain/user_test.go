package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhone(t *testing.T) {
	valid := []string{"6000000000", "7123456789", "8999999999", "9876543210"}
	for _, p := range valid {
		assert.True(t, ValidPhone(p), p)
	}

	invalid := []string{"", "987654321", "98765432100", "5876543210", "987654321a", " 9876543210"}
	for _, p := range invalid {
		assert.False(t, ValidPhone(p), p)
	}
}

func TestValidPincode(t *testing.T) {
	assert.True(t, ValidPincode("110001"))
	assert.True(t, ValidPincode("000000"))

	for _, p := range []string{"", "11000", "1100011", "11000a", "110 01"} {
		assert.False(t, ValidPincode(p), p)
	}
}

func TestAddressValidate(t *testing.T) {
	base := Address{
		Name:    "Asha",
		Phone:   "9876543210",
		Street:  "14 Park Lane",
		City:    "New Delhi",
		State:   "Delhi",
		Pincode: "110001",
		Country: "India",
	}
	require.NoError(t, base.Validate())

	t.Run("missing field", func(t *testing.T) {
		a := base
		a.Street = ""
		var vErr *ValidationError
		require.ErrorAs(t, a.Validate(), &vErr)
		assert.Equal(t, "street", vErr.Field)
	})

	t.Run("bad pincode", func(t *testing.T) {
		a := base
		a.Pincode = "11001"
		var vErr *ValidationError
		require.ErrorAs(t, a.Validate(), &vErr)
		assert.Equal(t, "pincode", vErr.Field)
	})

	t.Run("bad phone", func(t *testing.T) {
		a := base
		a.Phone = "1234567890"
		var vErr *ValidationError
		require.ErrorAs(t, a.Validate(), &vErr)
		assert.Equal(t, "phone", vErr.Field)
	})
}
