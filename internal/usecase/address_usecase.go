package usecase

import (
	"context"
	"fmt"

	"storefront-checkout/internal/domain"
)

// AddressUsecase backs the standalone address-book endpoints. The checkout
// flow has its own, stricter save path (verified phone, resolved pincode);
// this one only enforces the field-level invariants.
type AddressUsecase struct {
	addressRepo domain.AddressRepository
}

func NewAddressUsecase(repo domain.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addressRepo: repo}
}

func (u *AddressUsecase) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return u.addressRepo.GetByUserID(ctx, userID)
}

// Add saves a new address and returns the full refreshed list so callers
// always see server-assigned ids instead of patching locally.
func (u *AddressUsecase) Add(ctx context.Context, userID string, addr domain.Address) ([]domain.Address, error) {
	addr.UserID = userID
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	if err := u.addressRepo.Add(ctx, &addr); err != nil {
		return nil, fmt.Errorf("failed to save address: %w", err)
	}
	return u.addressRepo.GetByUserID(ctx, userID)
}

func (u *AddressUsecase) Delete(ctx context.Context, id, userID string) ([]domain.Address, error) {
	if err := u.addressRepo.Delete(ctx, id, userID); err != nil {
		return nil, err
	}
	return u.addressRepo.GetByUserID(ctx, userID)
}
