package incident

import (
	"context"
	"fmt"

	"storefront-checkout/internal/domain"
)

// objectStore is the slice of pkg/storage the archive needs.
type objectStore interface {
	PutJSON(ctx context.Context, key string, doc interface{}) (string, error)
}

// Archive persists payment incidents (paid-but-unrecorded orders) as JSON
// documents in object storage for manual reconciliation.
type Archive struct {
	store objectStore
}

func NewArchive(store objectStore) *Archive {
	return &Archive{store: store}
}

func (a *Archive) Save(ctx context.Context, inc *domain.PaymentIncident) (string, error) {
	key := fmt.Sprintf("payment-incidents/%s-%d.json", inc.SessionID, inc.OccurredAt.Unix())
	url, err := a.store.PutJSON(ctx, key, inc)
	if err != nil {
		return "", fmt.Errorf("failed to archive payment incident: %w", err)
	}
	return url, nil
}

var _ domain.PaymentIncidentStore = (*Archive)(nil)
