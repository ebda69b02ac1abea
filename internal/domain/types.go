package domain

import "context"

// TransactionManager runs fn inside a single database transaction. The
// transaction is carried in the context; repositories pick it up when present.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
