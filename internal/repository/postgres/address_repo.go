package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-checkout/internal/domain"
)

type addressRepository struct {
	db *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) domain.AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Add(ctx context.Context, addr *domain.Address) error {
	q := dbFromContext(ctx, r.db)

	addr.ID = uuid.New().String()
	addr.CreatedAt = time.Now()

	_, err := q.Exec(ctx, `
		INSERT INTO addresses (id, user_id, name, phone, street, city, state, pincode, country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		addr.ID, addr.UserID, addr.Name, addr.Phone, addr.Street,
		addr.City, addr.State, addr.Pincode, addr.Country, addr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

func (r *addressRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Address, error) {
	q := dbFromContext(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, user_id, name, phone, street, city, state, pincode, country, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	addrs := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Phone, &a.Street,
			&a.City, &a.State, &a.Pincode, &a.Country, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func (r *addressRepository) Delete(ctx context.Context, id, userID string) error {
	q := dbFromContext(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}
