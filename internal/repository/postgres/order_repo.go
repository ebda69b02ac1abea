package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-checkout/internal/domain"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists the order and its product lines. The shipping address is
// stored as a JSONB snapshot since saved addresses can be deleted later.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	q := dbFromContext(ctx, r.db)

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()

	addrJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	_, err = q.Exec(ctx, `
		INSERT INTO orders (id, user_id, shipping_address, payment_mode, total_price,
			payment_status, payment_id, payment_date, delivery_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.UserID, addrJSON, string(order.PaymentMode), order.TotalPrice,
		order.PaymentStatus, order.PaymentID, order.PaymentDate, order.DeliveryDate, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, p := range order.Products {
		_, err = q.Exec(ctx, `
			INSERT INTO order_products (id, order_id, product_id, quantity, price, name, picture)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New().String(), order.ID, p.Product, p.Quantity, p.Price, p.Name, p.Picture,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order product: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	q := dbFromContext(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, user_id, shipping_address, payment_mode, total_price,
			payment_status, payment_id, payment_date, delivery_date, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		var addrJSON []byte
		var mode string
		if err := rows.Scan(&o.ID, &o.UserID, &addrJSON, &mode, &o.TotalPrice,
			&o.PaymentStatus, &o.PaymentID, &o.PaymentDate, &o.DeliveryDate, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.PaymentMode = domain.PaymentMode(mode)
		if len(addrJSON) > 0 {
			if err := json.Unmarshal(addrJSON, &o.ShippingAddress); err != nil {
				return nil, fmt.Errorf("failed to decode shipping address: %w", err)
			}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		products, err := r.getProducts(ctx, q, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Products = products
	}
	return orders, nil
}

func (r *orderRepository) getProducts(ctx context.Context, q querier, orderID string) ([]domain.OrderProduct, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, quantity, price, name, picture
		FROM order_products
		WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query order products: %w", err)
	}
	defer rows.Close()

	products := []domain.OrderProduct{}
	for rows.Next() {
		var p domain.OrderProduct
		if err := rows.Scan(&p.Product, &p.Quantity, &p.Price, &p.Name, &p.Picture); err != nil {
			return nil, fmt.Errorf("failed to scan order product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
