package domain

import (
	"context"
	"time"
)

// Order is a submitted order. The payload shape mirrors what the order API
// accepts: line products, shipping address, payment mode and proof, computed
// total, and the fixed-offset delivery date.
type Order struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Products        []OrderProduct `json:"products"`
	ShippingAddress Address        `json:"shippingAddress"`
	PaymentMode     PaymentMode    `json:"paymentMode"`
	TotalPrice      float64        `json:"totalPrice"`
	PaymentStatus   bool           `json:"paymentStatus"`
	PaymentID       string         `json:"paymentId"`
	PaymentDate     time.Time      `json:"paymentDate"`
	DeliveryDate    time.Time      `json:"deliveryDate"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type OrderProduct struct {
	Product  string  `json:"product"` // product id
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Name     string  `json:"name"`
	Picture  string  `json:"picture"`
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByUserID(ctx context.Context, userID string) ([]Order, error)
}

// PaymentIncident records a paid-but-unrecorded order: the gateway captured
// funds but order submission failed. These require manual reconciliation and
// must never be silently dropped.
type PaymentIncident struct {
	SessionID      string    `json:"sessionId"`
	UserID         string    `json:"userId"`
	GatewayOrderID string    `json:"gatewayOrderId"`
	PaymentID      string    `json:"paymentId"`
	Amount         float64   `json:"amount"`
	Reason         string    `json:"reason"`
	Order          *Order    `json:"order"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// PaymentIncidentStore persists incidents durably and returns a reference to
// the stored document.
type PaymentIncidentStore interface {
	Save(ctx context.Context, incident *PaymentIncident) (string, error)
}
