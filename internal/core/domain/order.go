package domain

import "time"

// Provider identifies a payment provider.
type Provider string

const (
	ProviderMonobank Provider = "monobank"
	ProviderWhitepay Provider = "whitepay"
)

// OrderStatus is the canonical order lifecycle state, independent of any
// provider's status vocabulary.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusNotified OrderStatus = "NOTIFIED"
	OrderStatusFailed   OrderStatus = "FAILED"
	OrderStatusExpired  OrderStatus = "EXPIRED"
)

// IsTerminal returns true if no further transition is ever applied.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusNotified || s == OrderStatusFailed || s == OrderStatusExpired
}

// Order is the durable order record. The reconciliation engine never creates
// orders; it only transitions existing ones through conditional patches.
type Order struct {
	Reference       string      `json:"reference"`
	ProviderOrderID string      `json:"provider_order_id,omitempty"` // set once, immutable after
	Provider        Provider    `json:"provider"`
	Status          OrderStatus `json:"status"`
	NotifiedAt      *time.Time  `json:"notified_at,omitempty"`
	Email           string      `json:"email"`
	CustomerName    string      `json:"customer_name,omitempty"`
	ProductID       string      `json:"product_id"`
	Amount          int64       `json:"amount"` // in minor units
	Currency        string      `json:"currency"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
