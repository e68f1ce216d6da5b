package dto

import "time"

// AckResponse is the body returned to a provider for a handled delivery.
type AckResponse struct {
	Outcome         string `json:"outcome"`
	Status          string `json:"status,omitempty"`
	Reference       string `json:"reference"`
	ProviderOrderID string `json:"provider_order_id,omitempty"`
}

// OrderResponse is the operator view of a stored order.
type OrderResponse struct {
	Reference       string     `json:"reference"`
	Provider        string     `json:"provider"`
	ProviderOrderID string     `json:"provider_order_id,omitempty"`
	Status          string     `json:"status"`
	Email           string     `json:"email"`
	CustomerName    string     `json:"customer_name,omitempty"`
	ProductID       string     `json:"product_id"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	NotifiedAt      *time.Time `json:"notified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
