package ports

import (
	"context"
	"time"

	"order-reconciler/internal/core/domain"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// OrderPatch holds the fields the reconciliation engine is allowed to write.
// Nil pointer fields are left untouched.
type OrderPatch struct {
	Status          domain.OrderStatus
	ProviderOrderID *string // written only while the stored value is empty
	NotifiedAt      *time.Time
}

// OrderRepository is the narrow gateway to the durable order store.
type OrderRepository interface {
	// FindByReference returns nil, nil when no order matches.
	FindByReference(ctx context.Context, reference string) (*domain.Order, error)

	// ConditionalPatch applies patch only while the stored status still equals
	// expected. Returns false when a concurrent writer got there first; that is
	// a normal outcome, not an error.
	ConditionalPatch(ctx context.Context, reference string, expected domain.OrderStatus, patch OrderPatch) (bool, error)
}

// DeliveryCache is the best-effort fast path for repeated webhook deliveries.
// Correctness never depends on it; the conditional patch is the guarantee.
type DeliveryCache interface {
	// GetAck returns the cached ack JSON for a delivery key, or nil, nil on miss.
	GetAck(ctx context.Context, key string) ([]byte, error)
	SetAck(ctx context.Context, key string, ack []byte, ttl time.Duration) error
}
