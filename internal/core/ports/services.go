package ports

import (
	"context"
	"crypto/ecdsa"

	"order-reconciler/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

// WebhookVerifier validates a raw webhook body against its signature header.
// One implementation exists per authenticity scheme; a registry selects the
// verifier by provider. Verification always runs over the exact bytes received,
// never a re-serialized copy.
type WebhookVerifier interface {
	Verify(ctx context.Context, rawBody []byte, signature string) error
}

// KeyFetcher fetches the provider's verification key material (PEM bytes)
// out-of-band.
type KeyFetcher interface {
	FetchKey(ctx context.Context) ([]byte, error)
}

// PublicKeySource serves the provider's public key, refreshing it on a TTL.
type PublicKeySource interface {
	Get(ctx context.Context) (*ecdsa.PublicKey, error)
	Invalidate()
}

// EmailSender is the external send collaborator. It carries no retry policy;
// retries are driven by whoever re-delivers the triggering notification.
type EmailSender interface {
	Send(ctx context.Context, to string, template string, variables map[string]string) error
}

// NotificationService resolves product metadata and triggers the access email.
type NotificationService interface {
	Dispatch(ctx context.Context, order *domain.Order) error
}

// ReconcileOutcome summarizes how a delivery was handled.
type ReconcileOutcome string

const (
	// OutcomeReconciled: a status transition (or idempotent self-transition) was persisted.
	OutcomeReconciled ReconcileOutcome = "reconciled"
	// OutcomeNotified: the order reached NOTIFIED, access email dispatched.
	OutcomeNotified ReconcileOutcome = "notified"
	// OutcomeIgnored: terminal no-op or a concurrent writer already advanced the order.
	OutcomeIgnored ReconcileOutcome = "ignored"
	// OutcomeNotFound: no order matches the reference; acknowledged without mutation.
	OutcomeNotFound ReconcileOutcome = "not_found"
	// OutcomeDispatchFailed: order is PAID but the notification could not be
	// completed; left for redelivery or operator follow-up.
	OutcomeDispatchFailed ReconcileOutcome = "dispatch_failed"
)

// ReconcileResult is reported back to the provider in the ack envelope.
type ReconcileResult struct {
	Outcome         ReconcileOutcome   `json:"outcome"`
	Status          domain.OrderStatus `json:"status,omitempty"`
	Reference       string             `json:"reference"`
	ProviderOrderID string             `json:"provider_order_id,omitempty"`
}

// ReconcileService applies a verified, normalized notification to the stored
// order under idempotency and at-most-once-dispatch guarantees.
type ReconcileService interface {
	Apply(ctx context.Context, event domain.WebhookEvent) (*ReconcileResult, error)

	// NotifyPaid runs the dispatch step for an order already in PAID. Used by
	// the operator surface to unstick orders whose notification failed.
	NotifyPaid(ctx context.Context, reference string) (*ReconcileResult, error)
}

// WebhookService runs the full inbound pipeline:
// verify -> parse -> normalize -> reconcile.
type WebhookService interface {
	HandleDelivery(ctx context.Context, provider domain.Provider, rawBody []byte, signature string) (*ReconcileResult, error)
}
