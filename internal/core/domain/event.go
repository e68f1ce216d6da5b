package domain

// WebhookEvent is the ephemeral, per-delivery representation of a provider
// notification. It is constructed only after the signature over RawBody has
// been verified and is discarded once processed.
type WebhookEvent struct {
	Provider        Provider
	RawBody         []byte
	Signature       string
	Reference       string
	RawStatus       string
	Status          OrderStatus // canonical, after normalization
	ProviderOrderID string
}
