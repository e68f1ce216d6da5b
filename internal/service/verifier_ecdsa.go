package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/base64"

	"order-reconciler/internal/core/ports"
	"order-reconciler/pkg/apperror"
)

// ECDSAVerifier implements ports.WebhookVerifier for providers that sign the
// raw webhook body with an asymmetric key (Monobank X-Sign scheme: ECDSA over
// SHA-256, signature base64-encoded in ASN.1/DER form).
type ECDSAVerifier struct {
	keys ports.PublicKeySource
}

// NewECDSAVerifier creates a verifier backed by a public key source.
func NewECDSAVerifier(keys ports.PublicKeySource) *ECDSAVerifier {
	return &ECDSAVerifier{keys: keys}
}

// Verify checks the signature over the exact raw bytes received. A key fetch
// failure fails closed and is surfaced as retryable so the provider redelivers
// once the key becomes fetchable again.
func (v *ECDSAVerifier) Verify(ctx context.Context, rawBody []byte, signature string) error {
	if signature == "" {
		return apperror.ErrMissingSignature()
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return apperror.ErrInvalidSignature()
	}

	key, err := v.keys.Get(ctx)
	if err != nil {
		return apperror.ErrKeyUnavailable(err)
	}

	digest := sha256.Sum256(rawBody)
	if !ecdsa.VerifyASN1(key, digest[:], sig) {
		return apperror.ErrInvalidSignature()
	}
	return nil
}
