package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"
	"order-reconciler/pkg/apperror"

	"github.com/rs/zerolog"
)

// deliveryAckTTL bounds how long a handled delivery's ack is replayed from
// cache. Providers give up redelivering well within a day.
const deliveryAckTTL = 24 * time.Hour

// webhookService implements ports.WebhookService: the full inbound pipeline
// of verify -> parse -> normalize -> reconcile, with a best-effort dedup fast
// path for byte-identical redeliveries.
type webhookService struct {
	reconciler ports.ReconcileService
	cache      ports.DeliveryCache
	verifiers  map[domain.Provider]ports.WebhookVerifier
	log        zerolog.Logger
}

// NewWebhookService creates the webhook pipeline. cache may be nil to disable
// the dedup fast path.
func NewWebhookService(
	reconciler ports.ReconcileService,
	cache ports.DeliveryCache,
	verifiers map[domain.Provider]ports.WebhookVerifier,
	log zerolog.Logger,
) ports.WebhookService {
	return &webhookService{
		reconciler: reconciler,
		cache:      cache,
		verifiers:  verifiers,
		log:        log,
	}
}

// HandleDelivery processes one inbound notification. No mutation happens
// before authenticity is established.
func (s *webhookService) HandleDelivery(ctx context.Context, provider domain.Provider, rawBody []byte, signature string) (*ports.ReconcileResult, error) {
	verifier, ok := s.verifiers[provider]
	parser, parserOK := parserFor(provider)
	if !ok || !parserOK {
		return nil, apperror.ErrUnknownProvider(string(provider))
	}

	if err := verifier.Verify(ctx, rawBody, signature); err != nil {
		return nil, err
	}

	// Dedup fast path, consulted only after the signature checked out.
	key := deliveryKey(provider, rawBody)
	if s.cache != nil {
		cached, err := s.cache.GetAck(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Msg("delivery cache read failed, processing in full")
		} else if cached != nil {
			var res ports.ReconcileResult
			if err := json.Unmarshal(cached, &res); err == nil {
				s.log.Debug().
					Str("provider", string(provider)).
					Str("reference", res.Reference).
					Msg("duplicate delivery served from cache")
				return &res, nil
			}
		}
	}

	reference, rawStatus, providerOrderID, err := parser(rawBody)
	if err != nil {
		return nil, err
	}

	event := domain.WebhookEvent{
		Provider:        provider,
		RawBody:         rawBody,
		Signature:       signature,
		Reference:       reference,
		RawStatus:       rawStatus,
		Status:          NormalizeStatus(provider, rawStatus),
		ProviderOrderID: providerOrderID,
	}

	s.log.Info().
		Str("provider", string(provider)).
		Str("reference", reference).
		Str("raw_status", rawStatus).
		Str("status", string(event.Status)).
		Msg("webhook verified")

	res, err := s.reconciler.Apply(ctx, event)
	if err != nil {
		return nil, err
	}

	// Cache the ack once the order can no longer change, so replays of this
	// exact delivery skip the store entirely.
	if s.cache != nil && res.Status.IsTerminal() {
		if ack, err := json.Marshal(res); err == nil {
			if err := s.cache.SetAck(ctx, key, ack, deliveryAckTTL); err != nil {
				s.log.Warn().Err(err).Msg("delivery cache write failed")
			}
		}
	}

	return res, nil
}

func deliveryKey(provider domain.Provider, rawBody []byte) string {
	sum := sha256.Sum256(rawBody)
	return fmt.Sprintf("%s:%x", provider, sum)
}
