package service

import (
	"context"
	"errors"
	"time"

	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"
	"order-reconciler/pkg/apperror"

	"github.com/rs/zerolog"
)

// reconcileService implements ports.ReconcileService.
//
// Two guards make duplicate and concurrent deliveries safe: a per-reference
// mutex serializes the read-decide-write-notify sequence inside this process,
// and every write is a conditional patch so a writer in another process that
// lost the race becomes a no-op instead of a double side effect.
type reconcileService struct {
	orders   ports.OrderRepository
	notifier ports.NotificationService
	locks    *keyMutex
	now      func() time.Time
	log      zerolog.Logger
}

// NewReconcileService creates the reconciliation engine.
func NewReconcileService(orders ports.OrderRepository, notifier ports.NotificationService, log zerolog.Logger) ports.ReconcileService {
	return &reconcileService{
		orders:   orders,
		notifier: notifier,
		locks:    newKeyMutex(),
		now:      time.Now,
		log:      log,
	}
}

// Apply transitions the stored order according to the incoming canonical
// status and dispatches the access notification at most once, on the first
// delivery that finds the order PAID.
func (s *reconcileService) Apply(ctx context.Context, event domain.WebhookEvent) (*ports.ReconcileResult, error) {
	unlock := s.locks.Lock(event.Reference)
	defer unlock()

	order, err := s.orders.FindByReference(ctx, event.Reference)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(err)
	}
	if order == nil {
		// Nothing to reconcile. Acknowledged so the provider stops retrying.
		s.log.Warn().
			Str("reference", event.Reference).
			Str("provider", string(event.Provider)).
			Msg("webhook for unknown reference")
		return &ports.ReconcileResult{
			Outcome:         ports.OutcomeNotFound,
			Reference:       event.Reference,
			ProviderOrderID: event.ProviderOrderID,
		}, nil
	}

	if order.Status.IsTerminal() {
		return s.result(ports.OutcomeIgnored, order), nil
	}

	if order.Status == domain.OrderStatusPending {
		patch := ports.OrderPatch{Status: event.Status}
		if order.ProviderOrderID == "" && event.ProviderOrderID != "" {
			patch.ProviderOrderID = &event.ProviderOrderID
		}

		applied, err := s.orders.ConditionalPatch(ctx, order.Reference, domain.OrderStatusPending, patch)
		if err != nil {
			return nil, apperror.ErrStoreUnavailable(err)
		}
		if !applied {
			// A concurrent writer advanced the order first; this delivery is
			// stale. Re-read so the ack reflects the status actually stored,
			// not the snapshot taken before the race.
			s.log.Debug().Str("reference", order.Reference).Msg("conditional patch lost, treating delivery as no-op")
			fresh, err := s.orders.FindByReference(ctx, order.Reference)
			if err != nil {
				return nil, apperror.ErrStoreUnavailable(err)
			}
			if fresh != nil {
				order = fresh
			}
			return s.result(ports.OutcomeIgnored, order), nil
		}

		order.Status = event.Status
		if patch.ProviderOrderID != nil {
			order.ProviderOrderID = *patch.ProviderOrderID
		}
		s.log.Info().
			Str("reference", order.Reference).
			Str("status", string(order.Status)).
			Msg("order status reconciled")

		if order.Status != domain.OrderStatusPaid {
			return s.result(ports.OutcomeReconciled, order), nil
		}
		// Fall through: the transition into PAID triggers the notification step.
	}

	// order.Status == PAID: paid but not yet notified.
	return s.notifyLocked(ctx, order)
}

// NotifyPaid re-runs the notification step for an order stuck in PAID,
// holding the same per-reference lock as webhook-driven dispatch.
func (s *reconcileService) NotifyPaid(ctx context.Context, reference string) (*ports.ReconcileResult, error) {
	unlock := s.locks.Lock(reference)
	defer unlock()

	order, err := s.orders.FindByReference(ctx, reference)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(err)
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound()
	}
	if order.Status == domain.OrderStatusNotified {
		return s.result(ports.OutcomeIgnored, order), nil
	}
	if order.Status != domain.OrderStatusPaid {
		return nil, apperror.ErrOrderNotPaid(string(order.Status))
	}

	return s.notifyLocked(ctx, order)
}

// notifyLocked runs the two-step protocol: dispatch, then persist NOTIFIED.
// Callers must hold the per-reference lock and have established status PAID.
func (s *reconcileService) notifyLocked(ctx context.Context, order *domain.Order) (*ports.ReconcileResult, error) {
	if err := s.notifier.Dispatch(ctx, order); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == "NTF_001" {
			// Unrecognized product: redelivery cannot fix it, so acknowledge and
			// leave the order PAID for operator follow-up.
			s.log.Error().
				Str("reference", order.Reference).
				Str("product_id", order.ProductID).
				Msg("notification dispatch failed closed, order left PAID")
			return s.result(ports.OutcomeDispatchFailed, order), nil
		}
		// Infrastructure failure: surface as retryable so the provider
		// redelivers and dispatch gets another chance.
		return nil, apperror.ErrSendFailed(err)
	}

	notifiedAt := s.now().UTC()
	applied, err := s.orders.ConditionalPatch(ctx, order.Reference, domain.OrderStatusPaid, ports.OrderPatch{
		Status:     domain.OrderStatusNotified,
		NotifiedAt: &notifiedAt,
	})
	if err != nil || !applied {
		// The email is out; failing the request now would only provoke a
		// redelivery and a duplicate send. Accepted at-least-once risk.
		s.log.Warn().
			Err(err).
			Bool("applied", applied).
			Str("reference", order.Reference).
			Msg("NOTIFIED persist did not apply after successful dispatch")
	} else {
		order.Status = domain.OrderStatusNotified
		order.NotifiedAt = &notifiedAt
	}

	s.log.Info().
		Str("reference", order.Reference).
		Str("product_id", order.ProductID).
		Msg("access notification dispatched")

	res := s.result(ports.OutcomeNotified, order)
	res.Status = domain.OrderStatusNotified
	return res, nil
}

func (s *reconcileService) result(outcome ports.ReconcileOutcome, order *domain.Order) *ports.ReconcileResult {
	return &ports.ReconcileResult{
		Outcome:         outcome,
		Status:          order.Status,
		Reference:       order.Reference,
		ProviderOrderID: order.ProviderOrderID,
	}
}
