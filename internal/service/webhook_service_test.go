package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"
	"order-reconciler/internal/core/ports/mocks"
	"order-reconciler/pkg/apperror"
	"order-reconciler/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newWebhookFixture(t *testing.T) (*mocks.MockReconcileService, *mocks.MockDeliveryCache, *mocks.MockWebhookVerifier, ports.WebhookService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	reconciler := mocks.NewMockReconcileService(ctrl)
	cache := mocks.NewMockDeliveryCache(ctrl)
	verifier := mocks.NewMockWebhookVerifier(ctrl)

	svc := NewWebhookService(reconciler, cache, map[domain.Provider]ports.WebhookVerifier{
		domain.ProviderMonobank: verifier,
	}, logger.Nop())

	return reconciler, cache, verifier, svc
}

func TestWebhook_HandleDelivery_FullPipeline(t *testing.T) {
	reconciler, cache, verifier, svc := newWebhookFixture(t)

	body := []byte(`{"invoiceId":"inv_1","status":"success","reference":"ord_1"}`)

	verifier.EXPECT().Verify(gomock.Any(), body, "sig").Return(nil)
	cache.EXPECT().GetAck(gomock.Any(), gomock.Any()).Return(nil, nil)
	reconciler.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.WebhookEvent) (*ports.ReconcileResult, error) {
			assert.Equal(t, domain.ProviderMonobank, event.Provider)
			assert.Equal(t, "ord_1", event.Reference)
			assert.Equal(t, "success", event.RawStatus)
			assert.Equal(t, domain.OrderStatusPaid, event.Status)
			assert.Equal(t, "inv_1", event.ProviderOrderID)
			return &ports.ReconcileResult{
				Outcome:   ports.OutcomeNotified,
				Status:    domain.OrderStatusNotified,
				Reference: "ord_1",
			}, nil
		})
	cache.EXPECT().SetAck(gomock.Any(), gomock.Any(), gomock.Any(), deliveryAckTTL).Return(nil)

	res, err := svc.HandleDelivery(context.Background(), domain.ProviderMonobank, body, "sig")

	require.NoError(t, err)
	assert.Equal(t, ports.OutcomeNotified, res.Outcome)
}

func TestWebhook_HandleDelivery_VerificationFailureStopsPipeline(t *testing.T) {
	_, _, verifier, svc := newWebhookFixture(t)

	body := []byte(`{"reference":"ord_1"}`)
	verifier.EXPECT().Verify(gomock.Any(), body, "bad").Return(apperror.ErrInvalidSignature())

	_, err := svc.HandleDelivery(context.Background(), domain.ProviderMonobank, body, "bad")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SIG_001", appErr.Code)
}

func TestWebhook_HandleDelivery_UnknownProvider(t *testing.T) {
	_, _, _, svc := newWebhookFixture(t)

	_, err := svc.HandleDelivery(context.Background(), domain.Provider("stripe"), []byte(`{}`), "sig")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_003", appErr.Code)
}

func TestWebhook_HandleDelivery_CachedAckShortCircuits(t *testing.T) {
	_, cache, verifier, svc := newWebhookFixture(t)

	body := []byte(`{"invoiceId":"inv_1","status":"success","reference":"ord_1"}`)
	ack, err := json.Marshal(&ports.ReconcileResult{
		Outcome:   ports.OutcomeNotified,
		Status:    domain.OrderStatusNotified,
		Reference: "ord_1",
	})
	require.NoError(t, err)

	// Even a cached delivery is verified first.
	verifier.EXPECT().Verify(gomock.Any(), body, "sig").Return(nil)
	cache.EXPECT().GetAck(gomock.Any(), gomock.Any()).Return(ack, nil)

	res, err := svc.HandleDelivery(context.Background(), domain.ProviderMonobank, body, "sig")

	require.NoError(t, err)
	assert.Equal(t, ports.OutcomeNotified, res.Outcome)
	assert.Equal(t, "ord_1", res.Reference)
}

func TestWebhook_HandleDelivery_CacheFailureIsNotFatal(t *testing.T) {
	reconciler, cache, verifier, svc := newWebhookFixture(t)

	body := []byte(`{"invoiceId":"inv_1","status":"failure","reference":"ord_1"}`)

	verifier.EXPECT().Verify(gomock.Any(), body, "sig").Return(nil)
	cache.EXPECT().GetAck(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	reconciler.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(&ports.ReconcileResult{
		Outcome:   ports.OutcomeReconciled,
		Status:    domain.OrderStatusFailed,
		Reference: "ord_1",
	}, nil)
	cache.EXPECT().SetAck(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	res, err := svc.HandleDelivery(context.Background(), domain.ProviderMonobank, body, "sig")

	require.NoError(t, err)
	assert.Equal(t, ports.OutcomeReconciled, res.Outcome)
}

func TestWebhook_HandleDelivery_NonTerminalResultNotCached(t *testing.T) {
	reconciler, cache, verifier, svc := newWebhookFixture(t)

	body := []byte(`{"invoiceId":"inv_1","status":"processing","reference":"ord_1"}`)

	verifier.EXPECT().Verify(gomock.Any(), body, "sig").Return(nil)
	cache.EXPECT().GetAck(gomock.Any(), gomock.Any()).Return(nil, nil)
	reconciler.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(&ports.ReconcileResult{
		Outcome:   ports.OutcomeReconciled,
		Status:    domain.OrderStatusPending,
		Reference: "ord_1",
	}, nil)
	// No SetAck expectation: a PENDING ack must not suppress later deliveries.

	res, err := svc.HandleDelivery(context.Background(), domain.ProviderMonobank, body, "sig")

	require.NoError(t, err)
	assert.Equal(t, ports.OutcomeReconciled, res.Outcome)
}

func TestWebhook_HandleDelivery_MalformedPayload(t *testing.T) {
	_, cache, verifier, svc := newWebhookFixture(t)

	body := []byte(`not json`)
	verifier.EXPECT().Verify(gomock.Any(), body, "sig").Return(nil)
	cache.EXPECT().GetAck(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := svc.HandleDelivery(context.Background(), domain.ProviderMonobank, body, "sig")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_001", appErr.Code)
}
