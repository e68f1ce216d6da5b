package integration

import (
	"net/http"
	"sync"
	"testing"

	"order-reconciler/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Concurrent duplicates of the same PAID notification must produce exactly
// one email and leave the order NOTIFIED.
func TestIntegration_ConcurrentPaidDeliveries(t *testing.T) {
	app := newTestApp(t)
	defer app.close()
	app.seedPending("ord_1")

	payload := whitepayPayload("ord_1", "complete")

	const parallel = 10
	var wg sync.WaitGroup
	statuses := make(chan int, parallel)

	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := app.deliver(t, payload)
			statuses <- resp.StatusCode
			resp.Body.Close()
		}()
	}
	wg.Wait()
	close(statuses)

	for code := range statuses {
		assert.Equal(t, http.StatusOK, code)
	}

	assert.Equal(t, 1, app.sender.count())

	order := app.orders.get("ord_1")
	require.NotNil(t, order)
	assert.Equal(t, domain.OrderStatusNotified, order.Status)
	require.NotNil(t, order.NotifiedAt)
}

// A PAID delivery racing a terminal one: whichever wins, the loser is a no-op
// and the terminal state never regresses.
func TestIntegration_ConcurrentConflictingDeliveries(t *testing.T) {
	app := newTestApp(t)
	defer app.close()
	app.seedPending("ord_1")

	paid := whitepayPayload("ord_1", "complete")
	declined := whitepayPayload("ord_1", "declined")

	var wg sync.WaitGroup
	for _, payload := range [][]byte{paid, declined} {
		wg.Add(1)
		go func(p []byte) {
			defer wg.Done()
			resp := app.deliver(t, p)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			resp.Body.Close()
		}(payload)
	}
	wg.Wait()

	order := app.orders.get("ord_1")
	require.NotNil(t, order)
	assert.True(t, order.Status.IsTerminal(), "status: %s", order.Status)

	if order.Status == domain.OrderStatusNotified {
		assert.Equal(t, 1, app.sender.count())
	} else {
		assert.Equal(t, domain.OrderStatusFailed, order.Status)
		assert.Equal(t, 0, app.sender.count())
	}
}

// Sequential duplicate floods: every redelivery after the first is answered
// without further side effects.
func TestIntegration_RedeliveryFlood(t *testing.T) {
	app := newTestApp(t)
	defer app.close()
	app.seedPending("ord_1")

	payload := whitepayPayload("ord_1", "complete")

	for i := 0; i < 25; i++ {
		resp := app.deliver(t, payload)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	assert.Equal(t, 1, app.sender.count())
	assert.Equal(t, domain.OrderStatusNotified, app.orders.get("ord_1").Status)
}
