package service

import (
	"testing"

	"order-reconciler/internal/core/domain"
	"order-reconciler/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonobank(t *testing.T) {
	ref, status, orderID, err := parseMonobank([]byte(`{
		"invoiceId": "inv_42",
		"status": "success",
		"reference": "ord_42",
		"amount": 10000
	}`))
	require.NoError(t, err)
	assert.Equal(t, "ord_42", ref)
	assert.Equal(t, "success", status)
	assert.Equal(t, "inv_42", orderID)
}

func TestParseMonobank_MissingReference(t *testing.T) {
	_, _, _, err := parseMonobank([]byte(`{"invoiceId":"inv_42","status":"success"}`))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_002", appErr.Code)
}

func TestParseMonobank_Malformed(t *testing.T) {
	_, _, _, err := parseMonobank([]byte(`not json at all`))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestParseWhitepay_NestedOrder(t *testing.T) {
	ref, status, orderID, err := parseWhitepay([]byte(`{
		"order": {"id": "wp_7", "status": "COMPLETE", "external_order_id": "ord_7"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "ord_7", ref)
	assert.Equal(t, "COMPLETE", status)
	assert.Equal(t, "wp_7", orderID)
}

func TestParseWhitepay_DataEnvelope(t *testing.T) {
	ref, status, _, err := parseWhitepay([]byte(`{
		"data": {"order": {"id": 7, "status": "declined", "external_order_id": "ord_7"}}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "ord_7", ref)
	assert.Equal(t, "declined", status)
}

func TestParseWhitepay_NumericID(t *testing.T) {
	_, _, orderID, err := parseWhitepay([]byte(`{
		"order": {"id": 12345, "status": "complete", "external_order_id": "ord_9"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "12345", orderID)
}

func TestParseWhitepay_TopLevelOrder(t *testing.T) {
	ref, _, _, err := parseWhitepay([]byte(`{"id":"wp_1","status":"complete","external_order_id":"ord_1"}`))
	require.NoError(t, err)
	assert.Equal(t, "ord_1", ref)
}

func TestParseWhitepay_MissingExternalOrderID(t *testing.T) {
	_, _, _, err := parseWhitepay([]byte(`{"order":{"id":"wp_1","status":"complete"}}`))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_002", appErr.Code)
}

func TestParserFor(t *testing.T) {
	_, ok := parserFor(domain.ProviderMonobank)
	assert.True(t, ok)
	_, ok = parserFor(domain.ProviderWhitepay)
	assert.True(t, ok)
	_, ok = parserFor(domain.Provider("stripe"))
	assert.False(t, ok)
}
