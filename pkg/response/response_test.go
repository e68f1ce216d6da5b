package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"order-reconciler/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks/monobank", nil)
	return c, w
}

func TestOK_Envelope(t *testing.T) {
	c, w := setupContext()

	OK(c, map[string]string{"outcome": "reconciled"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.NotEmpty(t, resp.Timestamp)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "reconciled", data["outcome"])
}

func TestError_AppError(t *testing.T) {
	c, w := setupContext()

	Error(c, apperror.ErrInvalidSignature())

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SIG_001", resp.ErrorCode)
}

func TestError_WrappedAppError(t *testing.T) {
	c, w := setupContext()

	inner := apperror.ErrStoreUnavailable(errors.New("dial timeout"))
	Error(c, inner)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UP_001", resp.ErrorCode)
	// Internal detail must not leak into the message.
	assert.NotContains(t, resp.Message, "dial timeout")
}

func TestError_UnknownError(t *testing.T) {
	c, w := setupContext()

	Error(c, errors.New("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_000", resp.ErrorCode)
}

func TestGetRequestID_FromContext(t *testing.T) {
	c, w := setupContext()
	c.Set("request_id", "req-42")

	OK(c, nil)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-42", resp.RequestID)
}
