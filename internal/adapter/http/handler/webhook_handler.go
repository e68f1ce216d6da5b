package handler

import (
	"io"

	"order-reconciler/internal/adapter/http/dto"
	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"
	"order-reconciler/pkg/apperror"
	"order-reconciler/pkg/response"

	"github.com/gin-gonic/gin"
)

// Signature header names, one per provider scheme.
const (
	HeaderMonobankSign = "X-Sign"
	HeaderWhitepaySign = "Signature"
)

// WebhookHandler handles inbound provider notifications.
type WebhookHandler struct {
	webhookSvc ports.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookSvc ports.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

// Monobank handles POST /webhooks/monobank.
func (h *WebhookHandler) Monobank(c *gin.Context) {
	h.handle(c, domain.ProviderMonobank, HeaderMonobankSign)
}

// Whitepay handles POST /webhooks/whitepay.
func (h *WebhookHandler) Whitepay(c *gin.Context) {
	h.handle(c, domain.ProviderWhitepay, HeaderWhitepaySign)
}

// handle runs the delivery through the pipeline. The body is read raw:
// verification must see the exact bytes the provider signed.
func (h *WebhookHandler) handle(c *gin.Context, provider domain.Provider, sigHeader string) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	res, err := h.webhookSvc.HandleDelivery(c.Request.Context(), provider, rawBody, c.GetHeader(sigHeader))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAckResponse(res))
}

func toAckResponse(res *ports.ReconcileResult) dto.AckResponse {
	return dto.AckResponse{
		Outcome:         string(res.Outcome),
		Status:          string(res.Status),
		Reference:       res.Reference,
		ProviderOrderID: res.ProviderOrderID,
	}
}
