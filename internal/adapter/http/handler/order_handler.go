package handler

import (
	"order-reconciler/internal/adapter/http/dto"
	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"
	"order-reconciler/pkg/apperror"
	"order-reconciler/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles the operator endpoints.
type OrderHandler struct {
	orders       ports.OrderRepository
	reconcileSvc ports.ReconcileService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders ports.OrderRepository, reconcileSvc ports.ReconcileService) *OrderHandler {
	return &OrderHandler{orders: orders, reconcileSvc: reconcileSvc}
}

// GetOrder handles GET /api/v1/orders/:reference.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	reference := c.Param("reference")

	order, err := h.orders.FindByReference(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, apperror.ErrStoreUnavailable(err))
		return
	}
	if order == nil {
		response.Error(c, apperror.ErrOrderNotFound())
		return
	}

	response.OK(c, toOrderResponse(order))
}

// NotifyOrder handles POST /api/v1/orders/:reference/notify. It re-runs the
// notification step for an order stuck in PAID.
func (h *OrderHandler) NotifyOrder(c *gin.Context) {
	reference := c.Param("reference")

	res, err := h.reconcileSvc.NotifyPaid(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAckResponse(res))
}

func toOrderResponse(o *domain.Order) dto.OrderResponse {
	return dto.OrderResponse{
		Reference:       o.Reference,
		Provider:        string(o.Provider),
		ProviderOrderID: o.ProviderOrderID,
		Status:          string(o.Status),
		Email:           o.Email,
		CustomerName:    o.CustomerName,
		ProductID:       o.ProductID,
		Amount:          o.Amount,
		Currency:        o.Currency,
		NotifiedAt:      o.NotifiedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
