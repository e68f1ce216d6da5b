package service

import (
	"context"

	"order-reconciler/config"
	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"
	"order-reconciler/pkg/apperror"

	"github.com/rs/zerolog"
)

// notificationService implements ports.NotificationService. It is stateless
// and carries no retry policy; retries are driven by whoever re-delivers the
// triggering notification.
type notificationService struct {
	catalog map[string]config.ProductConfig
	sender  ports.EmailSender
	log     zerolog.Logger
}

// NewNotificationService creates the dispatcher over a static product catalog.
func NewNotificationService(catalog map[string]config.ProductConfig, sender ports.EmailSender, log zerolog.Logger) ports.NotificationService {
	return &notificationService{
		catalog: catalog,
		sender:  sender,
		log:     log,
	}
}

// Dispatch resolves the order's product and triggers the access email.
// An unrecognized product id fails closed: nothing is sent.
func (s *notificationService) Dispatch(ctx context.Context, order *domain.Order) error {
	product, ok := s.catalog[order.ProductID]
	if !ok {
		return apperror.ErrUnknownProduct(order.ProductID)
	}

	vars := map[string]string{
		"customer_name": order.CustomerName,
		"product_title": product.Title,
		"access_link":   product.AccessLink,
	}

	if err := s.sender.Send(ctx, order.Email, product.Template, vars); err != nil {
		return err
	}

	s.log.Info().
		Str("reference", order.Reference).
		Str("product_id", order.ProductID).
		Str("template", product.Template).
		Msg("access email sent")

	return nil
}
