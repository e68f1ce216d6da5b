package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `reference, provider_order_id, provider, status, notified_at,
		email, customer_name, product_id, amount, currency, created_at, updated_at`

// FindByReference fetches an order by its merchant reference.
// Returns nil, nil when no order matches.
func (r *OrderRepo) FindByReference(ctx context.Context, reference string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE reference = $1`, orderColumns)

	o := domain.Order{}
	err := r.pool.QueryRow(ctx, query, reference).Scan(
		&o.Reference, &o.ProviderOrderID, &o.Provider, &o.Status, &o.NotifiedAt,
		&o.Email, &o.CustomerName, &o.ProductID, &o.Amount, &o.Currency,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order by reference: %w", err)
	}
	return &o, nil
}

// ConditionalPatch applies patch only while the stored status still equals
// expected. The status guard in the WHERE clause makes the check-and-write a
// single atomic statement; zero affected rows means a concurrent writer won.
func (r *OrderRepo) ConditionalPatch(ctx context.Context, reference string, expected domain.OrderStatus, patch ports.OrderPatch) (bool, error) {
	sets := []string{"status = $1", "updated_at = now()"}
	args := []any{patch.Status}
	argIdx := 2

	if patch.ProviderOrderID != nil {
		// Written once: a non-empty stored value is never overwritten.
		sets = append(sets, fmt.Sprintf("provider_order_id = CASE WHEN provider_order_id = '' THEN $%d ELSE provider_order_id END", argIdx))
		args = append(args, *patch.ProviderOrderID)
		argIdx++
	}
	if patch.NotifiedAt != nil {
		sets = append(sets, fmt.Sprintf("notified_at = $%d", argIdx))
		args = append(args, *patch.NotifiedAt)
		argIdx++
	}

	query := fmt.Sprintf(`UPDATE orders SET %s WHERE reference = $%d AND status = $%d`,
		strings.Join(sets, ", "), argIdx, argIdx+1)
	args = append(args, reference, expected)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("patch order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
