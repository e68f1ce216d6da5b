package service

import (
	"strings"

	"order-reconciler/internal/core/domain"
)

// statusTables maps each provider's raw status vocabulary to the canonical
// lifecycle. Lookups are case-insensitive. Anything absent from a table maps
// to PENDING: an unrecognized status must never grant access.
var statusTables = map[domain.Provider]map[string]domain.OrderStatus{
	domain.ProviderMonobank: {
		"created":    domain.OrderStatusPending,
		"processing": domain.OrderStatusPending,
		"hold":       domain.OrderStatusPending,
		"success":    domain.OrderStatusPaid,
		"failure":    domain.OrderStatusFailed,
		"reversed":   domain.OrderStatusFailed,
		"expired":    domain.OrderStatusExpired,
	},
	domain.ProviderWhitepay: {
		"init":     domain.OrderStatusPending,
		"pending":  domain.OrderStatusPending,
		"pool":     domain.OrderStatusPending,
		"complete": domain.OrderStatusPaid,
		"declined": domain.OrderStatusFailed,
		"failed":   domain.OrderStatusFailed,
		"expired":  domain.OrderStatusExpired,
	},
}

// NormalizeStatus converts a provider's raw status into the canonical one.
// Total function: every input maps to an output.
func NormalizeStatus(provider domain.Provider, rawStatus string) domain.OrderStatus {
	table, ok := statusTables[provider]
	if !ok {
		return domain.OrderStatusPending
	}
	status, ok := table[strings.ToLower(strings.TrimSpace(rawStatus))]
	if !ok {
		return domain.OrderStatusPending
	}
	return status
}
