package integration

import (
	"context"
	"sync"
	"time"

	"order-reconciler/internal/core/domain"
	"order-reconciler/internal/core/ports"
)

// --- In-Memory Order Repo ---

type inMemoryOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newInMemoryOrderRepo() *inMemoryOrderRepo {
	return &inMemoryOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *inMemoryOrderRepo) put(o *domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.Reference] = &cp
}

func (r *inMemoryOrderRepo) get(reference string) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[reference]
	if !ok {
		return nil
	}
	cp := *o
	return &cp
}

func (r *inMemoryOrderRepo) FindByReference(_ context.Context, reference string) (*domain.Order, error) {
	return r.get(reference), nil
}

func (r *inMemoryOrderRepo) ConditionalPatch(_ context.Context, reference string, expected domain.OrderStatus, patch ports.OrderPatch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[reference]
	if !ok || o.Status != expected {
		return false, nil
	}
	o.Status = patch.Status
	if patch.ProviderOrderID != nil && o.ProviderOrderID == "" {
		o.ProviderOrderID = *patch.ProviderOrderID
	}
	if patch.NotifiedAt != nil {
		o.NotifiedAt = patch.NotifiedAt
	}
	o.UpdatedAt = time.Now()
	return true, nil
}

// --- Capturing Email Sender ---

type sentEmail struct {
	To        string
	Template  string
	Variables map[string]string
}

type capturingSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (s *capturingSender) Send(_ context.Context, to string, template string, variables map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentEmail{To: to, Template: template, Variables: variables})
	return nil
}

func (s *capturingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *capturingSender) last() *sentEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return nil
	}
	e := s.sent[len(s.sent)-1]
	return &e
}
