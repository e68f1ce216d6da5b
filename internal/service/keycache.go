package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"sync"
	"time"

	"order-reconciler/internal/core/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// PublicKeyCache implements ports.PublicKeySource with a TTL-bounded cache of
// the provider's verification key. Concurrent misses share one in-flight fetch.
// A failed refill never serves a stale-past-TTL key as fresh: callers get the
// fetch error and verification fails closed.
type PublicKeyCache struct {
	fetcher ports.KeyFetcher
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	key       *ecdsa.PublicKey
	fetchedAt time.Time
}

// NewPublicKeyCache creates a key cache with the given TTL. The clock is
// injectable so tests can simulate expiry deterministically.
func NewPublicKeyCache(fetcher ports.KeyFetcher, ttl time.Duration, now func() time.Time, log zerolog.Logger) *PublicKeyCache {
	if now == nil {
		now = time.Now
	}
	return &PublicKeyCache{
		fetcher: fetcher,
		ttl:     ttl,
		now:     now,
		log:     log,
	}
}

// Get returns a fresh public key, fetching one if the cached entry is missing
// or past its TTL.
func (c *PublicKeyCache) Get(ctx context.Context) (*ecdsa.PublicKey, error) {
	c.mu.RLock()
	key, fetchedAt := c.key, c.fetchedAt
	c.mu.RUnlock()

	if key != nil && c.now().Sub(fetchedAt) < c.ttl {
		return key, nil
	}

	// Miss or expired: one fetch shared by all concurrent callers. The fetch
	// runs detached from the initiating request's context so one client's
	// disconnect cannot fail verification for everyone waiting on the flight.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("pubkey", func() (any, error) {
		// Another caller may have refilled while we waited for the flight slot.
		c.mu.RLock()
		key, fetchedAt := c.key, c.fetchedAt
		c.mu.RUnlock()
		if key != nil && c.now().Sub(fetchedAt) < c.ttl {
			return key, nil
		}

		pemBytes, err := c.fetcher.FetchKey(fetchCtx)
		if err != nil {
			return nil, fmt.Errorf("fetch verification key: %w", err)
		}
		fresh, err := parseECPublicKey(pemBytes)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.key = fresh
		c.fetchedAt = c.now()
		c.mu.Unlock()

		c.log.Info().Msg("verification public key refreshed")
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ecdsa.PublicKey), nil
}

// Invalidate drops the cached entry so the next Get refetches.
func (c *PublicKeyCache) Invalidate() {
	c.mu.Lock()
	c.key = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

// parseECPublicKey decodes a PEM block into an ECDSA public key.
func parseECPublicKey(pemBytes []byte) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in key material")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	ecKey, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected key type %T, want ECDSA", pub)
	}
	return ecKey, nil
}
