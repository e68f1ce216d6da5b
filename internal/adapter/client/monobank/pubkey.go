package monobank

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"order-reconciler/config"
)

// PubkeyClient implements ports.KeyFetcher against the provider's merchant
// API. The endpoint returns the ECDSA verification key as base64-encoded PEM
// and authenticates the merchant with the X-Token header.
type PubkeyClient struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewPubkeyClient creates a key fetcher from the provider config.
func NewPubkeyClient(cfg config.MonobankConfig) *PubkeyClient {
	return &PubkeyClient{
		token:   cfg.Token,
		baseURL: cfg.PubkeyURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchKey retrieves and decodes the current verification key PEM.
func (c *PubkeyClient) FetchKey(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build pubkey request: %w", err)
	}
	req.Header.Set("X-Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch pubkey: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch pubkey: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read pubkey response: %w", err)
	}

	pemBytes, err := base64.StdEncoding.DecodeString(string(body))
	if err != nil {
		return nil, fmt.Errorf("decode pubkey: %w", err)
	}
	return pemBytes, nil
}
