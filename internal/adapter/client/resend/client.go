package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"order-reconciler/config"
)

// Client implements ports.EmailSender against the Resend HTTP API.
type Client struct {
	apiKey  string
	baseURL string
	from    string
	subject string
	client  *http.Client
}

type sendRequest struct {
	From      string            `json:"from"`
	To        []string          `json:"to"`
	Subject   string            `json:"subject"`
	Template  string            `json:"template"`
	Variables map[string]string `json:"variables,omitempty"`
}

type sendError struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// NewClient creates an email client from the email config.
func NewClient(cfg config.EmailConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		from:    cfg.From,
		subject: cfg.Subject,
		client:  &http.Client{Timeout: timeout},
	}
}

// Send submits one templated email. Non-2xx responses surface the provider's
// error message.
func (c *Client) Send(ctx context.Context, to string, template string, variables map[string]string) error {
	payload, err := json.Marshal(sendRequest{
		From:      c.from,
		To:        []string{to},
		Subject:   c.subject,
		Template:  template,
		Variables: variables,
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<10))
	var apiErr sendError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Errorf("send email: status %d: %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("send email: unexpected status %d", resp.StatusCode)
}
