package service

import (
	"encoding/json"
	"strings"

	"order-reconciler/internal/core/domain"
	"order-reconciler/pkg/apperror"
)

// payloadParser extracts the correlation fields from a verified raw payload.
type payloadParser func(rawBody []byte) (reference, rawStatus, providerOrderID string, err error)

// parseMonobank reads the invoice webhook payload. The merchant reference is
// echoed back in the "reference" field; "invoiceId" is the provider order id.
func parseMonobank(rawBody []byte) (string, string, string, error) {
	var p struct {
		InvoiceID string `json:"invoiceId"`
		Status    string `json:"status"`
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(rawBody, &p); err != nil {
		return "", "", "", apperror.ErrMalformedPayload(err)
	}
	if p.Reference == "" {
		return "", "", "", apperror.ErrMissingReference()
	}
	return p.Reference, p.Status, p.InvoiceID, nil
}

// flexID tolerates provider order ids sent as either JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*f = flexID(s)
	return nil
}

// whitepayOrder is the order object carried by a Whitepay webhook.
type whitepayOrder struct {
	ID              flexID `json:"id"`
	Status          string `json:"status"`
	ExternalOrderID string `json:"external_order_id"`
}

// parseWhitepay reads the crypto-order webhook payload. Different webhook
// kinds nest the order under different keys, so each known location is tried.
func parseWhitepay(rawBody []byte) (string, string, string, error) {
	var p struct {
		whitepayOrder
		Order       *whitepayOrder `json:"order"`
		CryptoOrder *whitepayOrder `json:"crypto_order"`
		Data        *struct {
			Order *whitepayOrder `json:"order"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rawBody, &p); err != nil {
		return "", "", "", apperror.ErrMalformedPayload(err)
	}

	order := p.whitepayOrder
	switch {
	case p.Order != nil:
		order = *p.Order
	case p.Data != nil && p.Data.Order != nil:
		order = *p.Data.Order
	case p.CryptoOrder != nil:
		order = *p.CryptoOrder
	}

	if order.ExternalOrderID == "" {
		return "", "", "", apperror.ErrMissingReference()
	}
	return order.ExternalOrderID, order.Status, string(order.ID), nil
}

// parserFor returns the payload parser for a provider.
func parserFor(provider domain.Provider) (payloadParser, bool) {
	switch provider {
	case domain.ProviderMonobank:
		return parseMonobank, true
	case domain.ProviderWhitepay:
		return parseWhitepay, true
	default:
		return nil, false
	}
}
