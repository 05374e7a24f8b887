// File: internal/services/mail/relay_provider.go
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RelayProvider delivers messages through an HTTP mail-relay webhook.
type RelayProvider struct {
	config *Config
	client *http.Client
}

func NewRelayProvider(config *Config) *RelayProvider {
	return &RelayProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// SendCode posts a code-delivery message to the relay.
func (p *RelayProvider) SendCode(ctx context.Context, recipient, code, expiry string) error {
	payload := map[string]interface{}{
		"to":      recipient,
		"subject": "Your one-time code",
		"body":    fmt.Sprintf("Your one-time code is %s. It %s.", code, expiry),
	}
	return p.post(ctx, payload)
}

// Forward posts an arbitrary payload to the relay unchanged.
func (p *RelayProvider) Forward(ctx context.Context, payload interface{}) error {
	return p.post(ctx, payload)
}

func (p *RelayProvider) post(ctx context.Context, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &MailError{Type: ErrTypeValidation, Message: "invalid payload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.RelayURL, bytes.NewBuffer(body))
	if err != nil {
		return &MailError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if p.config.AccessKey != "" {
		req.Header.Set("X-API-KEY", p.config.AccessKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return &MailError{Type: ErrTypeNetwork, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	return p.handleResponse(resp)
}

func (p *RelayProvider) handleResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	responseBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusTooManyRequests {
		return &MailError{
			Type:    ErrTypeRateLimit,
			Code:    resp.StatusCode,
			Message: "rate limit exceeded",
		}
	}

	return &MailError{
		Type:    ErrTypeRelay,
		Code:    resp.StatusCode,
		Message: string(responseBody),
	}
}
