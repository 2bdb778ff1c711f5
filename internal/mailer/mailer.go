// Package mailer sends transactional email through the provider's HTTP API.
// The provider is a black box: one POST per message, a hard error on any
// non-2xx response, no retries.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Attachment is a file attached to an outbound message. Content is
// base64-encoded on the wire by the JSON marshaller ([]byte → base64).
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

// Message is the provider-facing message spec.
type Message struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	ReplyTo     []string     `json:"reply_to,omitempty"`
	Subject     string       `json:"subject"`
	Text        string       `json:"text"`
	HTML        string       `json:"html,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Notifier is the delivery capability the notification pipeline depends on.
// Implementations attempt delivery once and return an error on hard failure.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Client talks to the email provider's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a provider client. The key is required; callers are
// expected to refuse to serve at all without one.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts one message to the provider.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("send email: no recipients")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send email: provider returned %s: %s",
			resp.Status, providerError(resp.Body))
	}
	return nil
}

// providerError pulls the provider's error message out of a failure body,
// falling back to the raw text.
func providerError(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &parsed) == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return string(raw)
}
