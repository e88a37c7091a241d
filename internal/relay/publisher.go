// Package relay delivers recorded workflow events to the external
// workflow-automation bus. Delivery is best-effort by contract: failures
// are logged and dropped, never retried past the transport's own attempt
// and never surfaced to the code that recorded the event.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lead_gateway_backend/platform/config"
	"lead_gateway_backend/platform/logger"
)

// Message is one workflow event on its way to the external bus.
type Message struct {
	EventID      string         `json:"event_id"`
	EventType    string         `json:"event_type"`
	OHID         *string        `json:"ohid,omitempty"`
	SourceSystem string         `json:"source_system"`
	OccurredAt   string         `json:"occurred_at"`
	Payload      map[string]any `json:"payload,omitempty"`
}

// Publisher hands a message to the delivery transport. Implementations
// return an error only so the forwarder can log it; nothing retries.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// NoopPublisher drops every message. Used when no relay target is configured.
type NoopPublisher struct{}

// Publish discards the message.
func (NoopPublisher) Publish(context.Context, Message) error { return nil }

// HTTPPublisher POSTs each message directly to the workflow webhook URL
// with a short timeout. Used when Redis is not configured.
type HTTPPublisher struct {
	url    string
	client *http.Client
}

// NewHTTPPublisher creates a direct HTTP publisher.
func NewHTTPPublisher(cfg config.RelayConfig) *HTTPPublisher {
	timeout := cfg.GetRelayTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPPublisher{
		url:    cfg.GetWorkflowWebhookURL(),
		client: &http.Client{Timeout: timeout},
	}
}

// Publish delivers the message with a single POST attempt.
func (p *HTTPPublisher) Publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal relay message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver relay message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("relay target responded %d", resp.StatusCode)
	}
	return nil
}

// LoggingPublisher wraps another publisher and swallows its errors after
// logging them, so callers can treat Publish as fire-and-forget.
type LoggingPublisher struct {
	inner Publisher
	log   *logger.Logger
}

// NewLoggingPublisher wraps the given publisher.
func NewLoggingPublisher(inner Publisher, log *logger.Logger) *LoggingPublisher {
	return &LoggingPublisher{inner: inner, log: log}
}

// Publish delegates and logs any failure with the event id for triage.
func (p *LoggingPublisher) Publish(ctx context.Context, msg Message) error {
	if err := p.inner.Publish(ctx, msg); err != nil {
		p.log.Warn("relay publish failed",
			"event_id", msg.EventID,
			"event_type", msg.EventType,
			"error", err.Error(),
		)
	}
	return nil
}
