package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type relayTestConfig struct {
	url string
}

func (c relayTestConfig) GetRedisURL() string              { return "" }
func (c relayTestConfig) GetRedisTLSInsecure() bool        { return false }
func (c relayTestConfig) GetAsynqQueueName() string        { return "relay" }
func (c relayTestConfig) GetAsynqConcurrency() int         { return 1 }
func (c relayTestConfig) GetWorkflowWebhookURL() string    { return c.url }
func (c relayTestConfig) GetRelayTimeout() time.Duration   { return 2 * time.Second }

func TestHTTPPublisherDeliversMessage(t *testing.T) {
	var received Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("unmarshal delivered message: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewHTTPPublisher(relayTestConfig{url: server.URL})
	ohid := "ohid-1"
	err := publisher.Publish(context.Background(), Message{
		EventID:      "evt-1",
		EventType:    "LeadIngested",
		OHID:         &ohid,
		SourceSystem: "WEB",
		OccurredAt:   "2026-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if received.EventID != "evt-1" || received.EventType != "LeadIngested" {
		t.Fatalf("unexpected delivered message: %+v", received)
	}
	if received.OHID == nil || *received.OHID != "ohid-1" {
		t.Fatalf("expected ohid to survive the wire, got %v", received.OHID)
	}
}

func TestHTTPPublisherReportsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewHTTPPublisher(relayTestConfig{url: server.URL})
	err := publisher.Publish(context.Background(), Message{EventID: "evt-1"})
	if err == nil {
		t.Fatalf("expected error on 502 response")
	}
}
