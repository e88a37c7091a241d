// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"lead_gateway_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Ingestion Domain Events
// =============================================================================

// LeadIngested is published after a lead record has been durably persisted
// under a resolved identity.
type LeadIngested struct {
	BaseEvent
	OHID         string `json:"ohid"`
	IngestID     string `json:"ingestId"`
	SourceSystem string `json:"sourceSystem"`
	Channel      string `json:"channel"`
	NewIdentity  bool   `json:"newIdentity"`
}

func (e LeadIngested) EventName() string { return "ingest.lead.ingested" }

// =============================================================================
// Workflow Domain Events
// =============================================================================

// WorkflowEventRecorded is published after a normalized event has been
// appended to the workflow event log. The relay forwarder subscribes to it.
// RecordedAt carries the ISO-8601 string stamped on the log entry; a field
// named OccurredAt would shadow the promoted BaseEvent method and break the
// Event interface.
type WorkflowEventRecorded struct {
	BaseEvent
	EventID      string         `json:"eventId"`
	EventType    string         `json:"eventType"`
	OHID         *string        `json:"ohid,omitempty"`
	SourceSystem string         `json:"sourceSystem"`
	Payload      map[string]any `json:"payload"`
	RecordedAt   string         `json:"occurredAt"`
}

func (e WorkflowEventRecorded) EventName() string { return "workflow.event.recorded" }

// =============================================================================
// Voice Agent Domain Events
// =============================================================================

// TransferFailureFlagged is published when a post-call payload reports a
// failed human transfer, so escalation handling can pick it up.
type TransferFailureFlagged struct {
	BaseEvent
	ConversationID string  `json:"conversationId"`
	CorrelationID  string  `json:"correlationId"`
	Phone          *string `json:"phone,omitempty"`
}

func (e TransferFailureFlagged) EventName() string { return "voiceagent.transfer.failure_flagged" }
