// Package notion provides the Notion-style webhook bounded context.
// Verification handshakes (a payload carrying a "challenge" field) are
// echoed verbatim and never persisted; everything else is recorded as a
// NotionEvent with the native type retained as subtype.
package notion

import (
	"context"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/workflow"
)

// EventResponse acknowledges a recorded Notion event.
type EventResponse struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Accepted  bool   `json:"accepted"`
	Subtype   string `json:"subtype,omitempty"`
}

// Service normalizes Notion-style webhook payloads.
type Service struct {
	recorder *workflow.Recorder
}

// NewService creates the notion service.
func NewService(recorder *workflow.Recorder) *Service {
	return &Service{recorder: recorder}
}

// Challenge extracts the verification challenge from a payload, if present.
func Challenge(payload map[string]any) (string, bool) {
	value, ok := payload["challenge"].(string)
	return value, ok && value != ""
}

// ProcessEvent records one non-challenge payload as a NotionEvent.
func (s *Service) ProcessEvent(ctx context.Context, payload map[string]any) (EventResponse, error) {
	subtype, _ := payload["type"].(string)

	eventPayload := map[string]any{
		"subtype": subtype,
		"native":  payload,
	}

	recorded, err := s.recorder.Record(ctx, workflow.EventNotionEvent, nil, eventPayload, repository.SourceNotion)
	if err != nil {
		return EventResponse{}, err
	}

	return EventResponse{
		EventID:   recorded.EventID,
		EventType: recorded.EventType,
		Accepted:  true,
		Subtype:   subtype,
	}, nil
}
