package workflow

import (
	"context"
	"time"

	"lead_gateway_backend/internal/events"
	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/platform/logger"

	"github.com/oklog/ulid/v2"
)

// Recorded describes one event appended to the workflow log.
type Recorded struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	OccurredAt string `json:"occurred_at"`
}

// Recorder normalizes events into the closed taxonomy and appends them to
// the workflow event log. The durable append happens before the best-effort
// external publish; a failed publish never rolls back or surfaces.
type Recorder struct {
	store repository.Store
	bus   events.Bus
	log   *logger.Logger
}

// NewRecorder creates a recorder over the given store and event bus.
func NewRecorder(store repository.Store, bus events.Bus, log *logger.Logger) *Recorder {
	return &Recorder{store: store, bus: bus, log: log}
}

// Record appends one normalized event. A fresh ULID event id and an
// ISO-8601 UTC timestamp are assigned here regardless of any timestamp in
// the native payload. The store error is returned so ingestion-style
// callers can surface it; fire-and-forget callers log and move on.
func (r *Recorder) Record(ctx context.Context, eventType EventType, ohid *string, payload map[string]any, sourceSystem string) (Recorded, error) {
	eventID := ulid.Make().String()
	occurredAt := time.Now().UTC().Format(time.RFC3339)

	if err := r.store.InsertWorkflowEvent(ctx, eventID, ohid, string(eventType), payload, sourceSystem); err != nil {
		r.log.StoreError("insert_workflow_event", err)
		return Recorded{}, err
	}

	if r.bus != nil {
		r.bus.Publish(ctx, events.WorkflowEventRecorded{
			BaseEvent:    events.NewBaseEvent(),
			EventID:      eventID,
			EventType:    string(eventType),
			OHID:         ohid,
			SourceSystem: sourceSystem,
			Payload:      payload,
			RecordedAt:   occurredAt,
		})
	}

	return Recorded{
		EventID:    eventID,
		EventType:  string(eventType),
		OccurredAt: occurredAt,
	}, nil
}
