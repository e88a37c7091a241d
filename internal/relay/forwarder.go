package relay

import (
	"context"

	"lead_gateway_backend/internal/events"
	"lead_gateway_backend/platform/logger"
)

// Forwarder bridges the in-process event bus to the relay transport:
// every recorded workflow event is handed to the publisher. Publish
// errors are logged and dropped so the durable append is never affected.
type Forwarder struct {
	publisher Publisher
	log       *logger.Logger
}

// NewForwarder creates a forwarder over the given publisher.
func NewForwarder(publisher Publisher, log *logger.Logger) *Forwarder {
	return &Forwarder{publisher: publisher, log: log}
}

// RegisterHandlers subscribes the forwarder to the event bus.
func (f *Forwarder) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.WorkflowEventRecorded{}.EventName(), events.HandlerFunc(f.handleRecorded))
}

func (f *Forwarder) handleRecorded(ctx context.Context, event events.Event) error {
	recorded, ok := event.(events.WorkflowEventRecorded)
	if !ok {
		return nil
	}

	err := f.publisher.Publish(ctx, Message{
		EventID:      recorded.EventID,
		EventType:    recorded.EventType,
		OHID:         recorded.OHID,
		SourceSystem: recorded.SourceSystem,
		OccurredAt:   recorded.RecordedAt,
		Payload:      recorded.Payload,
	})
	if err != nil {
		f.log.Warn("relay forward failed",
			"event_id", recorded.EventID,
			"event_type", recorded.EventType,
			"error", err.Error(),
		)
	}
	// Best-effort: never bubble delivery errors back onto the bus.
	return nil
}
