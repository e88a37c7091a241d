package workflow

import (
	"context"
	"errors"
	"testing"

	"lead_gateway_backend/internal/events"
	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/platform/logger"
)

func TestRecordAppendsBeforePublish(t *testing.T) {
	store := repository.NewMemoryStore()
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)

	published := make(chan events.WorkflowEventRecorded, 1)
	bus.Subscribe(events.WorkflowEventRecorded{}.EventName(), events.HandlerFunc(func(_ context.Context, event events.Event) error {
		if recorded, ok := event.(events.WorkflowEventRecorded); ok {
			published <- recorded
		}
		return nil
	}))

	recorder := NewRecorder(store, bus, log)
	ohid := "ohid-1"
	recorded, err := recorder.Record(context.Background(), EventLeadIngested, &ohid, map[string]any{"channel": "WEB_FORM"}, repository.SourceWeb)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if recorded.EventID == "" || recorded.OccurredAt == "" {
		t.Fatalf("expected assigned id and timestamp, got %+v", recorded)
	}
	if store.EventCount() != 1 {
		t.Fatalf("expected 1 persisted event, got %d", store.EventCount())
	}

	got := <-published
	if got.EventID != recorded.EventID || got.EventType != string(EventLeadIngested) {
		t.Fatalf("unexpected published event: %+v", got)
	}
	if got.RecordedAt != recorded.OccurredAt {
		t.Fatalf("published event timestamp %q, want log stamp %q", got.RecordedAt, recorded.OccurredAt)
	}
	if got.OccurredAt().IsZero() {
		t.Fatalf("bus timestamp must be set on the published event")
	}
}

// The published event must satisfy the bus Event interface; its log
// timestamp lives in RecordedAt so the promoted OccurredAt method stays
// intact.
var _ events.Event = events.WorkflowEventRecorded{}

type rejectingStore struct {
	repository.MemoryStore
}

func (s *rejectingStore) InsertWorkflowEvent(context.Context, string, *string, string, map[string]any, string) error {
	return errors.New("append failed")
}

func TestRecordReturnsStoreError(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)

	delivered := false
	bus.Subscribe(events.WorkflowEventRecorded{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		delivered = true
		return nil
	}))

	recorder := NewRecorder(&rejectingStore{}, bus, log)
	_, err := recorder.Record(context.Background(), EventCallReceived, nil, nil, repository.SourceTwilio)
	if err == nil {
		t.Fatalf("expected store error to surface")
	}
	if delivered {
		t.Fatalf("publish must not happen when the append fails")
	}
}

func TestRecordedEventIDsAreUnique(t *testing.T) {
	store := repository.NewMemoryStore()
	log := logger.New("development")
	recorder := NewRecorder(store, nil, log)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		recorded, err := recorder.Record(context.Background(), EventCallCompleted, nil, nil, repository.SourceTwilio)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if seen[recorded.EventID] {
			t.Fatalf("duplicate event id %q", recorded.EventID)
		}
		seen[recorded.EventID] = true
	}
}
