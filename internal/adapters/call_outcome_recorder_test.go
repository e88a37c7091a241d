package adapters

import (
	"context"
	"testing"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/voiceagent"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
)

func strPtr(s string) *string { return &s }

func newTestRecorder(store *repository.MemoryStore) *CallOutcomeRecorder {
	log := logger.New("development")
	return NewCallOutcomeRecorder(
		workflow.NewRecorder(store, nil, log),
		service.NewResolver(store),
		log,
	)
}

func TestRecordCallOutcomeAttachesKnownIdentity(t *testing.T) {
	store := repository.NewMemoryStore()
	phone := "+971501234567"
	if err := store.InsertLeadContext(context.Background(), "ohid-12", "ingest-1", repository.Lead{
		SourceSystem: repository.SourceWeb,
		Channel:      repository.ChannelWebForm,
		Person:       repository.Person{FirstName: "Sara", Phone: &phone},
	}); err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	adapter := newTestRecorder(store)

	err := adapter.RecordCallOutcome(context.Background(), voiceagent.CallOutcome{
		ConversationID:     "conv-1",
		CallStatus:         "done",
		CallSummary:        "asked about off-plan",
		QualificationScore: 55,
		Phone:              &phone,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	events := store.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	evt := events[0]
	if evt.EventType != string(workflow.EventElevenLabsCallCompleted) {
		t.Fatalf("event_type = %q", evt.EventType)
	}
	if evt.OHID == nil || *evt.OHID != "ohid-12" {
		t.Fatalf("known caller must attach the existing identity, got %v", evt.OHID)
	}
	if evt.Payload["qualification_score"] != 55 {
		t.Fatalf("payload score = %v", evt.Payload["qualification_score"])
	}
}

func TestRecordCallOutcomeUnknownCallerNeverMints(t *testing.T) {
	store := repository.NewMemoryStore()
	adapter := newTestRecorder(store)

	err := adapter.RecordCallOutcome(context.Background(), voiceagent.CallOutcome{
		ConversationID: "conv-2",
		CallStatus:     "done",
		Phone:          strPtr("+971509999999"),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	events := store.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].OHID != nil {
		t.Fatalf("unknown caller must leave identity null, got %q", *events[0].OHID)
	}
}

func TestRecordCallOutcomeWithoutPhone(t *testing.T) {
	store := repository.NewMemoryStore()
	adapter := newTestRecorder(store)

	transfer := "failure"
	err := adapter.RecordCallOutcome(context.Background(), voiceagent.CallOutcome{
		ConversationID:  "conv-3",
		CallStatus:      "unknown",
		HumanTransfer:   &transfer,
		TransferFailure: true,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	evt := store.Events()[0]
	if evt.Payload["transfer_failure"] != true {
		t.Fatalf("transfer_failure = %v", evt.Payload["transfer_failure"])
	}
	if _, ok := evt.Payload["phone"]; ok {
		t.Fatalf("absent phone must not appear in the payload")
	}
}
