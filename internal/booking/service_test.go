package booking

import (
	"context"
	"testing"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
)

func strPtr(s string) *string { return &s }

func newTestService(store repository.Store) *Service {
	log := logger.New("development")
	recorder := workflow.NewRecorder(store, nil, log)
	resolver := service.NewResolver(store)
	return NewService(recorder, resolver, "AE", log)
}

func TestProcessCalcomEventAttachesExistingIdentity(t *testing.T) {
	store := repository.NewMemoryStore()
	if err := store.InsertLeadContext(context.Background(), "ohid-7", "ingest-1", repository.Lead{
		Person: repository.Person{Email: strPtr("guest@x.com")},
	}); err != nil {
		t.Fatalf("seed lead: %v", err)
	}

	svc := newTestService(store)
	resp, err := svc.ProcessCalcomEvent(context.Background(), CalcomEventRequest{
		TriggerEvent: "BOOKING_CREATED",
		BookingID:    "bk-1",
		Attendee:     &AttendeeRequest{Name: "Guest", Email: strPtr("guest@x.com")},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if resp.EventType != string(workflow.EventCalcomBookingCreated) {
		t.Fatalf("expected CalcomBookingCreated, got %q", resp.EventType)
	}
	if resp.OHID == nil || *resp.OHID != "ohid-7" {
		t.Fatalf("expected attached identity ohid-7, got %v", resp.OHID)
	}
}

func TestProcessCalcomEventUnknownAttendeeLeavesIdentityNull(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)

	resp, err := svc.ProcessCalcomEvent(context.Background(), CalcomEventRequest{
		TriggerEvent: "BOOKING_CANCELLED",
		Attendee:     &AttendeeRequest{Email: strPtr("stranger@x.com")},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if resp.OHID != nil {
		t.Fatalf("lookup must never mint on the booking path, got %v", *resp.OHID)
	}
	if store.Events()[0].OHID != nil {
		t.Fatalf("persisted event must carry a null identity")
	}
}

func TestProcessCalcomEventUnrecognizedTrigger(t *testing.T) {
	svc := newTestService(repository.NewMemoryStore())

	resp, err := svc.ProcessCalcomEvent(context.Background(), CalcomEventRequest{TriggerEvent: "FOO"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if resp.EventType != string(workflow.EventCalcomEvent) {
		t.Fatalf("expected CalcomEvent fallback, got %q", resp.EventType)
	}
}
