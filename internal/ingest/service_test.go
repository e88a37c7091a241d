package ingest

import (
	"context"
	"errors"
	"testing"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
)

func strPtr(s string) *string { return &s }

func newTestService(store repository.Store) *Service {
	log := logger.New("development")
	resolver := service.NewResolver(store)
	recorder := workflow.NewRecorder(store, nil, log)
	return NewService(store, resolver, recorder, nil, "AE", log)
}

func TestProcessLeadMintsAndPersists(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)

	resp, err := svc.ProcessLead(context.Background(), IngestLeadRequest{
		SourceSystem: repository.SourceWeb,
		Channel:      repository.ChannelWebForm,
		Person: PersonRequest{
			FirstName: "Amina",
			Email:     strPtr("amina@x.com"),
		},
	})
	if err != nil {
		t.Fatalf("process lead: %v", err)
	}
	if resp.Status != "ingested" || resp.OHID == "" || resp.IngestID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.NewIdentity {
		t.Fatalf("first sight of a contact must mint a new identity")
	}
	if store.EventCount() != 1 {
		t.Fatalf("expected a LeadIngested event, got %d events", store.EventCount())
	}
	if store.Events()[0].EventType != string(workflow.EventLeadIngested) {
		t.Fatalf("unexpected event type %q", store.Events()[0].EventType)
	}
}

func TestProcessLeadReusesIdentityOnSharedContact(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)

	first, err := svc.ProcessLead(context.Background(), IngestLeadRequest{
		SourceSystem: repository.SourceWeb,
		Channel:      repository.ChannelWebForm,
		Person:       PersonRequest{FirstName: "Amina", Email: strPtr("amina@x.com"), Phone: strPtr("+971500000001")},
	})
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	// Same phone, different email: disjunctive match claims the identity.
	second, err := svc.ProcessLead(context.Background(), IngestLeadRequest{
		SourceSystem: repository.SourceMeta,
		Channel:      repository.ChannelMetaLeadAd,
		Person:       PersonRequest{FirstName: "Amina", Email: strPtr("other@x.com"), Phone: strPtr("+971500000001")},
	})
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	if first.OHID != second.OHID {
		t.Fatalf("expected shared identity, got %q and %q", first.OHID, second.OHID)
	}
	if second.NewIdentity {
		t.Fatalf("second ingest must not mint")
	}
	if first.IngestID == second.IngestID {
		t.Fatalf("each ingestion needs its own ingest id")
	}
}

func TestProcessLeadNormalizesPhone(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)

	// Local UAE format on ingest, E.164 on lookup: both map to one identity.
	first, err := svc.ProcessLead(context.Background(), IngestLeadRequest{
		SourceSystem: repository.SourceWeb,
		Channel:      repository.ChannelWebForm,
		Person:       PersonRequest{FirstName: "Omar", Phone: strPtr("050 123 4567")},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	lookup, err := svc.LookupOHID(context.Background(), LookupRequest{Phone: strPtr("+971501234567")})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !lookup.Found || lookup.OHID == nil || *lookup.OHID != first.OHID {
		t.Fatalf("expected normalized phone to match, got %+v", lookup)
	}
}

type brokenStore struct {
	repository.MemoryStore
}

func (s *brokenStore) InsertLeadContext(context.Context, string, string, repository.Lead) error {
	return errors.New("store down")
}

func TestProcessLeadSurfacesStoreFailure(t *testing.T) {
	svc := newTestService(&brokenStore{})

	_, err := svc.ProcessLead(context.Background(), IngestLeadRequest{
		SourceSystem: repository.SourceWeb,
		Channel:      repository.ChannelWebForm,
		Person:       PersonRequest{FirstName: "Amina"},
	})
	if err == nil {
		t.Fatalf("ingestion must surface store failures")
	}
}

func TestLookupOHIDMiss(t *testing.T) {
	svc := newTestService(repository.NewMemoryStore())

	resp, err := svc.LookupOHID(context.Background(), LookupRequest{Email: strPtr("nobody@x.com")})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if resp.Found || resp.OHID != nil {
		t.Fatalf("expected miss, got %+v", resp)
	}
}
