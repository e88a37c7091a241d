package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/workflow"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *repository.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := zohoTestConfig{apiBase: srv.URL, accessToken: "test-token"}
	store := repository.NewMemoryStore()
	recorder := workflow.NewRecorder(store, nil, testLog())
	return NewService(NewClient(cfg, NewTokenManager(cfg, testLog())), recorder, testLog()), store
}

type zohoFixture struct {
	lastUpserted map[string]any
}

func (f *zohoFixture) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/Leads/1001":
			w.Write([]byte(`{"data":[{"First_Name":"Sara","Last_Name":"Hassan","Email":"sara@example.com","Phone":"+971501234567"}]}`))
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/Leads/upsert":
			var body struct {
				Data []map[string]any `json:"data"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			f.lastUpserted = body.Data[0]
			w.Write([]byte(`{"data":[{"code":"SUCCESS","action":"update","details":{"id":"1001"}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestSyncInbound(t *testing.T) {
	svc, store := newTestService(t, (&zohoFixture{}).handler())

	resp := svc.Sync(context.Background(), SyncRequest{
		ZohoLeadID:    "1001",
		SyncDirection: DirectionInbound,
	})

	if resp.Status != "success" {
		t.Fatalf("status = %q (%v)", resp.Status, resp.ErrorMessage)
	}
	if resp.InboundSuccess == nil || !*resp.InboundSuccess {
		t.Fatalf("inbound_success = %v", resp.InboundSuccess)
	}
	if resp.OutboundSuccess != nil {
		t.Fatalf("outbound must not run on inbound sync")
	}
	if store.EventCount() != 1 {
		t.Fatalf("expected a recorded sync event, got %d", store.EventCount())
	}
	evt := store.Events()[0]
	if evt.EventType != string(workflow.EventZohoSyncCompleted) || evt.SourceSystem != repository.SourceZohoCRM {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestSyncBidirectionalCarriesZohoFieldsOutbound(t *testing.T) {
	fixture := &zohoFixture{}
	svc, _ := newTestService(t, fixture.handler())

	ohid := "ohid-9"
	resp := svc.Sync(context.Background(), SyncRequest{
		ZohoLeadID:    "1001",
		SyncDirection: DirectionBidirectional,
		Source:        strPtr("cloudtalk_call"),
		OHID:          &ohid,
	})

	if resp.Status != "success" {
		t.Fatalf("status = %q (%v)", resp.Status, resp.ErrorMessage)
	}
	if fixture.lastUpserted["Email"] != "sara@example.com" || fixture.lastUpserted["Last_Name"] != "Hassan" {
		t.Fatalf("zoho record must feed the outbound upsert, got %v", fixture.lastUpserted)
	}
	if fixture.lastUpserted["Lead_Source"] != "cloudtalk_call" {
		t.Fatalf("Lead_Source = %v", fixture.lastUpserted["Lead_Source"])
	}
	if fixture.lastUpserted["External_ID__c"] != "ohid-9" {
		t.Fatalf("External_ID__c = %v", fixture.lastUpserted["External_ID__c"])
	}
}

func TestSyncPartialWhenInboundMisses(t *testing.T) {
	svc, _ := newTestService(t, (&zohoFixture{}).handler())

	resp := svc.Sync(context.Background(), SyncRequest{
		ZohoLeadID:    "no-such-lead",
		SyncDirection: DirectionBidirectional,
	})

	if resp.Status != "partial" {
		t.Fatalf("status = %q", resp.Status)
	}
	if resp.InboundSuccess == nil || *resp.InboundSuccess {
		t.Fatalf("inbound_success = %v", resp.InboundSuccess)
	}
	if resp.OutboundSuccess == nil || !*resp.OutboundSuccess {
		t.Fatalf("outbound_success = %v", resp.OutboundSuccess)
	}
	if resp.ErrorMessage == nil {
		t.Fatalf("expected an error message for the failed direction")
	}
}

func TestSyncFailedWhenZohoIsDown(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	resp := svc.Sync(context.Background(), SyncRequest{
		ZohoLeadID:    "1001",
		SyncDirection: DirectionBidirectional,
	})

	if resp.Status != "failed" {
		t.Fatalf("status = %q", resp.Status)
	}
	if resp.ExecutionTimeMS < 0 {
		t.Fatalf("execution_time_ms = %d", resp.ExecutionTimeMS)
	}
}

func TestPhoneLookupReturnsRawFieldMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"First_Name":"Omar","qualification_score":55}]}`))
	}))
	t.Cleanup(srv.Close)

	cfg := zohoTestConfig{apiBase: srv.URL, accessToken: "test-token"}
	lookup := NewPhoneLookup(NewClient(cfg, NewTokenManager(cfg, testLog())), testLog())

	lead, err := lookup.LookupByPhone(context.Background(), "+971501234567")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if lead["First_Name"] != "Omar" {
		t.Fatalf("unexpected lead: %v", lead)
	}
	if score, ok := lead["qualification_score"].(float64); !ok || score != 55 {
		t.Fatalf("raw field map must keep native types, got %T", lead["qualification_score"])
	}
}
