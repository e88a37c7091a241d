package voiceagent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestEngine(lookup ContactLookup, sink CallOutcomeSink, store *repository.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := testLog()
	recorder := workflow.NewRecorder(store, nil, log)
	handler := NewHandler(
		NewPersonalizationResolver(lookup, time.Second, log),
		NewExtractor(sink, nil, log),
		recorder,
		validator.New(),
	)

	engine := gin.New()
	engine.POST("/webhooks/elevenlabs/conversation-initiation", handler.HandleConversationInitiation)
	engine.POST("/webhooks/elevenlabs/post-call", handler.HandlePostCall)
	engine.POST("/api/v1/voice/events", handler.HandleVoiceEvent)
	return engine
}

func TestConversationInitiationContract(t *testing.T) {
	lookup := ContactLookupFunc(func(context.Context, string) (map[string]any, error) {
		return nil, errors.New("backend down")
	})
	engine := newTestEngine(lookup, nil, repository.NewMemoryStore())

	body := []byte(`{"caller_id":"+971501234567","agent_id":"agent-1","conversation_id":"conv-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/elevenlabs/conversation-initiation", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("pre-call path must never fail, got %d", rec.Code)
	}

	var resp struct {
		Type             string            `json:"type"`
		DynamicVariables map[string]string `json:"dynamic_variables"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Type != "conversation_initiation_client_data" {
		t.Fatalf("type = %q", resp.Type)
	}
	if len(resp.DynamicVariables) != 16 {
		t.Fatalf("expected 16 dynamic variables, got %d", len(resp.DynamicVariables))
	}
	if resp.DynamicVariables["phone"] != "+971501234567" {
		t.Fatalf("phone = %q", resp.DynamicVariables["phone"])
	}
	if resp.DynamicVariables["first_name"] != "there" {
		t.Fatalf("first_name = %q", resp.DynamicVariables["first_name"])
	}
}

func TestConversationInitiationPhoneAliasPrecedence(t *testing.T) {
	var sawPhone string
	lookup := ContactLookupFunc(func(_ context.Context, phone string) (map[string]any, error) {
		sawPhone = phone
		return nil, nil
	})
	engine := newTestEngine(lookup, nil, repository.NewMemoryStore())

	body := []byte(`{"from":"+4","phone_number":"+3","caller_id":"+2","number":"+1"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/elevenlabs/conversation-initiation", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if sawPhone != "+1" {
		t.Fatalf("number alias must win, lookup saw %q", sawPhone)
	}
}

func TestPostCallAlwaysAcknowledges(t *testing.T) {
	sink := CallOutcomeSinkFunc(func(context.Context, CallOutcome) error {
		return errors.New("sink down")
	})
	engine := newTestEngine(nil, sink, repository.NewMemoryStore())

	body := []byte(`{"conversation_id":"conv-9","human_transfer":"failure","analysis":{"data_collection":{"qualification_score":"72"}}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/elevenlabs/post-call", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("post-call must acknowledge, got %d", rec.Code)
	}

	var resp PostCallResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Received || resp.ConversationID != "conv-9" {
		t.Fatalf("unexpected ack: %+v", resp)
	}
	if !resp.TransferFailureFlagged {
		t.Fatalf("transfer failure must be flagged in the ack")
	}
	if resp.CorrelationID == "" {
		t.Fatalf("correlation id must be set")
	}
}

func TestPostCallRequiresConversationID(t *testing.T) {
	engine := newTestEngine(nil, nil, repository.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/elevenlabs/post-call", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing conversation_id must be rejected, got %d", rec.Code)
	}
}

func TestVoiceEventMapping(t *testing.T) {
	store := repository.NewMemoryStore()
	engine := newTestEngine(nil, nil, store)

	body := []byte(`{"event":"post_call_transcription","conversation_id":"conv-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp VoiceEventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.EventType != string(workflow.EventElevenLabsCallCompleted) {
		t.Fatalf("event_type = %q", resp.EventType)
	}
	if store.EventCount() != 1 {
		t.Fatalf("expected persisted event")
	}
}
