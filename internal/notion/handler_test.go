package notion

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func newTestHandler(store *repository.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	recorder := workflow.NewRecorder(store, nil, logger.New("development"))
	handler := NewHandler(NewService(recorder))

	engine := gin.New()
	engine.POST("/api/v1/notion", handler.HandleEvent)
	return engine
}

func TestChallengeEchoShortCircuits(t *testing.T) {
	store := repository.NewMemoryStore()
	engine := newTestHandler(store)

	body := []byte(`{"challenge":"verify-me-123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notion", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["challenge"] != "verify-me-123" {
		t.Fatalf("challenge not echoed verbatim: %+v", resp)
	}
	if store.EventCount() != 0 {
		t.Fatalf("challenge handshake must not persist an event")
	}
}

func TestNotionEventRetainsNativeSubtype(t *testing.T) {
	store := repository.NewMemoryStore()
	engine := newTestHandler(store)

	body := []byte(`{"type":"page.updated","page_id":"abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notion", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp EventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.EventType != string(workflow.EventNotionEvent) || resp.Subtype != "page.updated" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if store.EventCount() != 1 {
		t.Fatalf("expected persisted event, got %d", store.EventCount())
	}
}
