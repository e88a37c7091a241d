package voiceagent

import (
	"net/http"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/httpkit"
	"lead_gateway_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles voice-agent HTTP requests.
type Handler struct {
	personalization *PersonalizationResolver
	extractor       *Extractor
	recorder        *workflow.Recorder
	val             *validator.Validator
}

// NewHandler creates a new voice-agent handler.
func NewHandler(personalization *PersonalizationResolver, extractor *Extractor, recorder *workflow.Recorder, val *validator.Validator) *Handler {
	return &Handler{
		personalization: personalization,
		extractor:       extractor,
		recorder:        recorder,
		val:             val,
	}
}

// HandleConversationInitiation is the pre-call webhook. It must answer
// inside the voice platform's setup deadline and never errors: a malformed
// or failing lookup still produces the default variable set.
// POST /webhooks/elevenlabs/conversation-initiation
func (h *Handler) HandleConversationInitiation(c *gin.Context) {
	var req ConversationInitiationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	vars := h.personalization.Resolve(c.Request.Context(), req.ResolvePhone())
	httpkit.OK(c, NewInitiationResponse(vars))
}

// HandlePostCall is the post-call webhook. Fire-and-forget from the
// upstream caller: it always acknowledges receipt.
// POST /webhooks/elevenlabs/post-call
func (h *Handler) HandlePostCall(c *gin.Context) {
	var req PostCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	correlationID := httpkit.GetCorrelationID(c)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	httpkit.OK(c, h.extractor.Process(c.Request.Context(), req, correlationID))
}

// HandleVoiceEvent is the tool-style voice-agent event endpoint.
// POST /api/v1/voice/events
func (h *Handler) HandleVoiceEvent(c *gin.Context) {
	var req VoiceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	payload := map[string]any{
		"event":           req.Event,
		"conversation_id": req.ConversationID,
	}
	if req.Payload != nil {
		payload["native"] = req.Payload
	}

	recorded, err := h.recorder.Record(c.Request.Context(), workflow.MapVoiceAgentEvent(req.Event), nil, payload, repository.SourceElevenLabs)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, VoiceEventResponse{
		EventID:        recorded.EventID,
		EventType:      recorded.EventType,
		Accepted:       true,
		ConversationID: req.ConversationID,
	})
}
