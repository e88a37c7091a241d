// Package voiceagent provides the voice-agent bounded context module.
package voiceagent

import (
	"time"

	"lead_gateway_backend/internal/events"
	apphttp "lead_gateway_backend/internal/http"
	"lead_gateway_backend/internal/webhookauth"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
	"lead_gateway_backend/platform/validator"
)

// Module is the voice-agent bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the voice-agent module. The contact
// lookup and call-outcome sink are capability interfaces injected by the
// composition root; either may be nil in degraded deployments (defaults
// are served, outcomes are logged only).
func NewModule(lookup ContactLookup, sink CallOutcomeSink, recorder *workflow.Recorder, bus events.Bus, lookupTimeout time.Duration, val *validator.Validator, log *logger.Logger) *Module {
	personalization := NewPersonalizationResolver(lookup, lookupTimeout, log)
	extractor := NewExtractor(sink, bus, log)

	return &Module{
		handler: NewHandler(personalization, extractor, recorder, val),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "voiceagent"
}

// RegisterRoutes mounts voice-agent routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	auth := webhookauth.Middleware("elevenlabs", ctx.Secrets.GetElevenLabsWebhookSecret, false, m.log)

	group := ctx.Webhooks.Group("/elevenlabs")
	group.POST("/conversation-initiation", auth, m.handler.HandleConversationInitiation)
	group.POST("/post-call", auth, m.handler.HandlePostCall)

	ctx.V1.POST("/voice/events", auth, m.handler.HandleVoiceEvent)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
