// Package telephony provides the telephony bounded context module.
package telephony

import (
	apphttp "lead_gateway_backend/internal/http"
	"lead_gateway_backend/internal/webhookauth"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
	"lead_gateway_backend/platform/validator"
)

// Module is the telephony bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the telephony module.
func NewModule(recorder *workflow.Recorder, phoneRegion string, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(recorder, phoneRegion)
	return &Module{handler: NewHandler(svc, val), log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "telephony"
}

// RegisterRoutes mounts telephony routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/telephony")
	group.POST("/twilio",
		webhookauth.Middleware("twilio", ctx.Secrets.GetTwilioAuthToken, false, m.log),
		m.handler.HandleTwilioEvent,
	)
	group.POST("/cloudtalk",
		webhookauth.Middleware("cloudtalk", ctx.Secrets.GetCloudTalkWebhookSecret, false, m.log),
		m.handler.HandleCloudTalkEvent,
	)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
