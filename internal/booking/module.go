// Package booking provides the booking bounded context module.
package booking

import (
	apphttp "lead_gateway_backend/internal/http"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/webhookauth"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
	"lead_gateway_backend/platform/validator"
)

// Module is the booking bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the booking module.
func NewModule(recorder *workflow.Recorder, resolver *service.Resolver, phoneRegion string, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(recorder, resolver, phoneRegion, log)
	return &Module{handler: NewHandler(svc, val), log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "booking"
}

// RegisterRoutes mounts booking routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/booking/calcom",
		webhookauth.Middleware("calcom", ctx.Secrets.GetCalcomWebhookSecret, false, m.log),
		m.handler.HandleCalcomEvent,
	)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
