// Package notion provides the notion bounded context module.
package notion

import (
	apphttp "lead_gateway_backend/internal/http"
	"lead_gateway_backend/internal/webhookauth"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
)

// Module is the notion bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the notion module.
func NewModule(recorder *workflow.Recorder, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(NewService(recorder)), log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notion"
}

// RegisterRoutes mounts notion routes on the provided router context.
// Notion signs with a "sha256=" prefix, stripped before comparison.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/notion",
		webhookauth.Middleware("notion", ctx.Secrets.GetNotionWebhookSecret, true, m.log),
		m.handler.HandleEvent,
	)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
