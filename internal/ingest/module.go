// Package ingest provides the lead ingestion bounded context module.
package ingest

import (
	"lead_gateway_backend/internal/events"
	apphttp "lead_gateway_backend/internal/http"
	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
	"lead_gateway_backend/platform/validator"
)

// Module is the ingestion bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the ingestion module.
func NewModule(store repository.Store, resolver *service.Resolver, recorder *workflow.Recorder, bus events.Bus, phoneRegion string, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(store, resolver, recorder, bus, phoneRegion, log)
	return &Module{handler: NewHandler(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "ingest"
}

// RegisterRoutes mounts ingestion routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/ingest/leads", m.handler.HandleIngestLead)
	ctx.V1.POST("/lookup/ohid", m.handler.HandleLookupOHID)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
