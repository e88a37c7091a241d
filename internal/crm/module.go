package crm

import (
	apphttp "lead_gateway_backend/internal/http"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/config"
	"lead_gateway_backend/platform/logger"
	"lead_gateway_backend/platform/validator"
)

// Module is the Zoho CRM bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	lookup  *PhoneLookup
}

// NewModule creates and initializes the CRM module.
func NewModule(cfg config.ZohoConfig, recorder *workflow.Recorder, val *validator.Validator, log *logger.Logger) *Module {
	client := NewClient(cfg, NewTokenManager(cfg, log))
	return &Module{
		handler: NewHandler(NewService(client, recorder, log), val),
		lookup:  NewPhoneLookup(client, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "crm"
}

// ContactLookup exposes the CRM-backed phone lookup for the pre-call path.
func (m *Module) ContactLookup() *PhoneLookup {
	return m.lookup
}

// RegisterRoutes mounts CRM routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/crm/zoho/sync", m.handler.HandleSync)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
