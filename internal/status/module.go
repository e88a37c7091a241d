// Package status exposes the pipeline configuration status resource.
package status

import (
	"net/http"

	apphttp "lead_gateway_backend/internal/http"
	"lead_gateway_backend/internal/identity/repository"

	"github.com/gin-gonic/gin"
)

// PipelineStatus describes the gateway's effective configuration. It is
// assembled once at startup from the wiring decisions, not from env reads.
type PipelineStatus struct {
	Service        string   `json:"service"`
	Version        string   `json:"version"`
	Sources        []string `json:"sources"`
	Channels       []string `json:"channels"`
	Store          string   `json:"store"`
	Relay          string   `json:"relay"`
	LeadCache      bool     `json:"lead_cache"`
	ZohoAuthMode   string   `json:"zoho_auth_mode"`
	SyncDirections []string `json:"sync_directions"`
}

// NewPipelineStatus fills in the static fields of the status report.
func NewPipelineStatus(store, relay string, leadCache bool, zohoAuthMode string) PipelineStatus {
	return PipelineStatus{
		Service: "lead-gateway",
		Version: "1.0.0",
		Sources: []string{
			repository.SourceWeb, repository.SourceMeta, repository.SourceTwilio,
			repository.SourceZohoSocial, repository.SourceZohoCRM, repository.SourceElevenLabs,
			repository.SourceCalcom, repository.SourceCloudTalk, repository.SourceNotion,
		},
		Channels: []string{
			repository.ChannelWebForm, repository.ChannelMetaLeadAd, repository.ChannelInboundCall,
			repository.ChannelOutboundCall, repository.ChannelSocial, repository.ChannelCRM,
			repository.ChannelAIVoiceCall, repository.ChannelBooking,
		},
		Store:          store,
		Relay:          relay,
		LeadCache:      leadCache,
		ZohoAuthMode:   zohoAuthMode,
		SyncDirections: []string{"inbound", "outbound", "bidirectional"},
	}
}

// Module serves the pipeline status endpoint.
type Module struct {
	status PipelineStatus
}

// NewModule creates the status module.
func NewModule(status PipelineStatus) *Module {
	return &Module{status: status}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "status"
}

// RegisterRoutes mounts the status route on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/status/pipeline", func(c *gin.Context) {
		c.JSON(http.StatusOK, m.status)
	})
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
