package crm

// Sync directions.
const (
	DirectionInbound       = "inbound"
	DirectionOutbound      = "outbound"
	DirectionBidirectional = "bidirectional"
)

// SyncRequest asks for one lead to be synchronized with Zoho CRM.
type SyncRequest struct {
	ZohoLeadID    string  `json:"zoho_lead_id" validate:"required"`
	SyncDirection string  `json:"sync_direction" validate:"required,oneof=inbound outbound bidirectional"`
	Source        *string `json:"source,omitempty"`
	OHID          *string `json:"ohid,omitempty"`
}

// SyncResponse reports the per-direction outcome of a sync run.
type SyncResponse struct {
	ZohoLeadID      string  `json:"zoho_lead_id"`
	OHID            string  `json:"ohid"`
	SyncDirection   string  `json:"sync_direction"`
	Source          *string `json:"source,omitempty"`
	Status          string  `json:"status"`
	InboundSuccess  *bool   `json:"inbound_success"`
	OutboundSuccess *bool   `json:"outbound_success"`
	ErrorMessage    *string `json:"error_message,omitempty"`
	ExecutionTimeMS int64   `json:"execution_time_ms"`
}
