// Package repository provides the identity store: contact-to-identity
// associations, raw ingested lead records, and the workflow event log.
package repository

// Source systems a lead or event can originate from.
const (
	SourceWeb        = "WEB"
	SourceMeta       = "META"
	SourceTwilio     = "TWILIO"
	SourceZohoSocial = "ZOHO_SOCIAL"
	SourceZohoCRM    = "ZOHO_CRM"
	SourceElevenLabs = "ELEVENLABS"
	SourceCalcom     = "CALCOM"
	SourceCloudTalk  = "CLOUDTALK"
	SourceNotion     = "NOTION"
)

// Channels a lead can arrive through.
const (
	ChannelWebForm      = "WEB_FORM"
	ChannelMetaLeadAd   = "META_LEAD_AD"
	ChannelInboundCall  = "INBOUND_CALL"
	ChannelOutboundCall = "OUTBOUND_CALL"
	ChannelSocial       = "SOCIAL"
	ChannelCRM          = "CRM"
	ChannelAIVoiceCall  = "AI_VOICE_CALL"
	ChannelBooking      = "BOOKING"
)

// Person is the contact sub-record of a lead.
type Person struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// LeadDetails holds optional qualification details captured at ingestion.
type LeadDetails struct {
	BudgetRange  string `json:"budget_range,omitempty"`
	Location     string `json:"location,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Consent records the marketing consent state at ingestion time.
type Consent struct {
	Marketing bool   `json:"marketing"`
	Source    string `json:"source,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Lead is one immutable ingestion snapshot from a source system.
type Lead struct {
	SourceSystem string         `json:"source_system"`
	SourceLeadID string         `json:"source_lead_id,omitempty"`
	Channel      string         `json:"channel"`
	Person       Person         `json:"person"`
	Details      *LeadDetails   `json:"details,omitempty"`
	Consent      Consent        `json:"consent"`
	Raw          map[string]any `json:"raw,omitempty"`
	IngestedAt   string         `json:"ingested_at"`
}
