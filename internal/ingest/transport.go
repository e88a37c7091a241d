// Package ingest provides the lead ingestion bounded context: validate an
// inbound lead, resolve its identity, persist the immutable snapshot, and
// record the LeadIngested workflow event.
package ingest

// PersonRequest is the contact sub-record of an inbound lead.
type PersonRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=1,max=200"`
	LastName  string  `json:"last_name" validate:"max=200"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
}

// DetailsRequest holds optional qualification details.
type DetailsRequest struct {
	BudgetRange  string `json:"budget_range" validate:"max=200"`
	Location     string `json:"location" validate:"max=200"`
	PropertyType string `json:"property_type" validate:"max=200"`
	Notes        string `json:"notes" validate:"max=4000"`
}

// ConsentRequest records the marketing consent captured with the lead.
type ConsentRequest struct {
	Marketing bool   `json:"marketing"`
	Source    string `json:"source" validate:"max=200"`
	Timestamp string `json:"timestamp" validate:"max=64"`
}

// IngestLeadRequest is the body of POST /api/v1/ingest/leads.
type IngestLeadRequest struct {
	SourceSystem string          `json:"source_system" validate:"required,oneof=WEB META TWILIO ZOHO_SOCIAL ZOHO_CRM ELEVENLABS CALCOM"`
	SourceLeadID string          `json:"source_lead_id" validate:"max=200"`
	Channel      string          `json:"channel" validate:"required,oneof=WEB_FORM META_LEAD_AD INBOUND_CALL OUTBOUND_CALL SOCIAL CRM AI_VOICE_CALL BOOKING"`
	Person       PersonRequest   `json:"person" validate:"required"`
	Details      *DetailsRequest `json:"details"`
	Consent      ConsentRequest  `json:"consent"`
	Raw          map[string]any  `json:"raw"`
}

// IngestLeadResponse confirms a captured lead. Status is always "ingested"
// on success; a store failure surfaces as an error instead.
type IngestLeadResponse struct {
	OHID         string `json:"ohid"`
	IngestID     string `json:"ingest_id"`
	SourceSystem string `json:"source_system"`
	Status       string `json:"status"`
	NewIdentity  bool   `json:"new_identity"`
}

// LookupRequest is the body of POST /api/v1/lookup/ohid.
type LookupRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
}

// LookupResponse reports whether a contact already has an identity.
type LookupResponse struct {
	Found bool    `json:"found"`
	OHID  *string `json:"ohid,omitempty"`
}
