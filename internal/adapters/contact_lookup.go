package adapters

import (
	"lead_gateway_backend/internal/crm"
	"lead_gateway_backend/internal/voiceagent"
)

// The CRM phone lookup is the production contact lookup for the pre-call
// path; the cached variant wraps it when Redis is configured.
var _ voiceagent.ContactLookup = (*crm.PhoneLookup)(nil)
var _ voiceagent.ContactLookup = (*voiceagent.CachedContactLookup)(nil)
