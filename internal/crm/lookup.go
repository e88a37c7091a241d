package crm

import (
	"context"

	"lead_gateway_backend/platform/logger"
)

// PhoneLookup adapts the Zoho client to the voice agent's contact lookup:
// it searches the Leads module by phone and returns the raw CRM field map
// the personalization mapper consumes. A clean miss is (nil, nil).
type PhoneLookup struct {
	client *Client
	log    *logger.Logger
}

// NewPhoneLookup creates the CRM-backed phone lookup.
func NewPhoneLookup(client *Client, log *logger.Logger) *PhoneLookup {
	return &PhoneLookup{client: client, log: log}
}

// LookupByPhone searches Zoho Leads by phone number.
func (l *PhoneLookup) LookupByPhone(ctx context.Context, phone string) (map[string]any, error) {
	lead, err := l.client.SearchLeadByPhone(ctx, phone)
	if err != nil {
		l.log.Warn("zoho lead search failed", "error", err.Error())
		return nil, err
	}
	return lead, nil
}
