package voiceagent

import "context"

// ContactLookup resolves a lead record by caller phone. Implementations
// return the raw CRM field map (nil on a clean miss). Injected at
// construction; the pre-call path treats any error, stall, or panic from
// it as a miss.
type ContactLookup interface {
	LookupByPhone(ctx context.Context, phone string) (map[string]any, error)
}

// ContactLookupFunc adapts a function to the ContactLookup interface.
type ContactLookupFunc func(ctx context.Context, phone string) (map[string]any, error)

// LookupByPhone calls the underlying function.
func (f ContactLookupFunc) LookupByPhone(ctx context.Context, phone string) (map[string]any, error) {
	return f(ctx, phone)
}

// CallOutcome is the normalized record extracted from a post-call payload.
type CallOutcome struct {
	ConversationID     string         `json:"conversation_id"`
	CallSid            *string        `json:"call_sid,omitempty"`
	CallStatus         string         `json:"call_status"`
	CallSummary        string         `json:"call_summary"`
	CallTimestamp      string         `json:"call_timestamp"`
	QualificationScore int            `json:"qualification_score"`
	CallDurationSecs   *float64       `json:"call_duration_secs,omitempty"`
	HumanTransfer      *string        `json:"human_transfer,omitempty"`
	Phone              *string        `json:"phone,omitempty"`
	AgentID            *string        `json:"agent_id,omitempty"`
	CollectedData      map[string]any `json:"collected_data,omitempty"`
	TransferFailure    bool           `json:"transfer_failure"`
}

// CallOutcomeSink persists one extracted call outcome. Injected at
// construction; a sink failure is logged and swallowed, the webhook
// acknowledges regardless.
type CallOutcomeSink interface {
	RecordCallOutcome(ctx context.Context, outcome CallOutcome) error
}

// CallOutcomeSinkFunc adapts a function to the CallOutcomeSink interface.
type CallOutcomeSinkFunc func(ctx context.Context, outcome CallOutcome) error

// RecordCallOutcome calls the underlying function.
func (f CallOutcomeSinkFunc) RecordCallOutcome(ctx context.Context, outcome CallOutcome) error {
	return f(ctx, outcome)
}
