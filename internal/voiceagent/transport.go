// Package voiceagent provides the voice-agent webhook bounded context:
// per-call personalization (pre-call) and call-outcome extraction
// (post-call) for an ElevenLabs-style conversational agent.
package voiceagent

// ConversationInitiationRequest is the pre-call webhook body. The caller
// phone may arrive under any of four aliases, checked in precedence order.
type ConversationInitiationRequest struct {
	Number         *string `json:"number"`
	CallerID       *string `json:"caller_id"`
	PhoneNumber    *string `json:"phone_number"`
	From           *string `json:"from"`
	AgentID        *string `json:"agent_id"`
	ConversationID *string `json:"conversation_id"`
	CallSid        *string `json:"call_sid"`
}

// ResolvePhone extracts the caller phone from whichever alias is populated.
func (r ConversationInitiationRequest) ResolvePhone() *string {
	for _, candidate := range []*string{r.Number, r.CallerID, r.PhoneNumber, r.From} {
		if candidate != nil && *candidate != "" {
			return candidate
		}
	}
	return nil
}

// DynamicVariables is the personalization variable set handed to the voice
// agent. Every field must always be present as a string; the agent cannot
// tolerate absent or non-string values.
type DynamicVariables struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	LeadStatus         string `json:"lead_status"`
	QualificationScore string `json:"qualification_score"`
	PropertyType       string `json:"property_type"`
	Source             string `json:"source"`
	PreviousContact    string `json:"previous_contact"`
	LastInteraction    string `json:"last_interaction"`
	Notes              string `json:"notes"`
	OHID               string `json:"ohid"`
	BudgetRange        string `json:"budget_range"`
	InvestmentTimeline string `json:"investment_timeline"`
	PreferredLocation  string `json:"preferred_location"`
	Nationality        string `json:"nationality"`
	Occupation         string `json:"occupation"`
	Phone              string `json:"phone"`
}

// DefaultVariables returns the documented per-field defaults.
func DefaultVariables() DynamicVariables {
	return DynamicVariables{
		FirstName:          "there",
		LastName:           "",
		LeadStatus:         "new",
		QualificationScore: "0",
		PropertyType:       "not specified",
		Source:             "phone",
		PreviousContact:    "no",
		LastInteraction:    "first contact",
		Notes:              "",
		OHID:               "",
		BudgetRange:        "not discussed",
		InvestmentTimeline: "not discussed",
		PreferredLocation:  "Dubai",
		Nationality:        "",
		Occupation:         "",
		Phone:              "",
	}
}

// AsMap renders the variable set as the 16-key string map the agent
// protocol requires.
func (v DynamicVariables) AsMap() map[string]string {
	return map[string]string{
		"first_name":          v.FirstName,
		"last_name":           v.LastName,
		"lead_status":         v.LeadStatus,
		"qualification_score": v.QualificationScore,
		"property_type":       v.PropertyType,
		"source":              v.Source,
		"previous_contact":    v.PreviousContact,
		"last_interaction":    v.LastInteraction,
		"notes":               v.Notes,
		"ohid":                v.OHID,
		"budget_range":        v.BudgetRange,
		"investment_timeline": v.InvestmentTimeline,
		"preferred_location":  v.PreferredLocation,
		"nationality":         v.Nationality,
		"occupation":          v.Occupation,
		"phone":               v.Phone,
	}
}

// AgentOverride carries per-conversation agent configuration.
type AgentOverride struct {
	Agent map[string]string `json:"agent"`
}

// ConversationInitiationResponse is the pre-call webhook response.
type ConversationInitiationResponse struct {
	Type                       string            `json:"type"`
	DynamicVariables           map[string]string `json:"dynamic_variables"`
	ConversationConfigOverride AgentOverride     `json:"conversation_config_override"`
}

// NewInitiationResponse packages a variable set in the agent protocol shape.
func NewInitiationResponse(vars DynamicVariables) ConversationInitiationResponse {
	return ConversationInitiationResponse{
		Type:             "conversation_initiation_client_data",
		DynamicVariables: vars.AsMap(),
		ConversationConfigOverride: AgentOverride{
			Agent: map[string]string{"language": "en"},
		},
	}
}

// ConversationAnalysis is the analysis block of a post-call payload.
type ConversationAnalysis struct {
	CallSuccessful    *string        `json:"call_successful"`
	CallSummary       *string        `json:"call_summary"`
	TranscriptSummary *string        `json:"transcript_summary"`
	DataCollection    map[string]any `json:"data_collection"`
}

// PostCallRequest is the post-call webhook body.
type PostCallRequest struct {
	ConversationID   string                `json:"conversation_id" validate:"required,max=200"`
	AgentID          *string               `json:"agent_id"`
	Status           *string               `json:"status"`
	CallDurationSecs *float64              `json:"call_duration_secs"`
	CallSid          *string               `json:"call_sid"`
	PhoneNumber      *string               `json:"phone_number"`
	Transcript       []map[string]any      `json:"transcript"`
	Analysis         *ConversationAnalysis `json:"analysis"`
	HumanTransfer    *string               `json:"human_transfer"`
	Metadata         map[string]any        `json:"metadata"`
	CollectedData    map[string]any        `json:"collected_data"`
}

// PostCallResponse acknowledges receipt. Sent regardless of downstream
// persistence success.
type PostCallResponse struct {
	Received               bool   `json:"received"`
	ConversationID         string `json:"conversation_id"`
	CorrelationID          string `json:"correlation_id"`
	ProcessedAt            string `json:"processed_at"`
	TransferFailureFlagged bool   `json:"transfer_failure_flagged"`
}

// VoiceEventRequest is the body of the tool-style POST /api/v1/voice/events.
type VoiceEventRequest struct {
	Event          string         `json:"event" validate:"required,max=64"`
	ConversationID string         `json:"conversation_id" validate:"max=200"`
	Payload        map[string]any `json:"payload"`
}

// VoiceEventResponse acknowledges a normalized voice-agent event.
type VoiceEventResponse struct {
	EventID        string `json:"event_id"`
	EventType      string `json:"event_type"`
	Accepted       bool   `json:"accepted"`
	ConversationID string `json:"conversation_id,omitempty"`
}
