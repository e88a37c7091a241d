// Package telephony provides the telephony webhook bounded context:
// Twilio-style call status callbacks and CloudTalk-style call events,
// normalized into the workflow taxonomy.
package telephony

// TwilioEventRequest is the body of POST /api/v1/telephony/twilio.
type TwilioEventRequest struct {
	CallSid    string `json:"call_sid" validate:"required,max=128"`
	CallStatus string `json:"call_status" validate:"required,max=64"`
	From       string `json:"from" validate:"max=32"`
	To         string `json:"to" validate:"max=32"`
	Direction  string `json:"direction" validate:"max=32"`
}

// CloudTalkEventRequest is the body of POST /api/v1/telephony/cloudtalk.
type CloudTalkEventRequest struct {
	Event        string `json:"event" validate:"required,max=64"`
	CallID       string `json:"call_id" validate:"max=128"`
	CallerNumber string `json:"caller_number" validate:"max=32"`
	AgentID      string `json:"agent_id" validate:"max=128"`
}

// EventResponse acknowledges a normalized telephony event. Echo fields
// follow the source vocabulary.
type EventResponse struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Accepted  bool   `json:"accepted"`
	CallSid   string `json:"call_sid,omitempty"`
	CallID    string `json:"call_id,omitempty"`
}
