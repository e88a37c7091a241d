// Package workflow provides the internal event taxonomy and the recorder
// that appends normalized events to the workflow event log.
package workflow

// EventType is one entry in the closed internal event taxonomy. Every
// inbound source signal maps onto exactly one of these.
type EventType string

const (
	EventLeadIngested            EventType = "LeadIngested"
	EventCallReceived            EventType = "CallReceived"
	EventCallCompleted           EventType = "CallCompleted"
	EventElevenLabsCallCompleted EventType = "ElevenLabsCallCompleted"
	EventElevenLabsEvent         EventType = "ElevenLabsEvent"
	EventCalcomBookingCreated    EventType = "CalcomBookingCreated"
	EventCalcomBookingRescheduled EventType = "CalcomBookingRescheduled"
	EventCalcomBookingCancelled  EventType = "CalcomBookingCancelled"
	EventCalcomBookingConfirmed  EventType = "CalcomBookingConfirmed"
	EventCalcomMeetingStarted    EventType = "CalcomMeetingStarted"
	EventCalcomMeetingEnded      EventType = "CalcomMeetingEnded"
	EventCalcomEvent             EventType = "CalcomEvent"
	EventNotionEvent             EventType = "NotionEvent"
	EventZohoSyncCompleted       EventType = "ZohoSyncCompleted"
)

// MapTwilioStatus maps a Twilio-style call status onto the taxonomy.
// Pre-connection statuses are CallReceived; everything else, including
// terminal failures, is CallCompleted.
func MapTwilioStatus(status string) EventType {
	switch status {
	case "ringing", "queued", "initiated":
		return EventCallReceived
	default:
		return EventCallCompleted
	}
}

// MapCloudTalkEvent maps a CloudTalk-style event name onto the taxonomy.
func MapCloudTalkEvent(event string) EventType {
	switch event {
	case "call.started", "call.ringing":
		return EventCallReceived
	default:
		return EventCallCompleted
	}
}

// MapVoiceAgentEvent maps a voice-agent event name onto the taxonomy.
func MapVoiceAgentEvent(event string) EventType {
	switch event {
	case "call.ended", "post_call_transcription", "call.analysis_complete":
		return EventElevenLabsCallCompleted
	default:
		return EventElevenLabsEvent
	}
}

// MapCalcomTrigger maps a Cal.com trigger onto the taxonomy. Unrecognized
// triggers fall back to the generic CalcomEvent.
func MapCalcomTrigger(trigger string) EventType {
	switch trigger {
	case "BOOKING_CREATED":
		return EventCalcomBookingCreated
	case "BOOKING_RESCHEDULED":
		return EventCalcomBookingRescheduled
	case "BOOKING_CANCELLED":
		return EventCalcomBookingCancelled
	case "BOOKING_CONFIRMED":
		return EventCalcomBookingConfirmed
	case "MEETING_STARTED":
		return EventCalcomMeetingStarted
	case "MEETING_ENDED":
		return EventCalcomMeetingEnded
	default:
		return EventCalcomEvent
	}
}
