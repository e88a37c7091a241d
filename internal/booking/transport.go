// Package booking provides the Cal.com booking webhook bounded context.
package booking

// AttendeeRequest is the attendee sub-record of a booking trigger.
type AttendeeRequest struct {
	Name  string  `json:"name" validate:"max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
}

// CalcomEventRequest is the body of POST /api/v1/booking/calcom.
type CalcomEventRequest struct {
	TriggerEvent string           `json:"trigger_event" validate:"required,max=64"`
	BookingID    string           `json:"booking_id" validate:"max=128"`
	EventTypeID  string           `json:"event_type_id" validate:"max=128"`
	StartTime    string           `json:"start_time" validate:"max=64"`
	EndTime      string           `json:"end_time" validate:"max=64"`
	Attendee     *AttendeeRequest `json:"attendee"`
}

// EventResponse acknowledges a normalized booking event.
type EventResponse struct {
	EventID   string  `json:"event_id"`
	EventType string  `json:"event_type"`
	Accepted  bool    `json:"accepted"`
	BookingID string  `json:"booking_id,omitempty"`
	OHID      *string `json:"ohid,omitempty"`
}
