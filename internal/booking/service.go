package booking

import (
	"context"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
	"lead_gateway_backend/platform/phone"
)

// Service normalizes booking triggers. When the payload carries an
// attendee contact, an existing identity is attached via disjunctive
// lookup; a lookup failure leaves the identity null and still records
// the event.
type Service struct {
	recorder    *workflow.Recorder
	resolver    *service.Resolver
	phoneRegion string
	log         *logger.Logger
}

// NewService creates the booking service.
func NewService(recorder *workflow.Recorder, resolver *service.Resolver, phoneRegion string, log *logger.Logger) *Service {
	return &Service{recorder: recorder, resolver: resolver, phoneRegion: phoneRegion, log: log}
}

// ProcessCalcomEvent records one Cal.com trigger with optional identity.
func (s *Service) ProcessCalcomEvent(ctx context.Context, req CalcomEventRequest) (EventResponse, error) {
	var ohid *string
	payload := map[string]any{
		"trigger_event": req.TriggerEvent,
		"booking_id":    req.BookingID,
		"event_type_id": req.EventTypeID,
		"start_time":    req.StartTime,
		"end_time":      req.EndTime,
	}

	if req.Attendee != nil {
		attendeePhone := req.Attendee.Phone
		if attendeePhone != nil {
			normalized := phone.NormalizeE164Region(*attendeePhone, s.phoneRegion)
			attendeePhone = &normalized
		}
		payload["attendee"] = map[string]any{
			"name":  req.Attendee.Name,
			"email": req.Attendee.Email,
			"phone": attendeePhone,
		}

		if req.Attendee.Email != nil || attendeePhone != nil {
			found, err := s.resolver.Lookup(ctx, req.Attendee.Email, attendeePhone)
			if err != nil {
				// Identity attachment is best-effort on the booking path.
				s.log.StoreError("booking_identity_lookup", err)
			} else {
				ohid = found
			}
		}
	}

	recorded, err := s.recorder.Record(ctx, workflow.MapCalcomTrigger(req.TriggerEvent), ohid, payload, repository.SourceCalcom)
	if err != nil {
		return EventResponse{}, err
	}

	return EventResponse{
		EventID:   recorded.EventID,
		EventType: recorded.EventType,
		Accepted:  true,
		BookingID: req.BookingID,
		OHID:      ohid,
	}, nil
}
