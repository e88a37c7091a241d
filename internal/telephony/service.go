package telephony

import (
	"context"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/phone"
)

// Service normalizes raw telephony signals into workflow events. Identity
// is null on these events by design: enrichment happens downstream.
type Service struct {
	recorder    *workflow.Recorder
	phoneRegion string
}

// NewService creates the telephony service.
func NewService(recorder *workflow.Recorder, phoneRegion string) *Service {
	return &Service{recorder: recorder, phoneRegion: phoneRegion}
}

// ProcessTwilioEvent records a Twilio-style call status change.
func (s *Service) ProcessTwilioEvent(ctx context.Context, req TwilioEventRequest) (EventResponse, error) {
	payload := map[string]any{
		"call_sid":    req.CallSid,
		"call_status": req.CallStatus,
		"from":        phone.NormalizeE164Region(req.From, s.phoneRegion),
		"to":          phone.NormalizeE164Region(req.To, s.phoneRegion),
		"direction":   req.Direction,
	}

	recorded, err := s.recorder.Record(ctx, workflow.MapTwilioStatus(req.CallStatus), nil, payload, repository.SourceTwilio)
	if err != nil {
		return EventResponse{}, err
	}

	return EventResponse{
		EventID:   recorded.EventID,
		EventType: recorded.EventType,
		Accepted:  true,
		CallSid:   req.CallSid,
	}, nil
}

// ProcessCloudTalkEvent records a CloudTalk-style call event.
func (s *Service) ProcessCloudTalkEvent(ctx context.Context, req CloudTalkEventRequest) (EventResponse, error) {
	payload := map[string]any{
		"event":         req.Event,
		"call_id":       req.CallID,
		"caller_number": phone.NormalizeE164Region(req.CallerNumber, s.phoneRegion),
		"agent_id":      req.AgentID,
	}

	recorded, err := s.recorder.Record(ctx, workflow.MapCloudTalkEvent(req.Event), nil, payload, repository.SourceCloudTalk)
	if err != nil {
		return EventResponse{}, err
	}

	return EventResponse{
		EventID:   recorded.EventID,
		EventType: recorded.EventType,
		Accepted:  true,
		CallID:    req.CallID,
	}, nil
}
