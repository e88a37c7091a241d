package workflow

import "testing"

func TestMapTwilioStatus(t *testing.T) {
	cases := []struct {
		status string
		want   EventType
	}{
		{"ringing", EventCallReceived},
		{"queued", EventCallReceived},
		{"initiated", EventCallReceived},
		{"completed", EventCallCompleted},
		{"busy", EventCallCompleted},
		{"no-answer", EventCallCompleted},
		{"canceled", EventCallCompleted},
		{"failed", EventCallCompleted},
		{"in-progress", EventCallCompleted},
		{"", EventCallCompleted},
	}
	for _, tc := range cases {
		if got := MapTwilioStatus(tc.status); got != tc.want {
			t.Fatalf("MapTwilioStatus(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestMapCloudTalkEvent(t *testing.T) {
	cases := []struct {
		event string
		want  EventType
	}{
		{"call.started", EventCallReceived},
		{"call.ringing", EventCallReceived},
		{"call.ended", EventCallCompleted},
		{"call.answered", EventCallCompleted},
		{"anything-else", EventCallCompleted},
	}
	for _, tc := range cases {
		if got := MapCloudTalkEvent(tc.event); got != tc.want {
			t.Fatalf("MapCloudTalkEvent(%q) = %q, want %q", tc.event, got, tc.want)
		}
	}
}

func TestMapVoiceAgentEvent(t *testing.T) {
	cases := []struct {
		event string
		want  EventType
	}{
		{"call.ended", EventElevenLabsCallCompleted},
		{"post_call_transcription", EventElevenLabsCallCompleted},
		{"call.analysis_complete", EventElevenLabsCallCompleted},
		{"call.started", EventElevenLabsEvent},
		{"transcript.partial", EventElevenLabsEvent},
	}
	for _, tc := range cases {
		if got := MapVoiceAgentEvent(tc.event); got != tc.want {
			t.Fatalf("MapVoiceAgentEvent(%q) = %q, want %q", tc.event, got, tc.want)
		}
	}
}

func TestMapCalcomTrigger(t *testing.T) {
	cases := []struct {
		trigger string
		want    EventType
	}{
		{"BOOKING_CREATED", EventCalcomBookingCreated},
		{"BOOKING_RESCHEDULED", EventCalcomBookingRescheduled},
		{"BOOKING_CANCELLED", EventCalcomBookingCancelled},
		{"BOOKING_CONFIRMED", EventCalcomBookingConfirmed},
		{"MEETING_STARTED", EventCalcomMeetingStarted},
		{"MEETING_ENDED", EventCalcomMeetingEnded},
		{"FOO", EventCalcomEvent},
		{"", EventCalcomEvent},
	}
	for _, tc := range cases {
		if got := MapCalcomTrigger(tc.trigger); got != tc.want {
			t.Fatalf("MapCalcomTrigger(%q) = %q, want %q", tc.trigger, got, tc.want)
		}
	}
}
