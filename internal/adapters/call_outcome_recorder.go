// Package adapters wires bounded contexts together without letting them
// import each other directly.
package adapters

import (
	"context"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/voiceagent"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
)

// CallOutcomeRecorder adapts the workflow recorder into the voice agent's
// call outcome sink. Each post-call extraction lands in the workflow event
// log as an ElevenLabsCallCompleted event. When the outcome carries a
// phone, the identity resolver attaches an existing OHID by lookup only;
// a call from an unknown number never mints an identity.
type CallOutcomeRecorder struct {
	recorder *workflow.Recorder
	resolver *service.Resolver
	log      *logger.Logger
}

// NewCallOutcomeRecorder creates the call outcome adapter.
func NewCallOutcomeRecorder(recorder *workflow.Recorder, resolver *service.Resolver, log *logger.Logger) *CallOutcomeRecorder {
	return &CallOutcomeRecorder{recorder: recorder, resolver: resolver, log: log}
}

// RecordCallOutcome persists one extracted call outcome.
func (a *CallOutcomeRecorder) RecordCallOutcome(ctx context.Context, outcome voiceagent.CallOutcome) error {
	var ohid *string
	if a.resolver != nil && outcome.Phone != nil && *outcome.Phone != "" {
		found, err := a.resolver.Lookup(ctx, nil, outcome.Phone)
		if err != nil {
			a.log.StoreError("call_outcome_identity_lookup", err)
		} else {
			ohid = found
		}
	}

	payload := map[string]any{
		"conversation_id":     outcome.ConversationID,
		"call_status":         outcome.CallStatus,
		"call_summary":        outcome.CallSummary,
		"qualification_score": outcome.QualificationScore,
		"transfer_failure":    outcome.TransferFailure,
	}
	if outcome.CallTimestamp != "" {
		payload["call_timestamp"] = outcome.CallTimestamp
	}
	if outcome.CallSid != nil {
		payload["call_sid"] = *outcome.CallSid
	}
	if outcome.CallDurationSecs != nil {
		payload["call_duration_secs"] = *outcome.CallDurationSecs
	}
	if outcome.HumanTransfer != nil {
		payload["human_transfer"] = *outcome.HumanTransfer
	}
	if outcome.Phone != nil {
		payload["phone"] = *outcome.Phone
	}
	if outcome.AgentID != nil {
		payload["agent_id"] = *outcome.AgentID
	}
	if len(outcome.CollectedData) > 0 {
		payload["collected_data"] = outcome.CollectedData
	}

	_, err := a.recorder.Record(ctx, workflow.EventElevenLabsCallCompleted, ohid, payload, repository.SourceElevenLabs)
	return err
}

// Compile-time check.
var _ voiceagent.CallOutcomeSink = (*CallOutcomeRecorder)(nil)
