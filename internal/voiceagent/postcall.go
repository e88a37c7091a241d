package voiceagent

import (
	"context"
	"strconv"
	"time"

	"lead_gateway_backend/internal/events"
	"lead_gateway_backend/platform/logger"
)

// transferFailureSentinel is the literal outcome value that flags a failed
// human transfer.
const transferFailureSentinel = "failure"

// Extractor is the post-call path: parse the analysis payload into a
// typed outcome, hand it to the sink, and always acknowledge. Sink
// failures are logged and swallowed; malformed analytics sub-fields
// default silently.
type Extractor struct {
	sink CallOutcomeSink
	bus  events.Bus
	log  *logger.Logger
}

// NewExtractor creates an extractor over the given sink.
func NewExtractor(sink CallOutcomeSink, bus events.Bus, log *logger.Logger) *Extractor {
	return &Extractor{sink: sink, bus: bus, log: log}
}

// Process extracts, persists best-effort, and builds the acknowledgement.
// Duplicate submissions for the same conversation id each persist
// independently; no deduplication is performed.
func (e *Extractor) Process(ctx context.Context, req PostCallRequest, correlationID string) PostCallResponse {
	summary := ""
	score := 0
	if req.Analysis != nil {
		summary = extractSummary(req.Analysis)
		score = extractScore(req.Analysis.DataCollection)
	}

	transferFailure := req.HumanTransfer != nil && *req.HumanTransfer == transferFailureSentinel
	if transferFailure {
		e.log.Warn("transfer failure flagged",
			"correlation_id", correlationID,
			"conversation_id", req.ConversationID,
		)
		if e.bus != nil {
			e.bus.Publish(ctx, events.TransferFailureFlagged{
				BaseEvent:      events.NewBaseEvent(),
				ConversationID: req.ConversationID,
				CorrelationID:  correlationID,
				Phone:          req.PhoneNumber,
			})
		}
	}

	status := "unknown"
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	outcome := CallOutcome{
		ConversationID:     req.ConversationID,
		CallSid:            req.CallSid,
		CallStatus:         status,
		CallSummary:        summary,
		CallTimestamp:      time.Now().UTC().Format(time.RFC3339),
		QualificationScore: score,
		CallDurationSecs:   req.CallDurationSecs,
		HumanTransfer:      req.HumanTransfer,
		Phone:              req.PhoneNumber,
		AgentID:            req.AgentID,
		CollectedData:      req.CollectedData,
		TransferFailure:    transferFailure,
	}

	if e.sink != nil {
		if err := e.sink.RecordCallOutcome(ctx, outcome); err != nil {
			e.log.Error("post-call sink failed",
				"correlation_id", correlationID,
				"conversation_id", req.ConversationID,
				"error", err.Error(),
			)
		}
	}

	return PostCallResponse{
		Received:               true,
		ConversationID:         req.ConversationID,
		CorrelationID:          correlationID,
		ProcessedAt:            time.Now().UTC().Format(time.RFC3339),
		TransferFailureFlagged: transferFailure,
	}
}

// extractSummary prefers call_summary over transcript_summary.
func extractSummary(analysis *ConversationAnalysis) string {
	if analysis.CallSummary != nil && *analysis.CallSummary != "" {
		return *analysis.CallSummary
	}
	if analysis.TranscriptSummary != nil {
		return *analysis.TranscriptSummary
	}
	return ""
}

// extractScore parses the string-or-number qualification score from the
// free-form data collection, silently defaulting to 0.
func extractScore(dataCollection map[string]any) int {
	if dataCollection == nil {
		return 0
	}
	raw, ok := dataCollection["qualification_score"]
	if !ok || raw == nil {
		return 0
	}

	switch typed := raw.(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case string:
		parsed, err := strconv.Atoi(typed)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
