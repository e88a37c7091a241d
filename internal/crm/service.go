package crm

import (
	"context"
	"time"

	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/logger"
)

// Service runs lead synchronization against Zoho CRM and records each run
// in the workflow event log.
type Service struct {
	client   *Client
	recorder *workflow.Recorder
	log      *logger.Logger
}

// NewService creates the CRM sync service.
func NewService(client *Client, recorder *workflow.Recorder, log *logger.Logger) *Service {
	return &Service{client: client, recorder: recorder, log: log}
}

// Sync runs one sync in the requested direction. Inbound pulls the lead
// from Zoho; outbound pushes the known fields back. For bidirectional
// runs Zoho is the source of truth: the inbound record feeds the outbound
// upsert. A run never errors; failures land in the response status.
func (s *Service) Sync(ctx context.Context, req SyncRequest) SyncResponse {
	start := time.Now()

	var (
		inboundOK  *bool
		outboundOK *bool
		errMsg     *string
		zohoLead   map[string]any
	)

	if req.SyncDirection == DirectionInbound || req.SyncDirection == DirectionBidirectional {
		lead, err := s.client.GetLead(ctx, req.ZohoLeadID)
		switch {
		case err != nil:
			inboundOK = boolPtr(false)
			errMsg = strPtr("inbound fetch failed: " + err.Error())
		case lead == nil:
			inboundOK = boolPtr(false)
			errMsg = strPtr("zoho lead " + req.ZohoLeadID + " not found")
		default:
			inboundOK = boolPtr(true)
			zohoLead = lead
			s.log.Info("inbound sync fetched zoho lead", "zoho_lead_id", req.ZohoLeadID)
		}
	}

	if req.SyncDirection == DirectionOutbound || req.SyncDirection == DirectionBidirectional {
		payload := s.outboundPayload(req, zohoLead)
		result, err := s.client.UpsertLead(ctx, payload)
		if err != nil || result == nil {
			outboundOK = boolPtr(false)
			msg := "zoho upsert failed"
			if err != nil {
				msg += ": " + err.Error()
			}
			errMsg = appendError(errMsg, msg)
		} else {
			outboundOK = boolPtr(true)
			s.log.Info("outbound sync upserted zoho lead", "zoho_lead_id", upsertedID(result, req.ZohoLeadID))
		}
	}

	status := overallStatus(inboundOK, outboundOK)
	elapsed := time.Since(start).Milliseconds()

	eventPayload := map[string]any{
		"zoho_lead_id":      req.ZohoLeadID,
		"sync_direction":    req.SyncDirection,
		"status":            status,
		"execution_time_ms": elapsed,
	}
	if req.Source != nil {
		eventPayload["source"] = *req.Source
	}
	if _, err := s.recorder.Record(ctx, workflow.EventZohoSyncCompleted, req.OHID, eventPayload, repository.SourceZohoCRM); err != nil {
		s.log.Warn("sync event not recorded", "error", err.Error())
	}

	ohid := ""
	if req.OHID != nil {
		ohid = *req.OHID
	}

	return SyncResponse{
		ZohoLeadID:      req.ZohoLeadID,
		OHID:            ohid,
		SyncDirection:   req.SyncDirection,
		Source:          req.Source,
		Status:          status,
		InboundSuccess:  inboundOK,
		OutboundSuccess: outboundOK,
		ErrorMessage:    errMsg,
		ExecutionTimeMS: elapsed,
	}
}

// outboundPayload builds the record pushed to Zoho. When an inbound fetch
// preceded it, the fetched contact fields win.
func (s *Service) outboundPayload(req SyncRequest, zohoLead map[string]any) map[string]any {
	payload := map[string]any{"Last_Name": "Synced Lead"}
	if zohoLead != nil {
		for _, field := range []string{"Last_Name", "First_Name", "Email", "Phone", "Company"} {
			if v, ok := zohoLead[field]; ok && v != nil {
				payload[field] = v
			}
		}
	}
	if req.Source != nil && *req.Source != "" {
		payload["Lead_Source"] = *req.Source
	} else {
		payload["Lead_Source"] = "lead_gateway"
	}
	if req.OHID != nil && *req.OHID != "" {
		payload["External_ID__c"] = *req.OHID
	}
	return payload
}

func overallStatus(inboundOK, outboundOK *bool) string {
	failed := (inboundOK != nil && !*inboundOK) || (outboundOK != nil && !*outboundOK)
	if !failed {
		return "success"
	}
	succeeded := (inboundOK != nil && *inboundOK) || (outboundOK != nil && *outboundOK)
	if succeeded {
		return "partial"
	}
	return "failed"
}

func upsertedID(result map[string]any, fallback string) string {
	if details, ok := result["details"].(map[string]any); ok {
		if id, ok := details["id"].(string); ok && id != "" {
			return id
		}
	}
	return fallback
}

func appendError(existing *string, msg string) *string {
	if existing == nil {
		return &msg
	}
	combined := *existing + " | " + msg
	return &combined
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
