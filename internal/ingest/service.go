package ingest

import (
	"context"
	"time"

	"lead_gateway_backend/internal/events"
	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/apperr"
	"lead_gateway_backend/platform/logger"
	"lead_gateway_backend/platform/phone"

	"github.com/google/uuid"
)

// Service implements the ingestion flow. Unlike the webhook paths,
// ingestion is not fire-and-forget: the caller must learn whether the lead
// was actually captured, so store failures surface as errors.
type Service struct {
	store       repository.Store
	resolver    *service.Resolver
	recorder    *workflow.Recorder
	bus         events.Bus
	phoneRegion string
	log         *logger.Logger
}

// NewService creates the ingestion service.
func NewService(store repository.Store, resolver *service.Resolver, recorder *workflow.Recorder, bus events.Bus, phoneRegion string, log *logger.Logger) *Service {
	return &Service{
		store:       store,
		resolver:    resolver,
		recorder:    recorder,
		bus:         bus,
		phoneRegion: phoneRegion,
		log:         log,
	}
}

// ProcessLead resolves the lead's identity, persists the snapshot, and
// records the LeadIngested event.
func (s *Service) ProcessLead(ctx context.Context, req IngestLeadRequest) (IngestLeadResponse, error) {
	email := req.Person.Email
	phoneNumber := req.Person.Phone
	if phoneNumber != nil {
		normalized := phone.NormalizeE164Region(*phoneNumber, s.phoneRegion)
		phoneNumber = &normalized
	}

	ohid, existing, err := s.resolver.Resolve(ctx, email, phoneNumber)
	if err != nil {
		return IngestLeadResponse{}, apperr.Wrap(apperr.KindUnavailable, "identity lookup failed", err)
	}

	ingestID := uuid.NewString()
	lead := repository.Lead{
		SourceSystem: req.SourceSystem,
		SourceLeadID: req.SourceLeadID,
		Channel:      req.Channel,
		Person: repository.Person{
			FirstName: req.Person.FirstName,
			LastName:  req.Person.LastName,
			Email:     email,
			Phone:     phoneNumber,
		},
		Consent: repository.Consent{
			Marketing: req.Consent.Marketing,
			Source:    req.Consent.Source,
			Timestamp: req.Consent.Timestamp,
		},
		Raw:        req.Raw,
		IngestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if req.Details != nil {
		lead.Details = &repository.LeadDetails{
			BudgetRange:  req.Details.BudgetRange,
			Location:     req.Details.Location,
			PropertyType: req.Details.PropertyType,
			Notes:        req.Details.Notes,
		}
	}

	if err := s.store.InsertLeadContext(ctx, ohid, ingestID, lead); err != nil {
		s.log.StoreError("insert_lead_context", err)
		return IngestLeadResponse{}, apperr.Wrap(apperr.KindUnavailable, "failed to persist lead", err)
	}

	payload := map[string]any{
		"ingest_id":     ingestID,
		"source_system": req.SourceSystem,
		"channel":       req.Channel,
		"new_identity":  !existing,
	}
	if _, err := s.recorder.Record(ctx, workflow.EventLeadIngested, &ohid, payload, req.SourceSystem); err != nil {
		return IngestLeadResponse{}, apperr.Wrap(apperr.KindUnavailable, "failed to record ingestion event", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadIngested{
			BaseEvent:    events.NewBaseEvent(),
			OHID:         ohid,
			IngestID:     ingestID,
			SourceSystem: req.SourceSystem,
			Channel:      req.Channel,
			NewIdentity:  !existing,
		})
	}

	return IngestLeadResponse{
		OHID:         ohid,
		IngestID:     ingestID,
		SourceSystem: req.SourceSystem,
		Status:       "ingested",
		NewIdentity:  !existing,
	}, nil
}

// LookupOHID reports the identity associated with a contact, if any.
func (s *Service) LookupOHID(ctx context.Context, req LookupRequest) (LookupResponse, error) {
	phoneNumber := req.Phone
	if phoneNumber != nil {
		normalized := phone.NormalizeE164Region(*phoneNumber, s.phoneRegion)
		phoneNumber = &normalized
	}

	ohid, err := s.resolver.Lookup(ctx, req.Email, phoneNumber)
	if err != nil {
		return LookupResponse{}, apperr.Wrap(apperr.KindUnavailable, "identity lookup failed", err)
	}
	return LookupResponse{Found: ohid != nil, OHID: ohid}, nil
}
