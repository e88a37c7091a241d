package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for development and tests.
//
// The RWMutex makes individual operations safe from concurrent handlers,
// but find-or-create is still not atomic: two racing ingests for the same
// contact can each see a miss and mint distinct identities. Acceptable for
// dev/test use only.
type MemoryStore struct {
	mu     sync.RWMutex
	leads  []memoryLead
	events []memoryEvent
}

type memoryLead struct {
	IngestID string
	OHID     string
	Email    *string
	Phone    *string
	Lead     Lead
}

type memoryEvent struct {
	EventID      string
	OHID         *string
	EventType    string
	Payload      map[string]any
	SourceSystem string
	OccurredAt   time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// InsertLeadContext appends one lead snapshot.
func (s *MemoryStore) InsertLeadContext(_ context.Context, ohid, ingestID string, lead Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leads = append(s.leads, memoryLead{
		IngestID: ingestID,
		OHID:     ohid,
		Email:    lead.Person.Email,
		Phone:    lead.Person.Phone,
		Lead:     lead,
	})
	return nil
}

// InsertWorkflowEvent appends one normalized event.
func (s *MemoryStore) InsertWorkflowEvent(_ context.Context, eventID string, ohid *string, eventType string, payload map[string]any, sourceSystem string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, memoryEvent{
		EventID:      eventID,
		OHID:         ohid,
		EventType:    eventType,
		Payload:      payload,
		SourceSystem: sourceSystem,
		OccurredAt:   time.Now().UTC(),
	})
	return nil
}

// FindOHIDByContact scans stored leads oldest-first for a disjunctive match.
func (s *MemoryStore) FindOHIDByContact(_ context.Context, email, phone *string) (string, error) {
	if email == nil && phone == nil {
		return "", ErrNoContactMatch
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, lead := range s.leads {
		if email != nil && lead.Email != nil && *lead.Email == *email {
			return lead.OHID, nil
		}
		if phone != nil && lead.Phone != nil && *lead.Phone == *phone {
			return lead.OHID, nil
		}
	}
	return "", ErrNoContactMatch
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// StoredEvent is a snapshot of one appended workflow event. Test helper type.
type StoredEvent struct {
	EventID      string
	OHID         *string
	EventType    string
	Payload      map[string]any
	SourceSystem string
}

// EventCount returns the number of appended events. Test helper.
func (s *MemoryStore) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Events returns a snapshot of the appended events. Test helper.
func (s *MemoryStore) Events() []StoredEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredEvent, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, StoredEvent{ev.EventID, ev.OHID, ev.EventType, ev.Payload, ev.SourceSystem})
	}
	return out
}

// Compile-time check that MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
