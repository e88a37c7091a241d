package repository

import (
	"context"
	"errors"
)

// ErrNoContactMatch is returned by FindOHIDByContact when no stored lead
// shares the supplied email or phone.
var ErrNoContactMatch = errors.New("no lead matches the supplied contact")

// Store is the narrow persistence contract the gateway core depends on.
// Lead records and workflow events are append-only; nothing is ever
// updated or deleted through this interface.
type Store interface {
	// InsertLeadContext persists one immutable lead snapshot under the
	// given identity and ingestion id.
	InsertLeadContext(ctx context.Context, ohid, ingestID string, lead Lead) error

	// InsertWorkflowEvent appends one normalized event to the workflow
	// event log. The identity reference is nullable: many events arrive
	// before an identity can be resolved.
	InsertWorkflowEvent(ctx context.Context, eventID string, ohid *string, eventType string, payload map[string]any, sourceSystem string) error

	// FindOHIDByContact returns the identity of the first stored lead
	// whose email OR phone matches (disjunctive). Returns
	// ErrNoContactMatch when nothing matches, including when both
	// arguments are nil.
	FindOHIDByContact(ctx context.Context, email, phone *string) (string, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
