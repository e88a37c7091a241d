package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the production Store implementation backed by pgx.
//
// The disjunctive contact match reads the contact fields out of the stored
// lead payload. Find-or-create across two racing ingests is a documented
// check-then-act race at this layer; a deployment that needs strict
// uniqueness must arbitrate with a unique index plus upsert keyed on the
// contact fields.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// InsertLeadContext persists one lead snapshot as a JSONB payload.
func (s *PostgresStore) InsertLeadContext(ctx context.Context, ohid, ingestID string, lead Lead) error {
	payload, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("marshal lead payload: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO lead_context (ingest_id, ohid, source_system, channel, payload, ingested_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		ingestID, ohid, lead.SourceSystem, lead.Channel, payload,
	)
	if err != nil {
		return fmt.Errorf("insert lead context: %w", err)
	}
	return nil
}

// InsertWorkflowEvent appends one normalized event to the log.
func (s *PostgresStore) InsertWorkflowEvent(ctx context.Context, eventID string, ohid *string, eventType string, payload map[string]any, sourceSystem string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO workflow_event (event_id, ohid, event_type, payload, source_system, occurred_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		eventID, ohid, eventType, data, sourceSystem,
	)
	if err != nil {
		return fmt.Errorf("insert workflow event: %w", err)
	}
	return nil
}

// FindOHIDByContact performs the disjunctive email-OR-phone match against
// the contact fields of stored lead payloads. The oldest matching lead wins
// so an identity, once established, stays stable.
func (s *PostgresStore) FindOHIDByContact(ctx context.Context, email, phone *string) (string, error) {
	if email == nil && phone == nil {
		return "", ErrNoContactMatch
	}

	var ohid string
	err := s.pool.QueryRow(ctx, `
		SELECT ohid FROM lead_context
		WHERE ($1::text IS NOT NULL AND payload->'person'->>'email' = $1)
		   OR ($2::text IS NOT NULL AND payload->'person'->>'phone' = $2)
		ORDER BY ingested_at ASC
		LIMIT 1`,
		email, phone,
	).Scan(&ohid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoContactMatch
		}
		return "", fmt.Errorf("find ohid by contact: %w", err)
	}
	return ohid, nil
}

// Ping reports whether the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Compile-time check that PostgresStore implements Store
var _ Store = (*PostgresStore)(nil)
