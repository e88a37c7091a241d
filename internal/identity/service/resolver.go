// Package service provides identity resolution over the identity store.
package service

import (
	"context"
	"errors"

	"lead_gateway_backend/internal/identity/repository"

	"github.com/google/uuid"
)

// Resolver resolves a stable identity (OHID) for a contact. A lookup that
// matches either the email or the phone of any stored lead claims that
// lead's identity; a miss mints a fresh one. The resolver never writes —
// the caller persists the lead record that establishes the association.
type Resolver struct {
	store repository.Store
}

// NewResolver creates an identity resolver over the given store.
func NewResolver(store repository.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the identity for the given contact fields. existing is
// true when a stored lead already claimed the identity. A contact with
// neither email nor phone is a valid miss and always mints. Store read
// errors are returned; ingestion surfaces them, best-effort callers degrade.
func (r *Resolver) Resolve(ctx context.Context, email, phone *string) (ohid string, existing bool, err error) {
	found, err := r.store.FindOHIDByContact(ctx, email, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNoContactMatch) {
			return uuid.NewString(), false, nil
		}
		return "", false, err
	}
	return found, true, nil
}

// Lookup returns the existing identity for the given contact, or nil when
// nothing matches. Unlike Resolve it never mints; booking-style events use
// it to attach an identity only when one already exists.
func (r *Resolver) Lookup(ctx context.Context, email, phone *string) (*string, error) {
	found, err := r.store.FindOHIDByContact(ctx, email, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNoContactMatch) {
			return nil, nil
		}
		return nil, err
	}
	return &found, nil
}
