// Package service contains the business logic of the tourism portal.
// Services validate inputs, enforce the slug rules, and orchestrate the record
// store and blob store. No SQL lives here; services depend on interfaces.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/munifrias/turismo/internal/domain"
	"github.com/munifrias/turismo/internal/repo"
)

// SlugGuard rejects a slug before a write when another record of the same
// category already holds it.
//
// It is a check-then-act pre-flight, not a lock: two concurrent writers can
// both pass. The UNIQUE (slug) constraint on every table is the real
// guarantee, and the repo reports its violation as domain.ErrSlugConflict too.
type SlugGuard struct {
	places repo.PlaceRepo
}

// NewSlugGuard constructs a SlugGuard reading from places.
func NewSlugGuard(places repo.PlaceRepo) *SlugGuard {
	return &SlugGuard{places: places}
}

// CheckAndReserve returns nil when candidate is free in category c.
// excludingID is the record being edited (nil on create) so it never
// conflicts with its own slug. Comparison is literal: candidate is not
// normalized again.
//
// Errors wrap domain.ErrSlugConflict when the slug is taken, or
// domain.ErrStore when the lookup itself fails.
func (g *SlugGuard) CheckAndReserve(ctx context.Context, c domain.Category, candidate string, excludingID *uuid.UUID) error {
	taken, err := g.places.SlugTaken(ctx, c, candidate, excludingID)
	if err != nil {
		return fmt.Errorf("service.SlugGuard.CheckAndReserve: %w: %w", domain.ErrStore, err)
	}
	if taken {
		return fmt.Errorf("service.SlugGuard.CheckAndReserve: %w", domain.ErrSlugConflict)
	}
	return nil
}
