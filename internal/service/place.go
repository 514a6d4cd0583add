package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/munifrias/turismo/internal/blob"
	"github.com/munifrias/turismo/internal/domain"
	"github.com/munifrias/turismo/internal/repo"
	"github.com/munifrias/turismo/internal/slug"
)

// PlaceService implements the create/edit/delete lifecycle of points of
// interest for every category.
type PlaceService struct {
	places repo.PlaceRepo
	guard  *SlugGuard
	blobs  blob.Store
	log    *slog.Logger
}

// NewPlaceService constructs a PlaceService. blobs receives the best-effort
// cleanup of images that records stop referencing.
func NewPlaceService(places repo.PlaceRepo, blobs blob.Store, log *slog.Logger) *PlaceService {
	return &PlaceService{
		places: places,
		guard:  NewSlugGuard(places),
		blobs:  blobs,
		log:    log,
	}
}

// Create validates and persists a new record.
// A blank slug is derived from the name. Returns domain.ErrValidation for bad
// input, domain.ErrSlugConflict if the slug is taken in the category (either
// by the guard or by the unique constraint at write time) and domain.ErrStore
// for store failures.
func (s *PlaceService) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	p.Name = strings.TrimSpace(p.Name)
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = slug.Generate(p.Name)
	}
	if err := s.validate(ctx, p); err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	if err := s.guard.CheckAndReserve(ctx, p.Category, p.Slug, nil); err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}

	created, err := s.places.Create(ctx, p)
	if err != nil {
		return domain.Place{}, storeErr("service.PlaceService.Create", err)
	}
	return created, nil
}

// GetByID returns a record by its internal id.
func (s *PlaceService) GetByID(ctx context.Context, c domain.Category, id uuid.UUID) (domain.Place, error) {
	p, err := s.places.GetByID(ctx, c, id)
	if err != nil {
		return domain.Place{}, storeErr("service.PlaceService.GetByID", err)
	}
	return p, nil
}

// GetBySlug returns a record by its public slug.
func (s *PlaceService) GetBySlug(ctx context.Context, c domain.Category, slug string) (domain.Place, error) {
	p, err := s.places.GetBySlug(ctx, c, slug)
	if err != nil {
		return domain.Place{}, storeErr("service.PlaceService.GetBySlug", err)
	}
	return p, nil
}

// List returns one page of a category and the total number of records.
// The slice is never nil.
func (s *PlaceService) List(ctx context.Context, c domain.Category, params domain.PaginationParams) ([]domain.Place, int64, error) {
	places, total, err := s.places.ListPaged(ctx, c, params)
	if err != nil {
		return nil, 0, storeErr("service.PlaceService.List", err)
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, total, nil
}

// Update validates and persists an edit. The slug is required but is not
// re-derived from the name; admins may keep a custom slug after a rename.
// Images dropped by the edit are removed from the blob store best-effort.
func (s *PlaceService) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := s.validate(ctx, p); err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Update: %w", err)
	}

	current, err := s.places.GetByID(ctx, p.Category, p.ID)
	if err != nil {
		return domain.Place{}, storeErr("service.PlaceService.Update", err)
	}
	if err := s.guard.CheckAndReserve(ctx, p.Category, p.Slug, &p.ID); err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Update: %w", err)
	}

	updated, err := s.places.Update(ctx, p)
	if err != nil {
		return domain.Place{}, storeErr("service.PlaceService.Update", err)
	}

	var dropped []string
	for _, img := range current.Images {
		if !slices.Contains(updated.Images, img) {
			dropped = append(dropped, img)
		}
	}
	s.releaseImages(ctx, updated, dropped)

	return updated, nil
}

// Delete removes a record and then releases every image it referenced.
// Blob cleanup is best-effort: failures are logged and never fail the delete.
func (s *PlaceService) Delete(ctx context.Context, c domain.Category, id uuid.UUID) error {
	p, err := s.places.GetByID(ctx, c, id)
	if err != nil {
		return storeErr("service.PlaceService.Delete", err)
	}
	if err := s.places.Delete(ctx, c, id); err != nil {
		return storeErr("service.PlaceService.Delete", err)
	}
	s.releaseImages(ctx, p, p.Images)
	return nil
}

// validate enforces the rules shared by Create and Update.
func (s *PlaceService) validate(ctx context.Context, p domain.Place) error {
	if !p.Category.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, p.Category)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}
	if !slug.Valid(p.Slug) {
		// Allowed: admins may override the slug by hand. The QR resolver
		// escapes it, so it still travels as a single path segment.
		s.log.WarnContext(ctx, "non-canonical slug accepted",
			"category", p.Category, "slug", p.Slug, "suggested", slug.Generate(p.Slug))
	}
	return nil
}

func (s *PlaceService) releaseImages(ctx context.Context, p domain.Place, paths []string) {
	if len(paths) == 0 || s.blobs == nil {
		return
	}
	if err := s.blobs.Remove(ctx, paths); err != nil {
		s.log.WarnContext(ctx, "image cleanup failed",
			"category", p.Category, "id", p.ID, "paths", paths, "error", err)
	}
}

// storeErr wraps a repo error for the caller. Not-found and slug conflicts
// keep their meaning; anything else becomes a domain.ErrStore.
func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrSlugConflict) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
}
