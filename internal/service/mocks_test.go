package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/munifrias/turismo/internal/blob"
	"github.com/munifrias/turismo/internal/domain"
	"github.com/munifrias/turismo/internal/repo"
)

// ---- mock PlaceRepo --------------------------------------------------------

// mockPlaceRepo is a hand-written test double: set only the function fields
// a test needs.
type mockPlaceRepo struct {
	create    func(ctx context.Context, p domain.Place) (domain.Place, error)
	getByID   func(ctx context.Context, c domain.Category, id uuid.UUID) (domain.Place, error)
	getBySlug func(ctx context.Context, c domain.Category, slug string) (domain.Place, error)
	listPaged func(ctx context.Context, c domain.Category, p domain.PaginationParams) ([]domain.Place, int64, error)
	update    func(ctx context.Context, p domain.Place) (domain.Place, error)
	delete    func(ctx context.Context, c domain.Category, id uuid.UUID) error
	slugTaken func(ctx context.Context, c domain.Category, slug string, excluding *uuid.UUID) (bool, error)
}

func (m *mockPlaceRepo) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.create(ctx, p)
}
func (m *mockPlaceRepo) GetByID(ctx context.Context, c domain.Category, id uuid.UUID) (domain.Place, error) {
	return m.getByID(ctx, c, id)
}
func (m *mockPlaceRepo) GetBySlug(ctx context.Context, c domain.Category, slug string) (domain.Place, error) {
	return m.getBySlug(ctx, c, slug)
}
func (m *mockPlaceRepo) ListPaged(ctx context.Context, c domain.Category, p domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.listPaged(ctx, c, p)
}
func (m *mockPlaceRepo) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.update(ctx, p)
}
func (m *mockPlaceRepo) Delete(ctx context.Context, c domain.Category, id uuid.UUID) error {
	return m.delete(ctx, c, id)
}
func (m *mockPlaceRepo) SlugTaken(ctx context.Context, c domain.Category, slug string, excluding *uuid.UUID) (bool, error) {
	return m.slugTaken(ctx, c, slug, excluding)
}

// compile-time check
var _ repo.PlaceRepo = (*mockPlaceRepo)(nil)

// ---- fake in-memory record store -------------------------------------------

type key struct {
	c    domain.Category
	slug string
}

// memPlaces is a tiny in-memory PlaceRepo keyed by (category, slug), used to
// exercise the guard against a realistic store.
type memPlaces struct {
	rows map[key]domain.Place
}

func newMemPlaces(existing ...domain.Place) *mockPlaceRepo {
	m := &memPlaces{rows: map[key]domain.Place{}}
	for _, p := range existing {
		m.rows[key{p.Category, p.Slug}] = p
	}
	return &mockPlaceRepo{
		slugTaken: func(_ context.Context, c domain.Category, slug string, excluding *uuid.UUID) (bool, error) {
			p, ok := m.rows[key{c, slug}]
			if !ok {
				return false, nil
			}
			return excluding == nil || *excluding != p.ID, nil
		},
		create: func(_ context.Context, p domain.Place) (domain.Place, error) {
			p.ID = uuid.New()
			m.rows[key{p.Category, p.Slug}] = p
			return p, nil
		},
	}
}

// ---- mock blob.Store -------------------------------------------------------

type mockBlobs struct {
	upload func(ctx context.Context, path, contentType string, data []byte) error
	remove func(ctx context.Context, paths []string) error
}

func (m *mockBlobs) Upload(ctx context.Context, path, contentType string, data []byte) error {
	return m.upload(ctx, path, contentType, data)
}
func (m *mockBlobs) PublicURL(path string) string {
	return "https://cdn.example.com/" + path
}
func (m *mockBlobs) Remove(ctx context.Context, paths []string) error {
	return m.remove(ctx, paths)
}

var _ blob.Store = (*mockBlobs)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
