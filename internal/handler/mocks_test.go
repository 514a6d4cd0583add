package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/munifrias/turismo/internal/domain"
	"github.com/munifrias/turismo/internal/handler"
)

// ---- mock PlaceServicer ----------------------------------------------------

// mockPlaceServicer is a test double for handler.PlaceServicer.
// Set only the method fields your test needs.
type mockPlaceServicer struct {
	create    func(ctx context.Context, p domain.Place) (domain.Place, error)
	getByID   func(ctx context.Context, c domain.Category, id uuid.UUID) (domain.Place, error)
	getBySlug func(ctx context.Context, c domain.Category, slug string) (domain.Place, error)
	list      func(ctx context.Context, c domain.Category, params domain.PaginationParams) ([]domain.Place, int64, error)
	update    func(ctx context.Context, p domain.Place) (domain.Place, error)
	delete    func(ctx context.Context, c domain.Category, id uuid.UUID) error
}

func (m *mockPlaceServicer) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.create(ctx, p)
}
func (m *mockPlaceServicer) GetByID(ctx context.Context, c domain.Category, id uuid.UUID) (domain.Place, error) {
	return m.getByID(ctx, c, id)
}
func (m *mockPlaceServicer) GetBySlug(ctx context.Context, c domain.Category, slug string) (domain.Place, error) {
	return m.getBySlug(ctx, c, slug)
}
func (m *mockPlaceServicer) List(ctx context.Context, c domain.Category, params domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.list(ctx, c, params)
}
func (m *mockPlaceServicer) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.update(ctx, p)
}
func (m *mockPlaceServicer) Delete(ctx context.Context, c domain.Category, id uuid.UUID) error {
	return m.delete(ctx, c, id)
}

var _ handler.PlaceServicer = (*mockPlaceServicer)(nil)

// ---- other doubles ---------------------------------------------------------

type mockImageUploader struct {
	upload func(ctx context.Context, c domain.Category, filename, contentType string, data []byte) (string, string, error)
}

func (m *mockImageUploader) Upload(ctx context.Context, c domain.Category, filename, contentType string, data []byte) (string, string, error) {
	return m.upload(ctx, c, filename, contentType, data)
}

var _ handler.ImageUploader = (*mockImageUploader)(nil)

type mockQR struct {
	resolve func(slug, host string) ([]byte, error)
}

func (m *mockQR) Resolve(slug, host string) ([]byte, error) { return m.resolve(slug, host) }

var _ handler.QRResolver = (*mockQR)(nil)

type cdnLinker struct{}

func (cdnLinker) PublicURL(path string) string { return "https://cdn.example.com/" + path }

// ---- helpers ---------------------------------------------------------------

type deps struct {
	places *mockPlaceServicer
	images *mockImageUploader
	qr     handler.QRResolver
	admin  func(http.Handler) http.Handler
}

func passthrough(next http.Handler) http.Handler { return next }

// newHTTPHandler wires a Server with the given doubles into its router,
// the same way main.go does in production.
func newHTTPHandler(d deps) http.Handler {
	if d.places == nil {
		d.places = &mockPlaceServicer{}
	}
	if d.images == nil {
		d.images = &mockImageUploader{}
	}
	if d.qr == nil {
		d.qr = &mockQR{}
	}
	if d.admin == nil {
		d.admin = passthrough
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(d.places, d.images, d.qr, cdnLinker{}, log).Routes(d.admin)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
