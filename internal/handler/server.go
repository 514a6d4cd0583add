// Package handler implements the HTTP handlers for the tourism portal API.
// All handlers are methods on Server. They are split into files per area
// (health.go, qr.go, place.go, image.go) and share the same dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/munifrias/turismo/internal/domain"
)

// PlaceServicer defines the record operations the handlers depend on.
type PlaceServicer interface {
	Create(ctx context.Context, p domain.Place) (domain.Place, error)
	GetByID(ctx context.Context, c domain.Category, id uuid.UUID) (domain.Place, error)
	GetBySlug(ctx context.Context, c domain.Category, slug string) (domain.Place, error)
	List(ctx context.Context, c domain.Category, params domain.PaginationParams) ([]domain.Place, int64, error)
	Update(ctx context.Context, p domain.Place) (domain.Place, error)
	Delete(ctx context.Context, c domain.Category, id uuid.UUID) error
}

// ImageUploader stores an uploaded image and returns its path and public URL.
type ImageUploader interface {
	Upload(ctx context.Context, c domain.Category, filename, contentType string, data []byte) (string, string, error)
}

// QRResolver renders the QR code of a statue page.
type QRResolver interface {
	Resolve(slug, host string) ([]byte, error)
}

// Linker turns stored image paths into public URLs.
type Linker interface {
	PublicURL(path string) string
}

// Server holds the dependencies shared by every handler.
type Server struct {
	places PlaceServicer
	images ImageUploader
	qr     QRResolver
	links  Linker
	log    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(places PlaceServicer, images ImageUploader, qr QRResolver, links Linker, log *slog.Logger) *Server {
	return &Server{places: places, images: images, qr: qr, links: links, log: log}
}

// Routes returns the API router. admin wraps every /admin/api route; in
// production it is middleware.RequireSession.
func (s *Server) Routes(admin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/qr", s.GetQR)
		r.Get("/qr/", s.GetQR)
		r.Get("/qr/{slug}", s.GetQR)
		r.Get("/slug", s.GetSlug)

		r.Get("/{category}", s.ListPlaces)
		r.Get("/{category}/{slug}", s.GetPlaceBySlug)
	})

	r.Route("/admin/api/{category}", func(r chi.Router) {
		r.Use(admin)
		r.Post("/", s.CreatePlace)
		r.Post("/images", s.UploadImage)
		r.Get("/{id}", s.GetPlace)
		r.Put("/{id}", s.UpdatePlace)
		r.Delete("/{id}", s.DeletePlace)
	})

	return r
}
