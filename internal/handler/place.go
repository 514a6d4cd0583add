package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/munifrias/turismo/internal/domain"
	"github.com/munifrias/turismo/internal/session"
)

// PlaceRequest is the body of POST and PUT /admin/api/{category}.
// An empty slug on create is derived from the name.
type PlaceRequest struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Attributes  map[string]any `json:"attributes"`
	Images      []string       `json:"images"`
}

// Image is a stored image path and its public URL.
type Image struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Place is the JSON representation of a record.
type Place struct {
	ID          openapi_types.UUID `json:"id"`
	Category    string             `json:"category"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Attributes  map[string]any     `json:"attributes"`
	Images      []Image            `json:"images"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PlaceList is the body of GET /api/{category}.
type PlaceList struct {
	Data       []Place    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ListPlaces handles GET /api/{category}.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	c, ok := s.category(w, r)
	if !ok {
		return
	}

	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		requestError(w, "page must be an integer")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		requestError(w, "limit must be an integer")
		return
	}
	params := domain.NewPaginationParams(page, limit)

	places, total, err := s.places.List(r.Context(), c, params)
	if err != nil {
		s.serviceError(w, r, err, "record")
		return
	}

	data := make([]Place, len(places))
	for i, p := range places {
		data[i] = s.placeToResponse(p)
	}
	writeJSON(w, http.StatusOK, PlaceList{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetPlaceBySlug handles GET /api/{category}/{slug}.
func (s *Server) GetPlaceBySlug(w http.ResponseWriter, r *http.Request) {
	c, ok := s.category(w, r)
	if !ok {
		return
	}
	name, ok := pathParam(r, "slug")
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "record not found")
		return
	}

	p, err := s.places.GetBySlug(r.Context(), c, name)
	if err != nil {
		s.serviceError(w, r, err, "record")
		return
	}
	writeJSON(w, http.StatusOK, s.placeToResponse(p))
}

// CreatePlace handles POST /admin/api/{category}.
func (s *Server) CreatePlace(w http.ResponseWriter, r *http.Request) {
	c, ok := s.category(w, r)
	if !ok {
		return
	}
	body, err := decodePlace(r)
	if err != nil {
		s.bodyError(w, r, err)
		return
	}

	created, err := s.places.Create(r.Context(), requestToPlace(c, body))
	if err != nil {
		s.serviceError(w, r, err, "record")
		return
	}
	s.audit(r, "record created", created)
	writeJSON(w, http.StatusCreated, s.placeToResponse(created))
}

// GetPlace handles GET /admin/api/{category}/{id}.
func (s *Server) GetPlace(w http.ResponseWriter, r *http.Request) {
	c, id, ok := s.categoryAndID(w, r)
	if !ok {
		return
	}

	p, err := s.places.GetByID(r.Context(), c, id)
	if err != nil {
		s.serviceError(w, r, err, "record")
		return
	}
	writeJSON(w, http.StatusOK, s.placeToResponse(p))
}

// UpdatePlace handles PUT /admin/api/{category}/{id}.
func (s *Server) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	c, id, ok := s.categoryAndID(w, r)
	if !ok {
		return
	}
	body, err := decodePlace(r)
	if err != nil {
		s.bodyError(w, r, err)
		return
	}

	p := requestToPlace(c, body)
	p.ID = id
	updated, err := s.places.Update(r.Context(), p)
	if err != nil {
		s.serviceError(w, r, err, "record")
		return
	}
	s.audit(r, "record updated", updated)
	writeJSON(w, http.StatusOK, s.placeToResponse(updated))
}

// DeletePlace handles DELETE /admin/api/{category}/{id}.
func (s *Server) DeletePlace(w http.ResponseWriter, r *http.Request) {
	c, id, ok := s.categoryAndID(w, r)
	if !ok {
		return
	}

	if err := s.places.Delete(r.Context(), c, id); err != nil {
		s.serviceError(w, r, err, "record")
		return
	}
	s.audit(r, "record deleted", domain.Place{ID: id, Category: c})
	w.WriteHeader(http.StatusNoContent)
}

// --- request helpers --------------------------------------------------------

// category parses the {category} path parameter, writing a 404 for names
// outside the fixed set.
func (s *Server) category(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	c, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.serviceError(w, r, err, "category")
		return "", false
	}
	return c, true
}

func (s *Server) categoryAndID(w http.ResponseWriter, r *http.Request) (domain.Category, openapi_types.UUID, bool) {
	c, ok := s.category(w, r)
	if !ok {
		return "", openapi_types.UUID{}, false
	}
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be a UUID")
		return "", openapi_types.UUID{}, false
	}
	return c, id, true
}

var errNoBody = errors.New("request body is required")

func decodePlace(r *http.Request) (PlaceRequest, error) {
	var body PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return PlaceRequest{}, errNoBody
		}
		return PlaceRequest{}, err
	}
	return body, nil
}

func (s *Server) bodyError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		s.serviceError(w, r, err, "")
	case errors.Is(err, errNoBody):
		requestError(w, err.Error())
	default:
		requestError(w, "request body must be a JSON object")
	}
}

// audit logs an admin write with the acting user.
func (s *Server) audit(r *http.Request, msg string, p domain.Place) {
	user := ""
	if sess, ok := session.FromContext(r.Context()); ok {
		user = sess.UserID
	}
	s.log.InfoContext(r.Context(), msg, "category", p.Category, "id", p.ID, "slug", p.Slug, "user", user)
}

// --- mapping helpers --------------------------------------------------------

func requestToPlace(c domain.Category, body PlaceRequest) domain.Place {
	return domain.Place{
		Category:    c,
		Name:        body.Name,
		Slug:        body.Slug,
		Description: body.Description,
		Attributes:  body.Attributes,
		Images:      body.Images,
	}
}

func (s *Server) placeToResponse(p domain.Place) Place {
	images := make([]Image, len(p.Images))
	for i, path := range p.Images {
		images[i] = Image{Path: path, URL: s.links.PublicURL(path)}
	}
	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	return Place{
		ID:          p.ID,
		Category:    p.Category.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Attributes:  attrs,
		Images:      images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
