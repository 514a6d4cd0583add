package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/munifrias/turismo/internal/qr"
	"github.com/munifrias/turismo/internal/slug"
)

// GetQR handles GET /api/qr/{slug}.
// The code encodes the public statue URL on the host the request came in on.
// Responses are never cached so a slug edit is reflected immediately.
func (s *Server) GetQR(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(r, "slug")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_slug", "slug is not a valid path segment")
		return
	}

	png, err := s.qr.Resolve(name, r.Host)
	if err != nil {
		s.serviceError(w, r, err, "statue")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="`+qr.EscapeComponent(name)+`-qr.png"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// GetSlug handles GET /api/slug?text=.
// It previews the slug the admin form will propose for a name.
func (s *Server) GetSlug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"slug": slug.Generate(r.URL.Query().Get("text"))})
}

// pathParam returns a decoded chi URL parameter. chi matches on the raw
// path when the request carries escaped characters, so the value is only
// unescaped in that case. A missing parameter yields "".
func pathParam(r *http.Request, key string) (string, bool) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, true
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", false
	}
	return decoded, true
}
