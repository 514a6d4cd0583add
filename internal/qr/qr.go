// Package qr builds the public URL of a statue page and renders it as a
// scannable PNG for printed plaques.
package qr

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/munifrias/turismo/internal/domain"
)

const (
	// Size is the width and height of the rendered PNG in pixels.
	Size = 300
	// Level tolerates up to ~30% damage (dirt, glare, occlusion on outdoor plaques).
	Level = qrcode.Highest

	publicPath = "/estatuas/"
)

// Resolver turns slugs into QR images. It is stateless and safe for
// concurrent use; nothing is cached, so slug edits show up on the next request.
type Resolver struct{}

// NewResolver returns a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// componentUnescape restores the characters url.QueryEscape encodes but a
// URI component keeps literal. A "+" left by QueryEscape is always a space.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent escapes s as a URI component: everything except
// A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
func EscapeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

// CanonicalURL returns {scheme}://{host}/estatuas/{slug}. The scheme is http
// when host contains "localhost" and https otherwise. The slug is escaped with
// EscapeComponent, so it always stays a single path segment.
func CanonicalURL(slug, host string) string {
	scheme := "https"
	if strings.Contains(host, "localhost") {
		scheme = "http"
	}
	return scheme + "://" + host + publicPath + EscapeComponent(slug)
}

// Resolve renders CanonicalURL(slug, host) as a PNG.
// An empty slug fails with domain.ErrInvalidSlug before anything is rendered;
// encoder failures are wrapped in domain.ErrRender.
func (r *Resolver) Resolve(slug, host string) ([]byte, error) {
	if slug == "" {
		return nil, domain.ErrInvalidSlug
	}

	code, err := qrcode.New(CanonicalURL(slug, host), Level)
	if err != nil {
		return nil, fmt.Errorf("qr.Resolver.Resolve: %w: %w", domain.ErrRender, err)
	}
	png, err := code.PNG(Size)
	if err != nil {
		return nil, fmt.Errorf("qr.Resolver.Resolve: %w: %w", domain.ErrRender, err)
	}
	return png, nil
}
