// Package domain contains the core data types for the tourism portal.
// It is imported by every other internal package (repo, service, handler)
// and depends only on uuid.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Place is a point of interest: a statue, hotel, restaurant, artist,
// recreation site, transport company or tourist attraction.
//
// ID is the internal identity assigned by the database and used by the admin
// back office. Slug is the public identity used in URLs and QR codes; it is
// unique within Category and may diverge from Name after creation.
type Place struct {
	ID          uuid.UUID
	Category    Category
	Name        string
	Slug        string
	Description string

	// Attributes holds the category-specific payload (address, phone,
	// coordinates, social links, opening hours...). It is stored as-is.
	Attributes map[string]any

	// Images are blob-store paths. The first entry is the main image,
	// any others form the gallery.
	Images []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
