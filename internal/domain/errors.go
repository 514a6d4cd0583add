package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist in its category.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, empty slug, non-image upload).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrSlugConflict is returned when another record of the same category
// already holds the requested slug. It is produced both by the pre-write
// guard and by the unique constraint on the slug column.
// Handlers should map this to HTTP 409 Conflict.
var ErrSlugConflict = errors.New("a record with this slug already exists")

// ErrStore wraps failures of the record store or blob store
// (connectivity, unexpected constraint violations). Callers should show a
// "try again" message rather than ask the user to change their input.
var ErrStore = errors.New("store error")

// ErrUnknownCategory is returned by ParseCategory for names outside the
// fixed category set.
var ErrUnknownCategory = errors.New("unknown category")

// ErrInvalidSlug is returned by the QR resolver when the slug is empty.
// Handlers should map this to HTTP 400.
var ErrInvalidSlug = errors.New("slug is required")

// ErrRender is returned by the QR resolver when the PNG cannot be produced.
var ErrRender = errors.New("could not render QR code")
