package service

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/munifrias/turismo/internal/blob"
	"github.com/munifrias/turismo/internal/domain"
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

// ImageService uploads images to the blob store under a per-category prefix.
// Uploads happen before the record write that references them; if that write
// then fails the object stays orphaned.
type ImageService struct {
	blobs blob.Store
	newID func() uuid.UUID
}

// NewImageService constructs an ImageService writing to blobs.
func NewImageService(blobs blob.Store) *ImageService {
	return &ImageService{blobs: blobs, newID: uuid.New}
}

// Upload stores data as {category}/{uuid}{ext} and returns the path and its
// public URL. The extension is taken from filename, lower-cased. When
// contentType is empty it is sniffed from data; only image types are accepted.
func (s *ImageService) Upload(ctx context.Context, c domain.Category, filename, contentType string, data []byte) (string, string, error) {
	if !c.Valid() {
		return "", "", fmt.Errorf("service.ImageService.Upload: %w: %q", domain.ErrUnknownCategory, c)
	}
	if len(data) == 0 {
		return "", "", fmt.Errorf("service.ImageService.Upload: %w: file is empty", domain.ErrValidation)
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("service.ImageService.Upload: %w: %s is not an image", domain.ErrValidation, contentType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	path := c.String() + "/" + s.newID().String() + ext

	if err := s.blobs.Upload(ctx, path, contentType, data); err != nil {
		return "", "", fmt.Errorf("service.ImageService.Upload: %w: %w", domain.ErrStore, err)
	}
	return path, s.blobs.PublicURL(path), nil
}
