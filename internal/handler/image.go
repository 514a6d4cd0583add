package handler

import (
	"errors"
	"io"
	"net/http"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temp files. The overall size is capped by the body-size middleware.
const multipartMemory = 8 << 20

// UploadImage handles POST /admin/api/{category}/images.
// It expects a multipart form with a single "file" field and responds with
// the stored path, which the admin form then sends in the record's images.
func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	c, ok := s.category(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.serviceError(w, r, err, "")
			return
		}
		requestError(w, "request must be multipart/form-data")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, header, err := r.FormFile("file")
	if err != nil {
		requestError(w, "file is required")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		requestError(w, "could not read file")
		return
	}

	path, url, err := s.images.Upload(r.Context(), c, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.serviceError(w, r, err, "image")
		return
	}
	writeJSON(w, http.StatusCreated, Image{Path: path, URL: url})
}
