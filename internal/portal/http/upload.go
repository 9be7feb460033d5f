package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/parkmoor/clubhouse/internal/portal/service"
	"github.com/parkmoor/clubhouse/pkg/httpx"
)

// UploadHandler accepts a multipart file upload into the caller's
// private storage prefix.
type UploadHandler struct {
	ArtifactService *service.ArtifactService
	Logger          *slog.Logger
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := httpx.UsernameFromContext(r.Context())
	maxBytes := h.ArtifactService.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = service.DefaultMaxUploadBytes
	}

	// Cap the request body before multipart parsing touches it. The
	// extra headroom covers the multipart framing around the file.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	_, err = h.ArtifactService.Upload(r.Context(), username, header.Filename,
		file, header.Size, header.Header.Get("Content-Type"))
	switch {
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrStoreUnavailable):
		h.Logger.Error("upload failed", "username", username, "file", header.Filename, "err", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	case err != nil:
		h.Logger.Error("upload failed", "username", username, "file", header.Filename, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
