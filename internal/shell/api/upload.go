package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/artpar/portfolio/internal/shell/imagehost"
)

// =============================================================================
// Upload Handler
// =============================================================================

// handleUpload streams the multipart "file" part to the image host and
// returns the stored image URL. The file is never buffered in full.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "expected a multipart/form-data body", "validation_error")
		return
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			h.writeError(w, http.StatusBadRequest, "no file provided", "validation_error")
			return
		}
		if err != nil {
			h.writeUploadReadError(w, err)
			return
		}
		if part.FormName() != "file" {
			part.Close()
			continue
		}

		if part.FileName() == "" {
			h.writeError(w, http.StatusBadRequest, "file part has no filename", "validation_error")
			return
		}
		if ct := part.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
			h.writeError(w, http.StatusBadRequest, "file must be an image", "validation_error")
			return
		}

		upload, err := h.uploader.Upload(r.Context(), part.FileName(), part)
		if err != nil {
			h.writeUploadError(w, err)
			return
		}

		h.metrics.observeUpload("ok")
		h.logger.Info("image uploaded", "url", upload.URL, "bytes", upload.Bytes)
		h.writeJSON(w, http.StatusCreated, upload)
		return
	}
}

func (h *Handler) writeUploadReadError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.writeError(w, http.StatusRequestEntityTooLarge, "file too large", "payload_too_large")
		return
	}
	h.writeError(w, http.StatusBadRequest, "malformed multipart body", "validation_error")
}

func (h *Handler) writeUploadError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		h.metrics.observeUpload("rejected")
		h.writeError(w, http.StatusRequestEntityTooLarge, "file too large", "payload_too_large")
	case errors.Is(err, imagehost.ErrNotConfigured):
		h.metrics.observeUpload("unavailable")
		h.writeError(w, http.StatusServiceUnavailable, err.Error(), "upload_unavailable")
	default:
		h.metrics.observeUpload("failed")
		h.logger.Error("image upload failed", "error", err)
		h.writeError(w, http.StatusBadGateway, err.Error(), "upload_failed")
	}
}
