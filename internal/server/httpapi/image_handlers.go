package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/server/httpapi/errcode"
)

// GetImage serves the raw bytes of a stored image.
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		WriteError(w, r, errcode.InvalidFormat)
		return
	}

	data, contentType, err := h.images.Open(r.Context(), filename)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			WriteError(w, r, errcode.FileNotFound)
			return
		}
		h.logger.Error(r.Context(), "image read failed", "file", filename, "error", err.Error())
		WriteError(w, r, errcode.InternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DeleteImage removes a stored image, best effort.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		WriteError(w, r, errcode.InvalidFormat)
		return
	}

	h.images.Delete(r.Context(), filename)
	WriteSuccess(w, http.StatusOK, "file deleted", nil)
}
