package httpapi

import "net/http"

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, "ok", nil)
}
