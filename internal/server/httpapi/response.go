// Package httpapi implements the public HTTP surface: routing, envelopes,
// middleware, and request handlers.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/neogulmap/zonemap/internal/server/httpapi/errcode"
)

// SuccessResponse is the envelope wrapping every successful reply.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope wrapping every error reply. Code may be
// empty on bare authentication rejections.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// WriteSuccess writes the success envelope with the given status.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteError writes the error envelope for a defined code.
func WriteError(w http.ResponseWriter, r *http.Request, code errcode.Code) {
	WriteErrorMessage(w, r, code, code.Message)
}

// WriteErrorMessage writes the error envelope for a code with a message
// overriding the code's default.
func WriteErrorMessage(w http.ResponseWriter, r *http.Request, code errcode.Code, message string) {
	writeErrorEnvelope(w, r, code.Status, code.Code, message)
}

// WriteUnauthorized writes the bare 401 envelope used when no credentials
// were presented. It carries no error code.
func WriteUnauthorized(w http.ResponseWriter, r *http.Request) {
	writeErrorEnvelope(w, r, http.StatusUnauthorized, "", "authentication is required")
}

func writeErrorEnvelope(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Code:      code,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}
