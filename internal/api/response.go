package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"finled/internal/core"
)

// envelope is the JSON shape every endpoint responds with.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(w, statusCode, envelope{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, envelope{Status: "error", Message: message})
}

// writeServiceError maps the error taxonomy onto status codes. Validation
// and ownership errors surface their message verbatim; anything else is an
// infrastructure failure reported generically, with detail kept in the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, core.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Unexpected service error",
			"error", err,
			"request_id", RequestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// decodeBody parses the JSON request body into dst. An absent or empty body
// decodes to the zero value so field-presence validation stays in the
// service layer.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return core.InvalidInput("Invalid request body")
	}
	return nil
}
