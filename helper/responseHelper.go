package helper

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the JSON body every endpoint answers with.
type Envelope map[string]any

// WriteJSON writes payload with success set to whether status is 2xx.
func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	if payload == nil {
		payload = Envelope{}
	}
	payload["success"] = status >= 200 && status < 300

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// WriteMessage writes an envelope holding just a message.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{"message": message})
}

// WriteError maps err onto the error taxonomy. Causes are logged, never returned.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := AsAppError(err)
	status := appErr.Status()

	attrs := []any{"method", r.Method, "path", r.URL.Path, "status", status, "error", err.Error()}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", attrs...)
	} else {
		slog.WarnContext(r.Context(), "request rejected", attrs...)
	}

	WriteMessage(w, status, appErr.Message)
}
