// Package httputil holds the JSON response helpers shared by all handlers.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

// RespondJSON writes data as a JSON response with the given status code. The
// payload is marshalled before headers are sent so an encoding failure never
// produces a partial body.
func RespondJSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "httputil: encoding response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// RespondError maps err to its wire shape. Client errors (4xx) are reported
// as {"error": ...} matching the service's original contract; everything
// else is a 500 {"status": "error", "error": ...} with the message
// preserved.
func RespondError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.StatusCode()
	}
	if status < http.StatusInternalServerError {
		RespondJSON(ctx, w, status, map[string]any{"error": err.Error()})
		return
	}
	slog.ErrorContext(ctx, "httputil: request failed", "error", err)
	RespondJSON(ctx, w, status, map[string]any{"status": "error", "error": err.Error()})
}
