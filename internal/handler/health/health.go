// Package health implements the service health check.
package health

import (
	"net/http"

	"github.com/Litigence-AI/legal-assistant-api/internal/httputil"
)

// ServiceName identifies this service in the health payload.
const ServiceName = "legal-assistant-api"

// Check handles GET /.
func Check(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(r.Context(), w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": ServiceName,
	})
}
