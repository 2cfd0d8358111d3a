package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &domain.ValidationError{Message: "bad input"}, http.StatusBadRequest},
		{"decode", &domain.DecodeError{Message: "bad image"}, http.StatusBadRequest},
		{"not found", &domain.NotFoundError{Message: "missing"}, http.StatusNotFound},
		{"generation", &domain.GenerationError{Message: "upstream"}, http.StatusInternalServerError},
		{"authentication", &domain.AuthenticationError{Message: "no creds"}, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("handling request: %w", &domain.ValidationError{Message: "bad"}), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondError(context.Background(), w, tc.err)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("body %q not JSON: %v", w.Body.String(), err)
			}
			if _, ok := body["error"]; !ok {
				t.Errorf("body %v missing error field", body)
			}
			if tc.wantStatus >= http.StatusInternalServerError && body["status"] != "error" {
				t.Errorf("5xx body %v missing status=error", body)
			}
		})
	}
}
