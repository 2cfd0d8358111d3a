// Package chattitles lists a user's chats for the history drawer.
package chattitles

import (
	"context"
	"net/http"

	"github.com/Litigence-AI/legal-assistant-api/internal/chatdb"
	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
	"github.com/Litigence-AI/legal-assistant-api/internal/httputil"
)

// ChatLister lists persisted chat summaries.
type ChatLister interface {
	List(ctx context.Context, userID string) ([]chatdb.ChatSummary, error)
}

// NewHandler returns a Handler.
func NewHandler(store ChatLister) *Handler {
	return &Handler{store: store}
}

// Handler serves GET /chat_titles.
type Handler struct {
	store ChatLister
}

// ChatTitles returns the user's chat summaries, most recently updated first.
func (h *Handler) ChatTitles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		httputil.RespondError(ctx, w, &domain.ValidationError{Message: "user_id is required"})
		return
	}

	summaries, err := h.store.List(ctx, userID)
	if err != nil {
		httputil.RespondError(ctx, w, err)
		return
	}
	httputil.RespondJSON(ctx, w, http.StatusOK, map[string]any{
		"status":      "success",
		"chat_titles": summaries,
	})
}
