// Package chathistory retrieves persisted chats for a user.
package chathistory

import (
	"context"
	"net/http"

	"github.com/Litigence-AI/legal-assistant-api/internal/chatdb"
	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
	"github.com/Litigence-AI/legal-assistant-api/internal/httputil"
)

// ChatReader reads persisted chats.
type ChatReader interface {
	Get(ctx context.Context, userID, chatKey string) (*chatdb.ChatRecord, error)
	All(ctx context.Context, userID string) ([]chatdb.ChatRecord, error)
}

// NewHandler returns a Handler.
func NewHandler(store ChatReader) *Handler {
	return &Handler{store: store}
}

// Handler serves GET /chat_history.
type Handler struct {
	store ChatReader
}

// ChatHistory returns one chat when chat_title is given, otherwise every
// chat for the user.
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		httputil.RespondError(ctx, w, &domain.ValidationError{Message: "user_id is required"})
		return
	}

	if chatKey := r.URL.Query().Get("chat_title"); chatKey != "" {
		chat, err := h.store.Get(ctx, userID, chatKey)
		if err != nil {
			httputil.RespondError(ctx, w, err)
			return
		}
		httputil.RespondJSON(ctx, w, http.StatusOK, map[string]any{
			"status": "success",
			"chat":   chat,
		})
		return
	}

	chats, err := h.store.All(ctx, userID)
	if err != nil {
		httputil.RespondError(ctx, w, err)
		return
	}
	httputil.RespondJSON(ctx, w, http.StatusOK, map[string]any{
		"status": "success",
		"chats":  chats,
	})
}
