// Package ask implements the question-answering endpoints: POST /ask and
// POST /ask_stream. Per-request flow: validate, decode media, assemble the
// conversation, invoke the model, persist the exchange, shape the response.
package ask

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/archive"
	"github.com/Litigence-AI/legal-assistant-api/internal/chatdb"
	"github.com/Litigence-AI/legal-assistant-api/internal/conversation"
	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
	"github.com/Litigence-AI/legal-assistant-api/internal/httputil"
	"github.com/Litigence-AI/legal-assistant-api/internal/llm"
)

// ChatStore persists completed exchanges.
type ChatStore interface {
	AppendExchange(ctx context.Context, userID, chatKey, userMessage, aiMessage string) (chatdb.AppendResult, error)
}

// NewHandler returns a Handler. The archiver may be nil to disable
// attachment archiving.
func NewHandler(client llm.Client, store ChatStore, history *conversation.History, archiver *archive.Archiver, contextTurns int) *Handler {
	if contextTurns <= 0 {
		contextTurns = conversation.DefaultMaxContextTurns
	}
	return &Handler{
		llm:          client,
		store:        store,
		history:      history,
		archiver:     archiver,
		contextTurns: contextTurns,
	}
}

// Handler orchestrates ask requests.
type Handler struct {
	llm          llm.Client
	store        ChatStore
	history      *conversation.History
	archiver     *archive.Archiver
	contextTurns int
}

// exchange is the per-request state shared by the sync and streaming paths
// up to the model call.
type exchange struct {
	req      askRequest
	parts    []*genai.Part
	blobs    []blob
	title    string
	key      string
	contents []*genai.Content
}

// prepare runs the validate, decode and assemble states.
func (h *Handler) prepare(r *http.Request) (*exchange, error) {
	if !isJSONRequest(r) {
		return nil, &domain.ValidationError{Message: "Content-Type must be application/json"}
	}
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &domain.ValidationError{Message: "invalid JSON body: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parts, blobs, err := decodeAttachments(r.Context(), req)
	if err != nil {
		return nil, err
	}

	title := req.ChatTitle
	if title == "" {
		title = chatdb.DeriveTitle(req.Question)
	}
	key := conversation.Key(req.UserID, title)

	contents, err := conversation.Assemble(h.history.Turns(key), parts, h.contextTurns)
	if err != nil {
		return nil, err
	}
	return &exchange{
		req:      req,
		parts:    parts,
		blobs:    blobs,
		title:    title,
		key:      key,
		contents: contents,
	}, nil
}

// Ask handles POST /ask.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ex, err := h.prepare(r)
	if err != nil {
		httputil.RespondError(ctx, w, err)
		return
	}

	answer, err := h.llm.Generate(ctx, ex.contents)
	if err != nil {
		httputil.RespondError(ctx, w, err)
		return
	}

	saved := h.commit(ctx, ex, answer)

	httputil.RespondJSON(ctx, w, http.StatusOK, map[string]any{
		"status":     "success",
		"response":   answer,
		"chat_saved": saved,
		"chat_title": ex.title,
	})
}

// commit records a completed exchange: best-effort persistence and archive,
// then the transient history append. Persistence failure never blocks the
// answer; it only reports chat_saved false.
func (h *Handler) commit(ctx context.Context, ex *exchange, answer string) bool {
	saved := false
	if ex.req.UserID != "" {
		result, err := h.store.AppendExchange(ctx, ex.req.UserID, ex.title, ex.req.Question, answer)
		if err != nil {
			slog.ErrorContext(ctx, "ask: saving chat exchange",
				"user_id", ex.req.UserID, "chat_title", ex.title, "error", err)
		} else {
			saved = true
			ex.title = result.Title
			h.archiveBlobs(ctx, ex, result.ChatID)
		}
	}

	h.history.Append(ex.key,
		genai.NewContentFromParts(ex.parts, genai.RoleUser),
		genai.NewContentFromText(answer, genai.RoleModel),
	)
	return saved
}

func (h *Handler) archiveBlobs(ctx context.Context, ex *exchange, chatID string) {
	if h.archiver == nil {
		return
	}
	for i, b := range ex.blobs {
		if _, err := h.archiver.Save(ctx, ex.req.UserID, chatID, i, b.mimeType, b.data); err != nil {
			slog.WarnContext(ctx, "ask: archiving attachment",
				"user_id", ex.req.UserID, "chat_id", chatID, "index", i, "error", err)
		}
	}
}
