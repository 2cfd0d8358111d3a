package ask

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Litigence-AI/legal-assistant-api/internal/handler/sse"
	"github.com/Litigence-AI/legal-assistant-api/internal/httputil"
)

// AskStream handles POST /ask_stream. Chunks are forwarded to the client as
// they arrive and concatenated for persistence. Once streaming has begun the
// status code is committed, so a mid-stream failure travels as a final chunk
// of error text before the terminal marker.
func (h *Handler) AskStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ex, err := h.prepare(r)
	if err != nil {
		httputil.RespondError(ctx, w, err)
		return
	}

	stream, err := sse.NewWriter(w)
	if err != nil {
		httputil.RespondError(ctx, w, err)
		return
	}

	var answer strings.Builder
	for chunk, err := range h.llm.GenerateStream(ctx, ex.contents) {
		if err != nil {
			slog.ErrorContext(ctx, "ask: streaming generation failed", "error", err)
			_ = stream.WriteChunk("Error generating response: " + err.Error())
			_ = stream.WriteDone()
			return
		}
		if writeErr := stream.WriteChunk(chunk); writeErr != nil {
			// Client went away; stop pulling chunks.
			slog.WarnContext(ctx, "ask: client disconnected mid-stream", "error", writeErr)
			return
		}
		answer.WriteString(chunk)
	}

	if answer.Len() > 0 {
		h.commit(ctx, ex, answer.String())
	}
	_ = stream.WriteDone()
}
