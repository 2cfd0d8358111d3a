package ask

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
	"github.com/Litigence-AI/legal-assistant-api/internal/llm"
)

type sseEvent struct {
	Chunk string `json:"chunk"`
	Done  bool   `json:"done"`
}

func parseEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		payload, ok := strings.CutPrefix(block, "data: ")
		if !ok {
			t.Fatalf("malformed event block %q", block)
		}
		var event sseEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			t.Fatalf("decoding event %q: %v", payload, err)
		}
		events = append(events, event)
	}
	return events
}

func postStream(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ask_stream", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.AskStream(w, req)
	return w
}

func TestAskStream_ChunksThenDone(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(&llm.StubClient{Response: "You have the right to...", ChunkSize: 5}, store)

	w := postStream(t, h, `{"question": "What are my tenant rights?", "user_id": "user-1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q, want text/event-stream", ct)
	}

	events := parseEvents(t, w.Body.String())
	if len(events) < 3 {
		t.Fatalf("events = %d, want several chunks plus done", len(events))
	}
	last := events[len(events)-1]
	if !last.Done {
		t.Errorf("last event = %+v, want done marker", last)
	}

	var answer strings.Builder
	for _, event := range events[:len(events)-1] {
		answer.WriteString(event.Chunk)
	}
	if answer.String() != "You have the right to..." {
		t.Errorf("concatenated chunks = %q", answer.String())
	}

	// The full concatenated answer is what gets persisted.
	if len(store.calls) != 1 || store.calls[0].aiMsg != "You have the right to..." {
		t.Errorf("store calls = %+v", store.calls)
	}
}

func TestAskStream_ValidationFailsBeforeStreaming(t *testing.T) {
	h := newTestHandler(&llm.StubClient{}, &fakeStore{})

	w := postStream(t, h, `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 before stream commits", w.Code)
	}
}

func TestAskStream_UpstreamErrorEmittedInStream(t *testing.T) {
	client := &llm.StubClient{Err: &domain.GenerationError{Message: "quota exceeded"}}
	store := &fakeStore{}
	h := newTestHandler(client, store)

	w := postStream(t, h, `{"question": "q", "user_id": "user-1"}`)

	// The stream has already committed to 200; the failure travels as
	// content.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	events := parseEvents(t, w.Body.String())
	if len(events) != 2 {
		t.Fatalf("events = %+v, want error chunk plus done", events)
	}
	if !strings.Contains(events[0].Chunk, "quota exceeded") {
		t.Errorf("error chunk = %q", events[0].Chunk)
	}
	if !events[1].Done {
		t.Errorf("missing terminal done marker: %+v", events[1])
	}
	if len(store.calls) != 0 {
		t.Errorf("failed generation must not be persisted, calls = %+v", store.calls)
	}
}
