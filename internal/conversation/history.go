package conversation

import (
	"sync"

	"google.golang.org/genai"
)

// maxRetainedTurns caps the turns kept per conversation so a long-lived
// process does not grow without bound. Assemble applies the much smaller
// per-request context window on top.
const maxRetainedTurns = 50

// History holds transient conversation context keyed by conversation. Each
// key is mutated under its own lock so concurrent requests for different
// conversations never cross-talk and appends for one conversation are
// serialized.
type History struct {
	mu      sync.Mutex
	entries map[string]*historyEntry
}

type historyEntry struct {
	mu    sync.Mutex
	turns []*genai.Content
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{entries: map[string]*historyEntry{}}
}

// Key derives the history key for a conversation. Both parts are required;
// anonymous requests have no key and carry no transient context.
func Key(userID, chatID string) string {
	if userID == "" || chatID == "" {
		return ""
	}
	return userID + "/" + chatID
}

func (h *History) entry(key string) *historyEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.entries[key]
	if !ok {
		e = &historyEntry{}
		h.entries[key] = e
	}
	return e
}

// Turns returns a copy of the retained turns for key, oldest first. An empty
// key has no history.
func (h *History) Turns(key string) []*genai.Content {
	if key == "" {
		return nil
	}
	e := h.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	turns := make([]*genai.Content, len(e.turns))
	copy(turns, e.turns)
	return turns
}

// Append records turns for key. Appends to the same key are serialized; an
// empty key is dropped.
func (h *History) Append(key string, turns ...*genai.Content) {
	if key == "" || len(turns) == 0 {
		return
	}
	e := h.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.turns = append(e.turns, turns...)
	if len(e.turns) > maxRetainedTurns {
		e.turns = e.turns[len(e.turns)-maxRetainedTurns:]
	}
}
