// Package sse writes the incremental wire format used by the streaming ask
// endpoint: data events carrying answer chunks, terminated by a done event.
package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrStreamingUnsupported is returned when the response writer cannot flush
// incrementally.
var ErrStreamingUnsupported = errors.New("sse: response writer does not support streaming")

// Writer emits server-sent events on an HTTP response.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter prepares w for an event stream and returns a Writer. The status
// code is committed here; once streaming has begun errors must travel in
// stream content.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	// Disable nginx buffering.
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &Writer{w: w, flusher: flusher}, nil
}

// WriteChunk emits one answer chunk.
func (w *Writer) WriteChunk(text string) error {
	return w.writeEvent(map[string]any{"chunk": text})
}

// WriteDone emits the terminal marker. The transport closes after this.
func (w *Writer) WriteDone() error {
	return w.writeEvent(map[string]any{"done": true})
}

func (w *Writer) writeEvent(data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: encoding event: %w", err)
	}
	if _, err := fmt.Fprintf(w.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("sse: writing event: %w", err)
	}
	w.flusher.Flush()
	return nil
}
