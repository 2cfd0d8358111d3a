package llm

import (
	"context"
	"iter"
	"strings"

	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

// DefaultStubResponse is returned by a zero-value StubClient.
const DefaultStubResponse = "This is a stubbed response from the legal assistant. " +
	"Configure a real model provider to receive generated answers."

// StubClient is a deterministic Client for tests and credential-less
// development. It is selected explicitly through configuration, never by
// sniffing for absent credentials.
type StubClient struct {
	// Response overrides DefaultStubResponse when non-empty.
	Response string

	// Err, when set, is returned from every call.
	Err error

	// ChunkSize controls how the response is split when streaming.
	// Defaults to 8 bytes.
	ChunkSize int
}

// Generate implements Client.
func (c *StubClient) Generate(_ context.Context, contents []*genai.Content) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	if len(contents) == 0 {
		return "", &domain.GenerationError{Message: "empty conversation"}
	}
	return c.response(), nil
}

// GenerateStream implements Client. The concatenation of the yielded chunks
// equals the Generate output for the same input.
func (c *StubClient) GenerateStream(ctx context.Context, contents []*genai.Content) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		text, err := c.Generate(ctx, contents)
		if err != nil {
			yield("", err)
			return
		}
		size := c.ChunkSize
		if size <= 0 {
			size = 8
		}
		for text != "" {
			chunk := text
			if len(chunk) > size {
				chunk = chunk[:size]
			}
			text = strings.TrimPrefix(text, chunk)
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

func (c *StubClient) response() string {
	if c.Response != "" {
		return c.Response
	}
	return DefaultStubResponse
}
