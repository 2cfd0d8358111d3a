// Package llm wraps the hosted generation APIs behind one Client interface
// so the request path can swap between Gemini, OpenAI and a deterministic
// stub by configuration.
package llm

import (
	"context"
	"iter"

	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

// Client generates answers from an assembled conversation. The conversation
// must end in a user turn.
type Client interface {
	// Generate returns the full answer text.
	Generate(ctx context.Context, contents []*genai.Content) (string, error)

	// GenerateStream yields answer text chunks in generation order. The
	// sequence is finite and not restartable; an upstream failure is
	// surfaced as a terminal error value.
	GenerateStream(ctx context.Context, contents []*genai.Content) iter.Seq2[string, error]
}

// Options are the recognized generation parameters, shared by all providers.
type Options struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32

	// SafetyThreshold is applied to every harm category.
	SafetyThreshold genai.HarmBlockThreshold
}

// responseText extracts the answer text from a generation response with a
// fixed priority order: joined text parts of the first candidate, then the
// SDK-level text accessor. An empty result is an error, never a partial
// payload.
func responseText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil {
		return "", &domain.GenerationError{Message: "model returned no response"}
	}
	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		text := ""
		for _, part := range res.Candidates[0].Content.Parts {
			if part != nil {
				text += part.Text
			}
		}
		if text != "" {
			return text, nil
		}
	}
	if text := res.Text(); text != "" {
		return text, nil
	}
	return "", &domain.GenerationError{Message: "model returned no text candidates"}
}
