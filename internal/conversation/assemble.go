// Package conversation builds the ordered turn sequence sent to the model
// and keeps the transient per-conversation context between requests.
package conversation

import (
	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

// DefaultMaxContextTurns bounds the prior history included in a model call,
// trading context completeness for bounded request size and cost.
const DefaultMaxContextTurns = 10

// Assemble returns the ordered conversation for a model call: the most
// recent maxTurns turns of history followed by one new user turn holding
// parts. It does not mutate history.
func Assemble(history []*genai.Content, parts []*genai.Part, maxTurns int) ([]*genai.Content, error) {
	if len(parts) == 0 {
		return nil, &domain.ValidationError{Message: "question or media input is required"}
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxContextTurns
	}
	if len(history) > maxTurns {
		history = history[len(history)-maxTurns:]
	}
	contents := make([]*genai.Content, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	return contents, nil
}
