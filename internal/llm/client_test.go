package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

func TestResponseText_JoinsCandidateParts(t *testing.T) {
	res := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role: string(genai.RoleModel),
					Parts: []*genai.Part{
						{Text: "You have "},
						{Text: "the right to..."},
					},
				},
			},
		},
	}
	text, err := responseText(res)
	if err != nil {
		t.Fatalf("responseText failed: %v", err)
	}
	if text != "You have the right to..." {
		t.Errorf("text = %q", text)
	}
}

func TestResponseText_EmptyResponse(t *testing.T) {
	for _, res := range []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	} {
		_, err := responseText(res)
		var genErr *domain.GenerationError
		if !errors.As(err, &genErr) {
			t.Errorf("responseText(%v) err = %v, want GenerationError", res, err)
		}
	}
}

func TestStubClient_StreamMatchesGenerate(t *testing.T) {
	client := &StubClient{Response: "You have the right to remain silent.", ChunkSize: 7}
	contents := []*genai.Content{genai.NewContentFromText("tenant rights?", genai.RoleUser)}

	full, err := client.Generate(context.Background(), contents)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var streamed strings.Builder
	chunks := 0
	for chunk, err := range client.GenerateStream(context.Background(), contents) {
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}
		streamed.WriteString(chunk)
		chunks++
	}

	if streamed.String() != full {
		t.Errorf("streamed = %q, generate = %q", streamed.String(), full)
	}
	if chunks < 2 {
		t.Errorf("chunks = %d, want several", chunks)
	}
}

func TestStubClient_StreamSurfacesError(t *testing.T) {
	wantErr := &domain.GenerationError{Message: "quota exceeded"}
	client := &StubClient{Err: wantErr}

	var got error
	for _, err := range client.GenerateStream(context.Background(), []*genai.Content{genai.NewContentFromText("q", genai.RoleUser)}) {
		got = err
	}
	if !errors.Is(got, wantErr) {
		t.Errorf("stream error = %v, want %v", got, wantErr)
	}
}
