package conversation

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

func userTurn(text string) *genai.Content {
	return genai.NewContentFromText(text, genai.RoleUser)
}

func modelTurn(text string) *genai.Content {
	return genai.NewContentFromText(text, genai.RoleModel)
}

func TestAssemble_AppendsNewUserTurn(t *testing.T) {
	history := []*genai.Content{userTurn("q1"), modelTurn("a1")}
	parts := []*genai.Part{genai.NewPartFromText("q2")}

	contents, err := Assemble(history, parts, 10)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(contents) != 3 {
		t.Fatalf("len(contents) = %d, want 3", len(contents))
	}
	last := contents[len(contents)-1]
	if last.Role != string(genai.RoleUser) {
		t.Errorf("last turn role = %q, want user", last.Role)
	}
	if len(last.Parts) != 1 || last.Parts[0].Text != "q2" {
		t.Errorf("last turn parts = %v, want single q2 text part", last.Parts)
	}
}

func TestAssemble_BoundsHistory(t *testing.T) {
	var history []*genai.Content
	for i := range 30 {
		history = append(history, userTurn(fmt.Sprintf("q%d", i)), modelTurn(fmt.Sprintf("a%d", i)))
	}
	parts := []*genai.Part{genai.NewPartFromText("latest")}

	contents, err := Assemble(history, parts, 10)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(contents) != 11 {
		t.Fatalf("len(contents) = %d, want 11 (10 history + 1 new)", len(contents))
	}
	// Tail of history is kept, the oldest turns dropped.
	if contents[0].Parts[0].Text != "q25" {
		t.Errorf("first kept turn = %q, want q25", contents[0].Parts[0].Text)
	}
	if contents[10].Parts[0].Text != "latest" {
		t.Errorf("last turn = %q, want latest", contents[10].Parts[0].Text)
	}
}

func TestAssemble_DoesNotMutateHistory(t *testing.T) {
	history := []*genai.Content{userTurn("q1"), modelTurn("a1")}
	if _, err := Assemble(history, []*genai.Part{genai.NewPartFromText("q2")}, 10); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("history mutated, len = %d, want 2", len(history))
	}
}

func TestAssemble_EmptyParts(t *testing.T) {
	_, err := Assemble(nil, nil, 10)
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestHistory_KeyedIsolation(t *testing.T) {
	h := NewHistory()
	h.Append(Key("alice", "chat1"), userTurn("alice q"), modelTurn("alice a"))
	h.Append(Key("bob", "chat1"), userTurn("bob q"), modelTurn("bob a"))

	aliceTurns := h.Turns(Key("alice", "chat1"))
	if len(aliceTurns) != 2 {
		t.Fatalf("alice turns = %d, want 2", len(aliceTurns))
	}
	if aliceTurns[0].Parts[0].Text != "alice q" {
		t.Errorf("alice sees %q, cross-talk between conversations", aliceTurns[0].Parts[0].Text)
	}
	if got := h.Turns(Key("carol", "chat1")); len(got) != 0 {
		t.Errorf("unknown key returned %d turns, want 0", len(got))
	}
}

func TestHistory_AnonymousHasNoKey(t *testing.T) {
	if Key("", "chat1") != "" {
		t.Error("missing user must produce an empty key")
	}
	if Key("alice", "") != "" {
		t.Error("missing chat must produce an empty key")
	}

	h := NewHistory()
	h.Append("", userTurn("q"))
	if got := h.Turns(""); got != nil {
		t.Errorf("anonymous history = %v, want nil", got)
	}
}

func TestHistory_RetentionCap(t *testing.T) {
	h := NewHistory()
	key := Key("alice", "chat1")
	for i := range 100 {
		h.Append(key, userTurn(fmt.Sprintf("q%d", i)), modelTurn(fmt.Sprintf("a%d", i)))
	}
	if got := len(h.Turns(key)); got != maxRetainedTurns {
		t.Errorf("retained turns = %d, want %d", got, maxRetainedTurns)
	}
}
