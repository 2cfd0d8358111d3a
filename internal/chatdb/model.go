// Package chatdb persists chat exchanges to Firestore under
// users/{userID}/chats/{chatID}.
package chatdb

import (
	"strings"
	"time"
)

// MessageRole is the author of a stored message.
type MessageRole string

const (
	// MessageRoleUser is a message sent by the user.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAI is a message generated by the assistant.
	MessageRoleAI MessageRole = "ai"
)

// StoredMessage is one utterance of a persisted exchange.
type StoredMessage struct {
	// Role is the author of the message.
	Role MessageRole `firestore:"role" json:"role"`

	// Message is the text content.
	Message string `firestore:"message" json:"message"`

	// Timestamp is when the exchange was recorded.
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}

// ChatRecord is a persisted conversation. The document ID is the generated
// chat ID; Title is a mutable attribute.
type ChatRecord struct {
	// ID is the unique identifier of the chat.
	ID string `firestore:"id" json:"id"`

	// Title names the chat, derived from the first user message when not
	// supplied explicitly.
	Title string `firestore:"title" json:"title"`

	// CreatedAt is when the chat was created.
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`

	// LastUpdated is bumped on every appended exchange, monotonically
	// non-decreasing.
	LastUpdated time.Time `firestore:"last_updated" json:"last_updated"`

	// Messages is the ordered exchange log, one user and one ai entry per
	// completed exchange.
	Messages []StoredMessage `firestore:"messages" json:"messages"`
}

// ChatSummary is the listing shape for a chat.
type ChatSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastUpdated time.Time `json:"last_updated"`
}

// AppendResult summarizes an AppendExchange call.
type AppendResult struct {
	ChatID string
	Title  string
	IsNew  bool
}

const untitledChat = "Untitled Chat"

// titleWords is how many leading words of the first user message become the
// derived chat title.
const titleWords = 5

// DeriveTitle returns a default chat title from the first words of a user
// message.
func DeriveTitle(userMessage string) string {
	words := strings.Fields(userMessage)
	if len(words) == 0 {
		return untitledChat
	}
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	return strings.Join(words, " ")
}
