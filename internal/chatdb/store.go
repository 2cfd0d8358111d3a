package chatdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

// Store is the chat persistence adapter.
type Store struct {
	client *firestore.Client
}

// NewStore returns a Store over the given Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) chats(userID string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(userID).Collection("chats")
}

// AppendExchange appends one (user, ai) message pair to the chat identified
// by (userID, chatKey), creating the chat when absent. chatKey may be a chat
// ID, a chat title, or empty to always create a new chat. The read-modify-
// write is transactional so concurrent appends to the same chat never lose
// updates; transient backend unavailability is retried with bounded backoff.
func (s *Store) AppendExchange(ctx context.Context, userID, chatKey, userMessage, aiMessage string) (AppendResult, error) {
	now := time.Now()
	exchange := []any{
		StoredMessage{Role: MessageRoleUser, Message: userMessage, Timestamp: now},
		StoredMessage{Role: MessageRoleAI, Message: aiMessage, Timestamp: now},
	}

	operation := func() (AppendResult, error) {
		var result AppendResult
		err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			ref, snap, err := s.resolveChat(tx, userID, chatKey)
			if err != nil {
				return err
			}

			if snap != nil {
				result = AppendResult{ChatID: snap.Ref.ID}
				if title, err := snap.DataAt("title"); err == nil {
					result.Title, _ = title.(string)
				}
				return tx.Update(snap.Ref, []firestore.Update{
					{Path: "messages", Value: firestore.ArrayUnion(exchange...)},
					{Path: "last_updated", Value: now},
				})
			}

			title := chatKey
			if title == "" {
				title = DeriveTitle(userMessage)
			}
			record := ChatRecord{
				ID:          ref.ID,
				Title:       title,
				CreatedAt:   now,
				LastUpdated: now,
				Messages: []StoredMessage{
					{Role: MessageRoleUser, Message: userMessage, Timestamp: now},
					{Role: MessageRoleAI, Message: aiMessage, Timestamp: now},
				},
			}
			result = AppendResult{ChatID: ref.ID, Title: title, IsNew: true}
			return tx.Create(ref, record)
		})
		if err != nil {
			if retryable(err) {
				return AppendResult{}, err
			}
			return AppendResult{}, backoff.Permanent(err)
		}
		return result, nil
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
	)
	if err != nil {
		return AppendResult{}, &domain.PersistenceError{
			Message: fmt.Sprintf("saving chat exchange: %v", err),
		}
	}
	return result, nil
}

// resolveChat locates an existing chat by ID then by title, or returns a new
// document ref when no chat matches. All reads happen before any write, as
// Firestore transactions require.
func (s *Store) resolveChat(tx *firestore.Transaction, userID, chatKey string) (*firestore.DocumentRef, *firestore.DocumentSnapshot, error) {
	chats := s.chats(userID)
	if chatKey != "" {
		snap, err := tx.Get(chats.Doc(chatKey))
		if err == nil {
			return snap.Ref, snap, nil
		}
		if status.Code(err) != codes.NotFound {
			return nil, nil, fmt.Errorf("chatdb: getting chat %s: %w", chatKey, err)
		}

		snap, err = tx.Documents(chats.Query.Where("title", "==", chatKey).Limit(1)).Next()
		if err == nil {
			return snap.Ref, snap, nil
		}
		if !errors.Is(err, iterator.Done) {
			return nil, nil, fmt.Errorf("chatdb: querying chat by title: %w", err)
		}
	}
	return chats.Doc(uuid.NewString()), nil, nil
}

func retryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted, codes.ResourceExhausted:
		return true
	default:
		return false
	}
}

// Get returns the chat identified by (userID, chatKey), resolving the key as
// a chat ID then as a title.
func (s *Store) Get(ctx context.Context, userID, chatKey string) (*ChatRecord, error) {
	chats := s.chats(userID)

	snap, err := chats.Doc(chatKey).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return nil, &domain.PersistenceError{Message: fmt.Sprintf("getting chat: %v", err)}
	}
	if err != nil {
		snap, err = chats.Query.Where("title", "==", chatKey).Limit(1).Documents(ctx).Next()
		if errors.Is(err, iterator.Done) {
			return nil, &domain.NotFoundError{Message: "chat not found"}
		}
		if err != nil {
			return nil, &domain.PersistenceError{Message: fmt.Sprintf("querying chat by title: %v", err)}
		}
	}

	var record ChatRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, &domain.PersistenceError{Message: fmt.Sprintf("decoding chat: %v", err)}
	}
	if record.ID == "" {
		record.ID = snap.Ref.ID
	}
	return &record, nil
}

// All returns every chat for a user, most recently updated first.
func (s *Store) All(ctx context.Context, userID string) ([]ChatRecord, error) {
	iter := s.chats(userID).Query.OrderBy("last_updated", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	records := []ChatRecord{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, &domain.PersistenceError{Message: fmt.Sprintf("listing chats: %v", err)}
		}
		var record ChatRecord
		if err := snap.DataTo(&record); err != nil {
			return nil, &domain.PersistenceError{Message: fmt.Sprintf("decoding chat: %v", err)}
		}
		if record.ID == "" {
			record.ID = snap.Ref.ID
		}
		records = append(records, record)
	}
	return records, nil
}

// List returns summaries of all chats for a user, most recently updated
// first.
func (s *Store) List(ctx context.Context, userID string) ([]ChatSummary, error) {
	iter := s.chats(userID).Query.OrderBy("last_updated", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	summaries := []ChatSummary{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, &domain.PersistenceError{Message: fmt.Sprintf("listing chats: %v", err)}
		}
		var record ChatRecord
		if err := snap.DataTo(&record); err != nil {
			return nil, &domain.PersistenceError{Message: fmt.Sprintf("decoding chat: %v", err)}
		}
		title := record.Title
		if title == "" {
			title = untitledChat
		}
		summaries = append(summaries, ChatSummary{
			ID:          snap.Ref.ID,
			Title:       title,
			LastUpdated: record.LastUpdated,
		})
	}
	return summaries, nil
}
