// Package archive writes chat attachments to Cloud Storage so exchanges
// persisted to Firestore keep only text. Archiving is best effort; the
// caller logs failures and moves on.
package archive

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// Archiver stores attachment blobs under a bucket.
type Archiver struct {
	storage *storage.Client
	bucket  string
}

// NewArchiver returns an Archiver writing to bucket.
func NewArchiver(client *storage.Client, bucket string) *Archiver {
	return &Archiver{storage: client, bucket: bucket}
}

// Save writes one attachment under users/{userID}/chats/{chatID} and returns
// its public URL.
func (a *Archiver) Save(ctx context.Context, userID, chatID string, index int, mimeType string, data []byte) (string, error) {
	ext := "bin"
	if _, sub, ok := strings.Cut(mimeType, "/"); ok {
		ext = sub
		// Office mime subtypes are unwieldy as extensions.
		if strings.Contains(ext, "wordprocessingml") {
			ext = "docx"
		}
	}
	path := fmt.Sprintf("users/%s/chats/%s/attachment-%03d.%s", userID, chatID, index, ext)

	w := a.storage.Bucket(a.bucket).Object(path).NewWriter(ctx)
	w.ContentType = mimeType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("archive: writing attachment: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("archive: closing writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", a.bucket, path), nil
}
