// Package media decodes base64 attachment payloads into typed byte blobs.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Kind selects the default MIME type for payloads without a marker.
type Kind int

const (
	// KindImage defaults to image/jpeg.
	KindImage Kind = iota
	// KindDocument defaults to application/pdf.
	KindDocument
)

const (
	mimeJPEG = "image/jpeg"
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// Base64 encoding of the "PK\x03\x04" zip local file header, which
	// office documents start with.
	zipSignatureB64 = "UEsDB"
)

// Decode interprets a data-URI-style string or bare base64 payload and
// returns the MIME type and raw bytes. It has no side effects.
func Decode(field string, kind Kind) (string, []byte, error) {
	if field == "" {
		return "", nil, errors.New("media: empty attachment")
	}

	mimeType := ""
	payload := field
	if strings.Contains(field, ";") && strings.Contains(field, ",") {
		// Data URI shape: [data:]<mime>;base64,<payload>
		meta, rest, _ := strings.Cut(field, ",")
		payload = rest
		meta, _, _ = strings.Cut(meta, ";")
		mimeType = strings.TrimPrefix(meta, "data:")
	}

	if mimeType == "" {
		switch kind {
		case KindImage:
			mimeType = mimeJPEG
		case KindDocument:
			if strings.HasPrefix(payload, zipSignatureB64) {
				mimeType = mimeDOCX
			} else {
				mimeType = mimePDF
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("media: decoding base64 payload: %w", err)
	}
	return mimeType, data, nil
}
