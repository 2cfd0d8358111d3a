package ask

import (
	"context"
	"fmt"
	"mime"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/wandb/parallel"
	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
	"github.com/Litigence-AI/legal-assistant-api/internal/media"
)

type askRequest struct {
	Question  string   `json:"question"`
	Images    []string `json:"images"`
	Documents []string `json:"documents"`
	UserID    string   `json:"user_id"`
	ChatTitle string   `json:"chat_title"`
}

const maxAttachments = 16

func (r askRequest) Validate() error {
	if r.Question == "" && len(r.Images) == 0 && len(r.Documents) == 0 {
		return &domain.ValidationError{Message: "Question or media input is required"}
	}
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Question, validation.Length(0, 32768)),
		validation.Field(&r.Images, validation.Length(0, maxAttachments)),
		validation.Field(&r.Documents, validation.Length(0, maxAttachments)),
		validation.Field(&r.UserID, validation.Length(0, 128)),
		validation.Field(&r.ChatTitle, validation.Length(0, 256)),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// blob is a decoded attachment kept for archiving.
type blob struct {
	mimeType string
	data     []byte
}

// decodeAttachments turns the request's base64 attachments into model parts,
// images first, then documents, then the question text; attachment order is
// significant for the model's multimodal reasoning. Attachments decode
// concurrently but land in their original slots; the first failure wins and
// names the offending attachment.
func decodeAttachments(ctx context.Context, req askRequest) ([]*genai.Part, []blob, error) {
	blobs := make([]blob, len(req.Images)+len(req.Documents))

	grp := parallel.ErrGroup(parallel.Limited(ctx, 4))
	for i, data := range req.Images {
		grp.Go(func(_ context.Context) error {
			mimeType, decoded, err := media.Decode(data, media.KindImage)
			if err != nil {
				return &domain.DecodeError{Message: fmt.Sprintf("Error processing image %d: %v", i+1, err)}
			}
			blobs[i] = blob{mimeType: mimeType, data: decoded}
			return nil
		})
	}
	for i, data := range req.Documents {
		grp.Go(func(_ context.Context) error {
			mimeType, decoded, err := media.Decode(data, media.KindDocument)
			if err != nil {
				return &domain.DecodeError{Message: fmt.Sprintf("Error processing document %d: %v", i+1, err)}
			}
			blobs[len(req.Images)+i] = blob{mimeType: mimeType, data: decoded}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}

	parts := make([]*genai.Part, 0, len(blobs)+1)
	for _, b := range blobs {
		parts = append(parts, genai.NewPartFromBytes(b.data, b.mimeType))
	}
	if req.Question != "" {
		parts = append(parts, genai.NewPartFromText(req.Question))
	}
	return parts, blobs, nil
}
