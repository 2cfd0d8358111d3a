package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"iter"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

// OpenAIClient is an alternate Client backed by the OpenAI chat completions
// API. Conversations are carried internally as genai contents and converted
// at the call boundary.
type OpenAIClient struct {
	client  openai.Client
	options Options
}

// NewOpenAIClient returns an OpenAI-backed client. The key falls back to the
// OPENAI_API_KEY environment variable when empty.
func NewOpenAIClient(apiKey string, options Options) *OpenAIClient {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		options: options,
	}
}

func (c *OpenAIClient) params(contents []*genai.Content) (openai.ChatCompletionNewParams, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(contents)+1)
	messages = append(messages, openai.SystemMessage(SystemInstruction))
	for _, content := range contents {
		message, err := toOpenAIMessage(content)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, message)
	}
	return openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.options.Model),
		Messages:            messages,
		Temperature:         openai.Float(float64(c.options.Temperature)),
		TopP:                openai.Float(float64(c.options.TopP)),
		MaxCompletionTokens: openai.Int(int64(c.options.MaxOutputTokens)),
	}, nil
}

func toOpenAIMessage(content *genai.Content) (openai.ChatCompletionMessageParamUnion, error) {
	if content.Role == string(genai.RoleModel) {
		text := ""
		for _, part := range content.Parts {
			if part != nil {
				text += part.Text
			}
		}
		return openai.AssistantMessage(text), nil
	}

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(content.Parts))
	for _, part := range content.Parts {
		switch {
		case part == nil:
		case part.Text != "":
			parts = append(parts, openai.TextContentPart(part.Text))
		case part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "image/"):
			dataURL := "data:" + part.InlineData.MIMEType + ";base64," +
				base64.StdEncoding.EncodeToString(part.InlineData.Data)
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: dataURL,
			}))
		case part.InlineData != nil:
			return openai.ChatCompletionMessageParamUnion{}, &domain.GenerationError{
				Message: fmt.Sprintf("the openai provider does not support %s attachments", part.InlineData.MIMEType),
			}
		}
	}
	return openai.UserMessage(parts), nil
}

// Generate implements Client.
func (c *OpenAIClient) Generate(ctx context.Context, contents []*genai.Content) (string, error) {
	params, err := c.params(contents)
	if err != nil {
		return "", err
	}
	res, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &domain.GenerationError{Message: fmt.Sprintf("calling chat completions: %v", err)}
	}
	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", &domain.GenerationError{Message: "model returned no text choices"}
	}
	return res.Choices[0].Message.Content, nil
}

// GenerateStream implements Client.
func (c *OpenAIClient) GenerateStream(ctx context.Context, contents []*genai.Content) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		params, err := c.params(contents)
		if err != nil {
			yield("", err)
			return
		}
		stream := c.client.Chat.Completions.NewStreaming(ctx, params)
		defer func() {
			_ = stream.Close()
		}()
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			if !yield(chunk.Choices[0].Delta.Content, nil) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			yield("", &domain.GenerationError{Message: fmt.Sprintf("streaming chat completions: %v", err)})
		}
	}
}
