package llm

import (
	"context"
	"fmt"
	"iter"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/domain"
)

// GeminiConfig configures the Gemini-backed client.
type GeminiConfig struct {
	Project  string
	Location string

	// CredentialsFile is an explicit service-account or authorized_user
	// credentials file. When set it takes priority over ambient ADC.
	CredentialsFile string

	// APIKey is used against the Gemini API backend when no Google Cloud
	// credentials resolve.
	APIKey string

	Options Options
}

// GeminiClient calls Gemini through the genai SDK.
type GeminiClient struct {
	client  *genai.Client
	options Options
}

// NewGeminiClient resolves credentials and returns a client. Resolution
// order: explicit credentials file, ambient application default credentials,
// API key. When none resolve the request path is not usable and an
// AuthenticationError is returned.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	clientConfig, err := resolveClientConfig(cfg)
	if err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("llm: creating genai client: %w", err)
	}
	return &GeminiClient{client: client, options: cfg.Options}, nil
}

func resolveClientConfig(cfg GeminiConfig) (*genai.ClientConfig, error) {
	if cfg.CredentialsFile != "" {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsFile: cfg.CredentialsFile,
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		if err != nil {
			return nil, &domain.AuthenticationError{
				Message: fmt.Sprintf("loading credentials from %s: %v", cfg.CredentialsFile, err),
			}
		}
		return &genai.ClientConfig{
			Backend:     genai.BackendVertexAI,
			Project:     cfg.Project,
			Location:    cfg.Location,
			Credentials: creds,
		}, nil
	}

	if creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{"https://www.googleapis.com/auth/cloud-platform"},
	}); err == nil {
		return &genai.ClientConfig{
			Backend:     genai.BackendVertexAI,
			Project:     cfg.Project,
			Location:    cfg.Location,
			Credentials: creds,
		}, nil
	}

	if cfg.APIKey != "" {
		return &genai.ClientConfig{
			Backend: genai.BackendGeminiAPI,
			APIKey:  cfg.APIKey,
		}, nil
	}

	return nil, &domain.AuthenticationError{Message: "no usable model credentials: set a credentials file, application default credentials, or an API key"}
}

func (c *GeminiClient) generateConfig() *genai.GenerateContentConfig {
	threshold := c.options.SafetyThreshold
	if threshold == "" {
		threshold = genai.HarmBlockThresholdBlockOnlyHigh
	}
	categories := []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryDangerousContent,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryHarassment,
	}
	settings := make([]*genai.SafetySetting, len(categories))
	for i, category := range categories {
		settings[i] = &genai.SafetySetting{Category: category, Threshold: threshold}
	}
	return &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(c.options.Temperature),
		TopP:              genai.Ptr(c.options.TopP),
		MaxOutputTokens:   c.options.MaxOutputTokens,
		SafetySettings:    settings,
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleModel),
	}
}

// Generate implements Client.
func (c *GeminiClient) Generate(ctx context.Context, contents []*genai.Content) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.options.Model, contents, c.generateConfig())
	if err != nil {
		return "", &domain.GenerationError{Message: fmt.Sprintf("calling GenerateContent: %v", err)}
	}
	return responseText(res)
}

// GenerateStream implements Client. Empty deltas are skipped and upstream
// failures terminate the sequence with a GenerationError.
func (c *GeminiClient) GenerateStream(ctx context.Context, contents []*genai.Content) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for res, err := range c.client.Models.GenerateContentStream(ctx, c.options.Model, contents, c.generateConfig()) {
			if err != nil {
				yield("", &domain.GenerationError{Message: fmt.Sprintf("streaming GenerateContent: %v", err)})
				return
			}
			chunk, err := responseText(res)
			if err != nil {
				// Chunk carries no text, nothing to forward.
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}
