package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

// Model configures the generation provider.
type Model struct {
	// Provider selects the model client: gemini, openai, or stub. The stub
	// keeps the request path exercisable without live credentials and is
	// only ever selected explicitly here.
	Provider string `koanf:"provider"`

	// Name is the model to invoke, e.g. gemini-1.5-pro-002.
	Name string `koanf:"name"`

	// Location is the Vertex AI region.
	Location string `koanf:"location"`

	// Credentials is an explicit credentials file path. When empty,
	// application default credentials are used.
	Credentials string `koanf:"credentials"`

	// APIKey authenticates against the Gemini API backend (or OpenAI for
	// the openai provider) when no Google Cloud credentials resolve.
	APIKey string `koanf:"apikey"`

	// Temperature is the sampling randomness.
	Temperature float32 `koanf:"temperature"`

	// TopP is the nucleus sampling mass.
	TopP float32 `koanf:"topp"`

	// MaxTokens caps generated length.
	MaxTokens int32 `koanf:"maxtokens"`

	// Safety is the content-filter threshold applied to every harm
	// category, e.g. BLOCK_ONLY_HIGH.
	Safety string `koanf:"safety"`
}

// Chat configures conversation handling.
type Chat struct {
	// Turns is the bounded context window, in turns, included per model
	// call.
	Turns int `koanf:"turns"`
}

// Storage configures attachment archiving.
type Storage struct {
	// Bucket receives archived chat attachments. Empty disables archiving.
	Bucket string `koanf:"bucket"`
}

// Config is the full service configuration.
type Config struct {
	config.Common

	// Model is the configuration for generation.
	Model Model `koanf:"model"`

	// Chat is the configuration for conversation context.
	Chat Chat `koanf:"chat"`

	// Storage is the configuration for attachment archiving.
	Storage Storage `koanf:"storage"`
}
