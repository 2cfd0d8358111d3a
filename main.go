package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"google.golang.org/genai"

	"github.com/Litigence-AI/legal-assistant-api/internal/archive"
	"github.com/Litigence-AI/legal-assistant-api/internal/chatdb"
	"github.com/Litigence-AI/legal-assistant-api/internal/config"
	"github.com/Litigence-AI/legal-assistant-api/internal/conversation"
	"github.com/Litigence-AI/legal-assistant-api/internal/handler/ask"
	"github.com/Litigence-AI/legal-assistant-api/internal/handler/chathistory"
	"github.com/Litigence-AI/legal-assistant-api/internal/handler/chattitles"
	"github.com/Litigence-AI/legal-assistant-api/internal/handler/health"
	"github.com/Litigence-AI/legal-assistant-api/internal/llm"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	// Local development reads secrets from .env; missing files are fine.
	_ = godotenv.Load()

	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()
	store := chatdb.NewStore(firestore)

	var archiver *archive.Archiver
	if bucket := conf.Storage.Bucket; bucket != "" {
		storageClient, err := storage.NewGRPCClient(ctx)
		if err != nil {
			return fmt.Errorf("main: create storage client: %w", err)
		}
		defer func() {
			if err := storageClient.Close(); err != nil {
				slog.ErrorContext(ctx, "main: close storage client", "error", err)
			}
		}()
		archiver = archive.NewArchiver(storageClient, bucket)
	}

	model, err := newModelClient(ctx, conf)
	if err != nil {
		return fmt.Errorf("main: create model client: %w", err)
	}

	mux.Use(middleware.Recoverer)
	mux.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	askHandler := ask.NewHandler(model, store, conversation.NewHistory(), archiver, conf.Chat.Turns)

	mux.Get("/", health.Check)
	mux.Post("/ask", askHandler.Ask)
	mux.Post("/ask_stream", askHandler.AskStream)
	mux.Get("/chat_history", chathistory.NewHandler(store).ChatHistory)
	mux.Get("/chat_titles", chattitles.NewHandler(store).ChatTitles)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}

func newModelClient(ctx context.Context, conf *config.Config) (llm.Client, error) {
	options := llm.Options{
		Model:           conf.Model.Name,
		Temperature:     conf.Model.Temperature,
		TopP:            conf.Model.TopP,
		MaxOutputTokens: conf.Model.MaxTokens,
		SafetyThreshold: genai.HarmBlockThreshold(conf.Model.Safety),
	}
	switch conf.Model.Provider {
	case "", "gemini":
		return llm.NewGeminiClient(ctx, llm.GeminiConfig{
			Project:         conf.Google.Project,
			Location:        conf.Model.Location,
			CredentialsFile: conf.Model.Credentials,
			APIKey:          conf.Model.APIKey,
			Options:         options,
		})
	case "openai":
		return llm.NewOpenAIClient(conf.Model.APIKey, options), nil
	case "stub":
		return &llm.StubClient{}, nil
	}
	return nil, fmt.Errorf("main: unknown model provider %q", conf.Model.Provider) //nolint:err113
}
