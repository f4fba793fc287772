package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"chat-relay/internal/config"
	"chat-relay/internal/convo"
	"chat-relay/internal/image"
	"chat-relay/internal/llm"
	"chat-relay/internal/scheduler"
	"chat-relay/internal/session"
	"chat-relay/internal/storage"
	"chat-relay/internal/store"
	"chat-relay/internal/telegram"
	"chat-relay/internal/users"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	userSvc := users.NewService(store.NewUserRepo(db))
	msgStore := store.NewMessageRepo(db)

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}
	imageClient := image.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	responder := convo.NewResponder(userSvc, msgStore, llmClient, readSystemPrompt(cfg.SystemPromptPath))

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init file recorder: %v", err)
		} else {
			rec = fr
		}
	}

	sessions := session.NewMemoryStore()

	janitor := scheduler.NewJanitor(sessions, cfg.SessionTTL)
	if rec != nil {
		if err := janitor.ScheduleDailyReport(rec); err != nil {
			log.Printf("failed to schedule daily report: %v", err)
		}
	}
	if err := janitor.Start(cfg.JanitorSchedule); err != nil {
		log.Printf("failed to start session janitor: %v", err)
	}
	defer janitor.Stop()

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		userSvc,
		responder,
		imageClient,
		sessions,
		rec,
		cfg.TurnTimeout,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	bot.Start(context.Background())
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
