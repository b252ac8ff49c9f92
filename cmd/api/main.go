package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/werewolf-agent/internal/agent"
	"github.com/jwebster45206/werewolf-agent/internal/config"
	"github.com/jwebster45206/werewolf-agent/internal/handlers"
	"github.com/jwebster45206/werewolf-agent/internal/logger"
	"github.com/jwebster45206/werewolf-agent/internal/middleware"
	"github.com/jwebster45206/werewolf-agent/internal/services"
	"github.com/jwebster45206/werewolf-agent/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Werewolf Agent API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName,
		"classifier_model_name", cfg.ClassifierModelName,
		"system_prompt", cfg.SystemPrompt)

	provider, err := services.NewLLMService(services.ProviderConfig{
		Provider:            cfg.LLMProvider,
		BaseURL:             cfg.LLMBaseURL,
		APIKey:              cfg.APIKey(),
		ModelName:           cfg.ModelName,
		ClassifierModelName: cfg.ClassifierModelName,
		Timeout:             cfg.LLMTimeout,
	}, log)
	if err != nil {
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	llmService := services.NewRetryingLLM(provider, cfg.LLMMaxTries, log)

	var store storage.Store
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(cfg.RedisURL, cfg.SessionTTL, log)
		if err != nil {
			log.Error("Failed to configure Redis", "error", err)
			os.Exit(1)
		}
		storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err = redisStore.WaitForConnection(storageCtx, 30, 2*time.Second)
		storageCancel()
		if err != nil {
			log.Error("Failed to connect to storage", "error", err)
			os.Exit(1)
		}
		store = redisStore
	} else {
		log.Warn("REDIS_URL not set, sessions are kept in memory")
		store = storage.NewMemoryStore()
	}

	// Initialize the model on startup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	manager := agent.NewManager(store, llmService, agent.Options{
		Policy:           cfg.SystemPrompt,
		FallbackResponse: cfg.FallbackResponse,
	}, cfg.WolfCount, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, manager, cfg.ModelName, log)
	mux.Handle("/health", healthHandler)

	gamesHandler := handlers.NewGamesHandler(manager, log)
	mux.Handle("/v1/games", gamesHandler)
	mux.Handle("/v1/games/", gamesHandler)

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Responses wait on up to two LLM round trips with retries
		WriteTimeout: cfg.LLMTimeout*time.Duration(2*cfg.LLMMaxTries) + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	// Close storage connection after in-flight requests have saved
	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
