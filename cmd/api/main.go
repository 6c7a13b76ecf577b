package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jwebster45206/gift-hunt/internal/config"
	"github.com/jwebster45206/gift-hunt/internal/handlers"
	"github.com/jwebster45206/gift-hunt/internal/logger"
	"github.com/jwebster45206/gift-hunt/internal/metrics"
	"github.com/jwebster45206/gift-hunt/internal/middleware"
	"github.com/jwebster45206/gift-hunt/internal/services"
	"github.com/jwebster45206/gift-hunt/pkg/gift"
	"github.com/jwebster45206/gift-hunt/pkg/hunt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Gift Hunt API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	catalog := gift.Default()
	if cfg.CatalogFile != "" {
		catalog, err = gift.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			log.Error("Failed to load catalog", "file", cfg.CatalogFile, "error", err)
			os.Exit(1)
		}
	}
	log.Info("Catalog loaded", "name", catalog.Name, "gifts", catalog.Len())

	var llmService services.LLMService
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.ModelName, log)
		if err != nil {
			log.Error("Failed to create Gemini client", "error", err)
			os.Exit(1)
		}
		defer func() { _ = gemini.Close() }()
		llmService = gemini
	case config.ProviderAnthropic:
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
	case config.ProviderMock:
		llmService = services.NewMockLLMAPI()
	}
	log.Info("Using LLM provider", "provider", cfg.LLMProvider)

	initCtx, initCancel := context.WithTimeout(context.Background(), time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	h := hunt.New(catalog, clockwork.NewRealClock(), log)

	// The store stays a nil interface when Redis is not configured.
	var store services.HuntStore
	if cfg.RedisURL != "" {
		redisStore, err := services.NewRedisStore(cfg.RedisURL, log)
		if err != nil {
			log.Error("Invalid Redis configuration", "error", err)
			os.Exit(1)
		}
		storeCtx, storeCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := redisStore.WaitForConnection(storeCtx); err != nil {
			storeCancel()
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		if err := restore(storeCtx, h, redisStore, cfg.HuntKey, log); err != nil {
			log.Warn("Ignoring saved hunt", "key", cfg.HuntKey, "error", err)
		}
		storeCancel()
		store = redisStore
	}

	recorder := metrics.NewRecorder()

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/metrics", recorder.Handler())
	mux.Handle("/v1/chat", handlers.NewChatHandler(h, llmService, store, recorder, handlers.ChatOptions{
		HuntKey:           cfg.HuntKey,
		GenerationTimeout: cfg.GenerationTimeout,
		ContentFilter:     cfg.ContentFilter,
	}, log))
	mux.Handle("/v1/hunt", handlers.NewHuntHandler(h, store, cfg.HuntKey, log))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Logger(log, mux),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if store != nil {
		if err := store.Close(); err != nil {
			log.Error("Error closing store connection", "error", err)
		}
	}

	log.Info("Server exited")
}
