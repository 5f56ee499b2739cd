package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	httpadapter "github.com/roseyAI/mara-baraha-app2026/internal/adapters/http"
	"github.com/roseyAI/mara-baraha-app2026/internal/adapters/llm/openrouter"
	"github.com/roseyAI/mara-baraha-app2026/internal/adapters/store/libsql"
	"github.com/roseyAI/mara-baraha-app2026/internal/adapters/store/memory"
	"github.com/roseyAI/mara-baraha-app2026/internal/app"
	"github.com/roseyAI/mara-baraha-app2026/internal/config"
	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
	"github.com/roseyAI/mara-baraha-app2026/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var stateStore ports.StateStore
	if cfg.DBPath != "" {
		dbStore, err := libsql.Open(ctx, cfg.DBPath)
		if err != nil {
			logger.Error("failed to open state database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer dbStore.Close()
		logger.Info("state database ready", "path", cfg.DBPath)
		stateStore = dbStore
	} else {
		logger.Warn("DB_PATH is empty, user state will not survive restarts")
		stateStore = memory.New()
	}

	users := app.NewUserStore(ctx, stateStore, logger)

	images := cfg.Images()
	deck := domain.BuildDeck(images)

	llmClient := openrouter.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		cfg.OpenRouterAPIKey,
		cfg.OpenRouterBaseURL,
		cfg.LLMModel,
		cfg.LLMFallbackModels,
		logger,
	)

	sessions := app.NewSessions(deck, users, llmClient, stdRNG{}, time.Now, cfg.ShuffleDelay, logger)
	daily := app.NewDaily(deck, users, llmClient, stdRNG{}, time.Now, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(sessions, daily, users, images)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
