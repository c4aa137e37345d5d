package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Gchahm/retell-ai-agent-builder/internal/config"
	"github.com/Gchahm/retell-ai-agent-builder/internal/db"
	httpapi "github.com/Gchahm/retell-ai-agent-builder/internal/http"
	"github.com/Gchahm/retell-ai-agent-builder/internal/retell"
)

const retellAPIBase = "https://api.retellai.com"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "voice-agent-api").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	var client retell.Client
	if strings.TrimSpace(cfg.RetellAPIKey) == "" {
		client = retell.NewMockClient()
		logger.Info().Msg("using mock Retell client")
	} else {
		base := cfg.RetellBaseURL
		if base == "" {
			base = retellAPIBase
		}
		client = retell.HTTPClient{
			BaseURL:    base,
			APIKey:     cfg.RetellAPIKey,
			WebhookURL: cfg.WebhookURL(),
		}
	}

	router := httpapi.Router(cfg, store, client, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
