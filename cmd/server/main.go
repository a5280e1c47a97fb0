package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/clients"
	"github.com/spacesedan/insightflow/internal/handler"
	"github.com/spacesedan/insightflow/internal/insights"
	"github.com/spacesedan/insightflow/internal/language"
	"github.com/spacesedan/insightflow/internal/llm"
	"github.com/spacesedan/insightflow/internal/logging"
	"github.com/spacesedan/insightflow/internal/monitoring"
	"github.com/spacesedan/insightflow/internal/pipeline"
	"github.com/spacesedan/insightflow/internal/safety"
	"github.com/spacesedan/insightflow/internal/segmentation"
	"github.com/spacesedan/insightflow/internal/validation"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	completer, err := llm.NewCompleter(cfg)
	if err != nil {
		slog.Error("[Main] Failed to build model client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	validator, err := validation.NewValidator(cfg)
	if err != nil {
		slog.Error("[Main] Failed to load deny list", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var tableSource safety.TableSource = safety.StaticSource{}
	if cfg.SafetyTableName != "" {
		tableSource = safety.NewDynamoSource(clients.GetDynamoDBClient(), cfg.SafetyTableName)
	}
	table := safety.LoadTable(context.Background(), tableSource)
	scanner := safety.NewScanner(table, safety.ScannerConfig{
		MinConfidence:     cfg.MinSafetyConfidence,
		SevereModifiers:   cfg.SevereModifiers,
		ModerateModifiers: cfg.ModerateModifiers,
	})

	pipe := pipeline.NewPipeline(
		validator,
		language.NewTranslator(completer),
		scanner,
		insights.NewExtractor(completer),
		monitoring.NewPublisher(cfg),
		cfg.RequestTimeout,
	)

	segments := segmentation.NewService(
		clients.GetSageMakerClient(),
		clients.GetSageMakerRuntimeClient(),
		cfg.EndpointKeyword,
	)

	router := handler.NewRouter(
		handler.NewInsightsHandler(pipe),
		handler.NewSegmentsHandler(segments),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("[Main] Server listening",
			slog.String("port", cfg.Port),
			slog.String("provider", cfg.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("[Main] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Forced shutdown", slog.String("error", err.Error()))
	}
	slog.Info("[Main] Server stopped")
}
