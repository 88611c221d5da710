package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/config"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/logging"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/orchestrator"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/sentiment"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/server"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/training"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func loadTrainingData(cfg *config.Config) []domain.TrainingExample {
	if cfg.TrainingDataPath == "" {
		slog.Info("No training data configured, using built-in seed corpus")
		return training.Seed()
	}

	examples, err := training.LoadFile(cfg.TrainingDataPath)
	if err != nil {
		slog.Error("Failed to load training data", "path", cfg.TrainingDataPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded training data", "path", cfg.TrainingDataPath, "examples", len(examples))
	return examples
}

func runGracefulShutdown(srv *server.Server, orch *orchestrator.Orchestrator) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		orch.Dispose()
		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	var external domain.Predictor
	if cfg.ExternalPredictorEnabled() {
		external = sentiment.NewExternalPredictor(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		slog.Info("External predictor enabled", "model", cfg.OpenAIModel)
	}

	engine := sentiment.NewEngine(sentiment.NewLexiconScorer(), sentiment.NewClassifier(), external)
	if err := engine.Train(loadTrainingData(cfg)); err != nil {
		slog.Error("Failed to train classifier", "error", err)
		os.Exit(1)
	}

	orch := orchestrator.New(engine, orchestrator.Options{
		CacheTTL:         cfg.CacheTTL,
		CacheCapacity:    cfg.CacheCapacity,
		SweepInterval:    cfg.SweepInterval,
		AnalysisTimeout:  cfg.AnalysisTimeout,
		BreakerThreshold: cfg.BreakerThreshold,
		BreakerCooldown:  cfg.BreakerCooldown,
		Clock:            clock,
	})
	defer orch.Dispose()

	srv := server.NewServer(cfg, orch)
	done := runGracefulShutdown(srv, orch)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
