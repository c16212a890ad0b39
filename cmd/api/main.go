package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/api/jsearch"
	"github.com/justsurfingit/career-copilot/internal/auth"
	"github.com/justsurfingit/career-copilot/internal/config"
	"github.com/justsurfingit/career-copilot/internal/handlers"
	"github.com/justsurfingit/career-copilot/internal/logger"
	"github.com/justsurfingit/career-copilot/internal/server"
	"github.com/justsurfingit/career-copilot/internal/services"
)

func main() {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Sessions
	hasher, err := auth.NewHasher(cfg.PasswordHasher)
	if err != nil {
		log.Fatal("failed to create password hasher", zap.Error(err))
	}
	sessions := auth.NewManager(auth.NewStore(), hasher, log, auth.WithTTL(cfg.TokenTTL))

	if cfg.TokenTTL > 0 {
		sweeper := auth.NewSweeper(sessions, cfg.TokenSweepSpec, log)
		if err := sweeper.Start(); err != nil {
			log.Fatal("failed to start token sweeper", zap.Error(err))
		}
		defer sweeper.Stop()
	}

	// 3. Advisory
	model, err := services.NewLanguageModel(ctx, cfg)
	if err != nil {
		log.Fatal("failed to create language model", zap.Error(err))
	}
	if model == nil {
		log.Warn("no advisory credential set, chat and resume review will fail",
			zap.String("provider", cfg.AdvisoryProvider),
		)
	}
	llmService := services.NewLLMService(model, cfg.AdvisoryTimeout, log)
	pdfService := services.NewPDFService(log)

	// 4. Job search
	jsearchClient := jsearch.New(cfg.JSearchBaseURL, cfg.JSearchHost, cfg.JSearchAPIKey, cfg.JSearchTimeout, log)
	if !jsearchClient.Configured() {
		log.Warn("RAPIDAPI_KEY is not set, job search requests will fail")
	}
	pool := services.NewPool(cfg.JobWorkers)
	jobService := services.NewJobService(jsearchClient, pool, cfg.JSearchCountry, log)

	// 5. Router
	r := server.New(server.Handlers{
		Auth:     handlers.NewAuthHandler(sessions, log),
		Advisory: handlers.NewAdvisoryHandler(llmService, pdfService, cfg.MaxUploadBytes, log),
		Jobs:     handlers.NewJobHandler(jobService, log),
	}, cfg.CORSOrigins, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("version", handlers.Version),
			zap.Int("job_workers", pool.Size()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
