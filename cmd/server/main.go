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

	"go.uber.org/zap"

	"github.com/dgallion1/exitsurvey/internal/analysis"
	"github.com/dgallion1/exitsurvey/internal/api"
	"github.com/dgallion1/exitsurvey/internal/config"
	"github.com/dgallion1/exitsurvey/internal/logger"
	"github.com/dgallion1/exitsurvey/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ac, err := cfg.AnalyzerConfig()
	if err != nil {
		log.Fatal("invalid analysis configuration", zap.Error(err))
	}
	log.Info("catalog loaded",
		zap.String("source", catalogSource(cfg)),
		zap.Strings("categories", ac.Catalog.Names()),
		zap.String("match_mode", ac.Match.Mode.String()),
		zap.Strings("question_patterns", cfg.QuestionPatterns),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, analysis.New(ac), log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, ac.Catalog, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", zap.Error(err))
		}

		orch.Stop()
	}()

	log.Info("starting exitsurvey", zap.String("port", cfg.Port), zap.Int("workers", cfg.WorkerCount))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
	<-done
}

func catalogSource(cfg config.Config) string {
	if cfg.CatalogFile != "" {
		return cfg.CatalogFile
	}
	return "built-in"
}
