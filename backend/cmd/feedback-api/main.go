package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itchan-dev/feedback/backend/internal/router"
	"github.com/itchan-dev/feedback/backend/internal/setup"
	"github.com/itchan-dev/feedback/shared/config"
	"github.com/itchan-dev/feedback/shared/logger"
)

const limiterCleanupInterval = 5 * time.Minute

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", envOr("CONFIG_FOLDER", "backend/config"), "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	if err := run(cfg); err != nil {
		logger.Log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup dependencies: %w", err)
	}
	defer func() {
		if err := deps.Storage.Cleanup(); err != nil {
			logger.Log.Error("failed to close storage", "error", err)
		}
	}()

	if deps.SubmitLimiter != nil {
		deps.SubmitLimiter.StartJanitor(ctx, limiterCleanupInterval)
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Public.Server.ReadTimeout,
		WriteTimeout: cfg.Public.Server.WriteTimeout,
		IdleTimeout:  cfg.Public.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Log.Info("server was started", "addr", server.Addr, "env", cfg.Public.Env, "storage", cfg.Public.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Public.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
