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

	"example.com/mil-eventos/backend/internal/config"
	"example.com/mil-eventos/backend/internal/database"
	"example.com/mil-eventos/backend/internal/server"
	"example.com/mil-eventos/backend/internal/store"
	"example.com/mil-eventos/backend/internal/store/local"
	"example.com/mil-eventos/backend/internal/store/postgres"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", slog.String("mode", cfg.Storage.Mode), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	logger.Info("store ready", slog.String("mode", cfg.Storage.Mode))

	e := server.New(cfg, logger, st)
	httpServer := server.NewHTTPServer(cfg.Server, e)

	sweeper := server.NewOverdueSweeper(st, logger)
	sweeper.Start()
	defer sweeper.Stop()

	go func() {
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownSignal

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// openStore picks the persistence backend: the on-disk demo store or the
// postgres live store.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Storage.Mode {
	case config.StoragePostgres:
		pool, err := database.Open(context.Background(), cfg.Database)
		if err != nil {
			return nil, err
		}
		return postgres.New(pool), nil
	default:
		return local.Open(cfg.Storage.DataDir)
	}
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
		return
	}

	if _, err := os.Stat("../.env"); err == nil {
		_ = os.Setenv("ENV_FILE", "../.env")
	}
}
