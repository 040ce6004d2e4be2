package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casey/kickball-cup/internal/api"
	"github.com/casey/kickball-cup/internal/config"
	"github.com/casey/kickball-cup/internal/repository"
	"github.com/casey/kickball-cup/internal/repository/memory"
	"github.com/casey/kickball-cup/internal/repository/postgres"
	"github.com/casey/kickball-cup/internal/repository/sqlite"
	"github.com/casey/kickball-cup/internal/service"
	"github.com/casey/kickball-cup/internal/websocket"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := newStateStore(cfg)
	if err != nil {
		log.Error("failed to open state store", "error", err)
		os.Exit(1)
	}

	hub := websocket.NewHub(log)
	go hub.Run()

	services := service.NewServices(store, cfg, log)
	router := api.NewRouter(services, hub, log)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	hub.Stop()

	log.Info("server stopped")
}

func newStateStore(cfg *config.Config) (repository.StateStore, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return postgres.NewStateStore(db), nil
	case config.StoreSQLite:
		return sqlite.NewStateStore(cfg.SQLitePath)
	default:
		return memory.NewStateStore(), nil
	}
}
