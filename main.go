package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemstone/internal/config"
	"gemstone/internal/database"
	"gemstone/internal/logger"
	"gemstone/internal/services"
	"gemstone/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- Store ---
	repo := database.Open(context.Background(), cfg, log)

	// --- Events ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.EventsQueue})
		if err != nil {
			log.Warn("rabbitmq unavailable, gem events disabled", "error", err)
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	app, err := NewApp(cfg, log, repo, events)
	if err != nil {
		log.Fatal("failed to build app", "error", err)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting server", "addr", cfg.Addr())
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatal("server failed to start", "error", err)
		}
	}()

	<-quit
	log.Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during fiber shutdown", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.Close(ctx); err != nil {
		log.Error("error closing database", "error", err)
	}
	log.Info("server gracefully stopped")
}
