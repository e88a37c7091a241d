package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lead_gateway_backend/internal/relay"
	"lead_gateway_backend/platform/config"
	"lead_gateway_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting relay worker", "queue", cfg.AsynqQueueName, "concurrency", cfg.AsynqConcurrency)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := relay.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to initialize relay worker", "error", err)
		panic("failed to initialize relay worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("relay worker stopped")
}
