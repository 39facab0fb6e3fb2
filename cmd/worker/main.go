package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourbook/config"
	"tourbook/di"
	"tourbook/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeConsumer()
	consumer.Run(ctx)

	cleanup, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.Shutdown.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	consumer.Close(cleanup)
}
