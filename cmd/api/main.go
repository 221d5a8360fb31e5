package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/intervalrain/chatbot-api/internal/app"
	"github.com/intervalrain/chatbot-api/internal/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		<-c
		cancel()
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg := config.LoadConfig()
	application, err := app.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
	logger.Info("shutdown complete")
}
