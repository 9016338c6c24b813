package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"advocate/adapters/api"
	"advocate/internal/config"
	"advocate/internal/container"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewApp(c.Advocate, c.Usage)
	if err := server.Start(ctx, ":"+appConfig.Server.APIPort); err != nil {
		c.Logger.Error("API server stopped", zap.Error(err))
	}
}
