package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"advocate/internal/config"
	"advocate/internal/container"
	"advocate/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer c.Close()

	server, err := ui.NewServer(c.Advocate, appConfig.HasAPIKey(), ui.WithProvider(appConfig.AI.Provider))
	if err != nil {
		c.Logger.Fatal("failed to create UI server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil {
		c.Logger.Error("UI server stopped", zap.Error(err))
	}
}
