package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/skillswap-backend/internal/config"
	"github.com/gdugdh24/skillswap-backend/internal/infrastructure/container"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := log.New(os.Stdout, "skillswap ", log.LstdFlags|log.LUTC)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level == "debug" {
		logger.SetFlags(logger.Flags() | log.Lshortfile)
	}
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	app, err := container.NewContainer(initCtx, cfg, logger)
	cancelInit()
	if err != nil {
		logger.Fatalf("Failed to initialize application: %v", err)
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			logger.Printf("Server error: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	logger.Printf("Server started successfully on %s", app.Server.Addr())
	logger.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exitCode := 0
	if err := app.Server.Shutdown(ctx); err != nil {
		logger.Printf("Server shutdown error: %v", err)
		exitCode = 1
	}
	if err := app.Close(); err != nil {
		logger.Printf("Error closing application: %v", err)
		exitCode = 1
	}

	logger.Println("Server exited properly")
	os.Exit(exitCode)
}
