package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/sunday-game-service/internal/config"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
	"github.com/preston-bernstein/sunday-game-service/internal/server"
)

const appVersion = "dev"

func main() {
	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()

	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "sunday-game-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
