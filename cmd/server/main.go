package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/logo-scatter-service/internal/config"
	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
	"github.com/preston-bernstein/logo-scatter-service/internal/server"
)

const appVersion = "dev"

var exit = os.Exit

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "logo-scatter-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		exit(1)
		return
	}
	if err := srv.Run(ctx, stop); err != nil {
		logging.Error(logger, "server exited", err)
		exit(1)
	}
}
