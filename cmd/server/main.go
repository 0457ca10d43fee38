package main

import (
	"context"
	"os"

	"github.com/ericmlantz/backend/internal/logging"
	"github.com/ericmlantz/backend/internal/server"
	"github.com/ericmlantz/backend/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
