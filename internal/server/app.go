// Package server assembles the backend: it opens the configured storage
// backend, builds the services, serves the HTTP API and shuts everything down
// on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ericmlantz/backend/internal/cryptox"
	"github.com/ericmlantz/backend/internal/logging"
	"github.com/ericmlantz/backend/internal/server/config"
	"github.com/ericmlantz/backend/internal/server/httpapi"
	"github.com/ericmlantz/backend/internal/server/metrics"
	"github.com/ericmlantz/backend/internal/server/repositories/repomanager"
	"github.com/ericmlantz/backend/internal/server/services"
)

var newRepositoryManager = repomanager.New

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	handler *httpapi.Handler
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rm, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	authService, err := services.NewAuthService(rm.Credentials(), cryptox.NewBcryptHasher(c.PasswordHashCost), c, logger)
	if err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("auth init error: %w", err)
	}

	h := httpapi.NewHandler(logger, httpapi.Dependencies{
		Auth:           authService,
		Discovery:      services.NewDiscoveryService(rm.Users(), rm.Restaurants()),
		Profiles:       services.NewProfileService(rm.Users(), rm.Restaurants()),
		Matches:        services.NewMatchService(rm.Matches(), rm.Restaurants(), logger),
		Messages:       services.NewMessageService(rm.Messages()),
		Media:          services.NewMediaService(c),
		Health:         rm,
		Metrics:        metrics.New(),
		SecretKey:      []byte(c.SecretKey),
		AllowedOrigins: c.AllowedOrigins,
	})

	return &App{config: c, logger: logger, manager: rm, handler: h}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, httpapi.NewRouter(app.handler), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives, ctx is cancelled or the server fails,
// then releases the storage pool.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.manager.Close(closeCtx); err != nil {
		app.logger.Error(closeCtx, "storage close error", "error", err)
	}
	app.logger.Info(closeCtx, "App stopped")
}
