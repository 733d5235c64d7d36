// Package server initializes and runs the application server. It loads the
// credential store, binds the listening socket, handles shutdown signals,
// and drives the event loop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gateline/gateline/internal/common"
	"github.com/gateline/gateline/internal/logging"
	"github.com/gateline/gateline/internal/server/config"
	"github.com/gateline/gateline/internal/server/eventloop"
	"github.com/gateline/gateline/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	loop   *eventloop.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	if cfg.UsersFile == "" {
		return nil, common.ErrorNoUsersFile
	}

	store, err := users.LoadFile(cfg.UsersFile)
	if err != nil {
		return nil, fmt.Errorf("credential store init error: %w", err)
	}

	logger.Info(context.Background(), "credentials loaded", "users", store.Len())

	loop, err := eventloop.New(cfg.EndpointAddr, store, cfg.PollTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("listener init error: %w", err)
	}

	return &App{config: cfg, logger: logger, loop: loop}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.loop.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	app.logger.Info(ctx, "Stopped.")
}
