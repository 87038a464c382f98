// Package server wires the gophauth server: it opens the configured user
// store, builds the auth service and runs the HTTP and gRPC transports until
// a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/password"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/rest"
	"github.com/dmitrijs2005/gophauth/internal/server/services"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

var (
	logOutput io.Writer = os.Stdout

	newRepositoryManager = repomanager.New
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	authService *services.AuthService
	metrics     *metrics.Registry
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(logOutput, c.LogLevel)
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(c.HashAlgorithm, c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	tokens, err := auth.NewTokenService(auth.Config{
		Secret: []byte(c.SecretKey),
		TTL:    c.TokenTTL,
		Issuer: c.TokenIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	rm, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	m := metrics.NewRegistry()
	as, err := services.NewAuthService(rm.Users(), hasher, tokens,
		services.WithObserver(m),
		services.WithLogger(logger),
	)
	if err != nil {
		rm.Close()
		return nil, fmt.Errorf("auth service init error: %w", err)
	}

	return &App{config: c, logger: logger, repomanager: rm, authService: as, metrics: m}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves both transports until ctx is cancelled, a signal arrives or one
// of the servers fails. The user store is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreBackend)

	app.initSignalHandler(ctx, cancelFunc)

	router := rest.NewRouter(app.authService, app.metrics, app.metrics.Handler(), app.logger)
	httpServer := rest.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger)
	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService, app.metrics)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, f func(context.Context) error) {
		defer wg.Done()
		if err := f(ctx); err != nil {
			app.logger.Error(ctx, "server failed", "server", name, "error", err)
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
			cancelFunc()
		}
	}

	wg.Add(2)
	go run("http", httpServer.Run)
	go run("grpc", grpcServer.Run)
	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}

	app.logger.Info(ctx, "App stopped")
	return errors.Join(errs...)
}
