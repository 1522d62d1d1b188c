package main

//
//  @title           quotepulse API
//  @version         1.0
//  @description     Live quote aggregator: price snapshots, candlestick and volume series with 20/50-bar moving averages, and a self-refreshing dashboard stream.
//  @termsOfService  https://github.com/guttosm/quotepulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/quotepulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        quotes
//  @tag.description On-demand snapshots and chart series for a symbol and period
//
//  @tag.name        dashboard
//  @tag.description Live selection, latest refresh and websocket stream
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/quotepulse/config"
	_ "github.com/guttosm/quotepulse/docs" // swagger docs
	"github.com/guttosm/quotepulse/internal/app"
	"github.com/guttosm/quotepulse/internal/logger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// newServer builds the HTTP server.
//
// WriteTimeout is left at zero: websocket streams hold their connection open
// and set their own per-frame write deadlines.
func newServer(router http.Handler, port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve blocks until the server stops. A graceful shutdown is not an error.
func serve(server *http.Server) error {
	logger.L().Info().Str("addr", server.Addr).Msg("server starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// gracefulShutdown stops accepting connections and waits up to
// shutdownTimeout for in-flight requests.
func gracefulShutdown(server *http.Server) error {
	logger.L().Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	logger.L().Info().Msg("server exited gracefully")
	return nil
}

// run serves HTTP and drives refreshes until ctx is cancelled or either
// fails, then shuts both down and releases the app's resources.
func run(ctx context.Context, a *app.App, port string) error {
	server := newServer(a.Router, port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Driver.Run(gctx) })
	g.Go(func() error { return serve(server) })
	g.Go(func() error {
		<-gctx.Done()
		return gracefulShutdown(server)
	})

	err := g.Wait()
	a.Cleanup()
	return err
}

// main is the entry point of the quotepulse service.
//
// Flags:
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	config.LoadConfig()
	logger.Init()
	defer logger.Close()

	port := flag.String("port", config.AppConfig.Server.Port, "Port for the API server")
	flag.Parse()

	a, err := app.InitializeApp()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("app init error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, a, *port); err != nil {
		logger.L().Error().Err(err).Msg("server stopped with error")
		stop()
		logger.Close()
		os.Exit(1)
	}
}
