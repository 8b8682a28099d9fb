package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/angeloszaimis/static-server/config"
	"github.com/angeloszaimis/static-server/internal/handler"
	"github.com/angeloszaimis/static-server/internal/healthcheck"
	"github.com/angeloszaimis/static-server/internal/httpserver"
	"github.com/angeloszaimis/static-server/internal/metrics"
	"github.com/angeloszaimis/static-server/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	settings, err := cfg.Settings()
	if err != nil {
		slog.Error("failed to build settings", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(settings.LogLevel, true, settings.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector(settings.MetricsBufferSize, log)
	collector.Start(ctx)

	root := healthcheck.NewRoot(settings.Root)
	if !root.IsHealthy() {
		log.Warn("Root directory is not readable, requests will 404 until it is",
			slog.String("root", settings.Root))
	}
	go healthcheck.HealthCheck(ctx, root, settings.HealthCheckInterval, log, collector)

	srv, admin, err := buildServers(settings, log, collector, root)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 2)

	go func() {
		srvErrCh <- srv.Start()
	}()

	if settings.Debug {
		log.Info("Server is listening",
			slog.Int("port", settings.Port),
			slog.String("root", settings.Root))
	}

	if admin != nil {
		go func() {
			srvErrCh <- admin.Start()
		}()
		log.Info("Admin server is listening", slog.String("address", admin.Addr()))
	}

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		shutdown(log, srv, admin)
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			shutdown(log, srv, admin)
			os.Exit(1)
		}
	}
}

// buildServers creates the file server and, when an admin address is
// configured, the admin server. admin is nil otherwise.
func buildServers(
	settings config.Settings,
	log *slog.Logger,
	collector *metrics.Collector,
	root *healthcheck.Root,
) (srv *httpserver.Server, admin *httpserver.Server, err error) {
	staticHandler, err := handler.NewStaticHandler(log, settings, collector)
	if err != nil {
		return nil, nil, err
	}

	srv, err = httpserver.New(settings.Address(), staticHandler,
		httpserver.WithTimeouts(settings.ReadTimeout, settings.WriteTimeout, settings.IdleTimeout))
	if err != nil {
		return nil, nil, err
	}

	if settings.AdminAddress == "" {
		return srv, nil, nil
	}

	admin, err = httpserver.New(settings.AdminAddress, setupAdminRouter(collector, root))
	if err != nil {
		return nil, nil, err
	}

	return srv, admin, nil
}

func shutdown(log *slog.Logger, servers ...*httpserver.Server) {
	for _, s := range servers {
		if s == nil {
			continue
		}
		if err := s.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.String("address", s.Addr()), slog.Any("err", err))
		}
	}
}
