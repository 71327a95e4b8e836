package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"glances-hub/internal/api"
	"glances-hub/internal/collector"
	"glances-hub/internal/config"
	"glances-hub/internal/glances"
	"glances-hub/internal/hub/version"
	"glances-hub/internal/registry"
)

type Hub struct {
	cfg        config.Config
	logger     *slog.Logger
	registry   *registry.Registry
	aggregator *collector.Aggregator
	health     *HealthStatus
	httpServer *http.Server
	grpcServer *grpc.Server
	probe      *grpchealth.Server
}

func New(cfg config.Config, logger *slog.Logger) (*Hub, error) {
	reg, err := registry.Load(cfg.ServersFile)
	if err != nil {
		if !cfg.AllowEmptyRegistry {
			return nil, fmt.Errorf("load servers registry: %w", err)
		}
		var regErr *registry.Error
		kind := "unknown"
		if errors.As(err, &regErr) {
			kind = regErr.Kind.String()
		}
		logger.Warn("servers registry unavailable, serving empty registry", "path", cfg.ServersFile, "kind", kind, "error", err)
		reg = registry.Empty()
	}

	client := glances.NewClient(cfg.FetchTimeout, cfg.HubVersion)
	health := NewHealthStatus(reg.Len())
	aggregator := collector.NewAggregator(logger, reg, client, cfg.FetchConcurrency)
	aggregator.SetObserver(health)

	versionFn := func() *version.GetVersionResponse {
		return version.Get(cfg, reg.Len())
	}
	handler := api.NewHandler(logger, aggregator, health, versionFn)

	grpcServer := grpc.NewServer()
	probe := grpchealth.NewServer()
	healthpb.RegisterHealthServer(grpcServer, probe)

	return &Hub{
		cfg:        cfg,
		logger:     logger,
		registry:   reg,
		aggregator: aggregator,
		health:     health,
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           handler.Router(),
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		grpcServer: grpcServer,
		probe:      probe,
	}, nil
}

func (h *Hub) Run(ctx context.Context) error {
	h.logger.Info("starting glances-hub",
		"version", h.cfg.HubVersion,
		"listen_addr", h.cfg.ListenAddr,
		"servers_file", h.cfg.ServersFile,
		"hosts", h.registry.Len(),
	)
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- h.run(runCtx)
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case runErr = <-runErrCh:
		// Listener failure or parent ctx canceled.
	case sig := <-sigCh:
		h.logger.Info("shutdown signal received, starting graceful shutdown", "signal", sig.String(), "timeout", h.cfg.ShutdownTimeout)
		cancelRun()

		graceTimer := time.NewTimer(h.cfg.ShutdownTimeout)
		defer graceTimer.Stop()

		select {
		case runErr = <-runErrCh:
		case sig2 := <-sigCh:
			h.logger.Warn("second signal received, forcing immediate shutdown", "signal", sig2.String())
			runErr = context.Canceled
		case <-graceTimer.C:
			h.logger.Warn("graceful shutdown timeout reached, forcing shutdown", "timeout", h.cfg.ShutdownTimeout)
			runErr = context.DeadlineExceeded
		}
	}

	h.shutdown()

	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}
	h.logger.Info("glances-hub stopped")
	return nil
}

func BuildLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	hOpts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, hOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, hOpts))
}
