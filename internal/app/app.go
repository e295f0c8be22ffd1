package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/metrics"
	"github.com/vk/assetgraph/internal/registry"
	"github.com/vk/assetgraph/modules/exec"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	ctx    context.Context
	logger *slog.Logger
	config *Config

	registry   *registry.Registry
	execModule *exec.Module

	promRegistry *prometheus.Registry
	metrics      *metrics.Metrics
	httpServer   *http.Server
}

// NewApp is the constructor for the main application. It returns an App
// with its own isolated logger, action registry and metrics registry.
// Extra modules are registered after the core ones.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	execModule, core := coreModules()
	reg := registry.New(append(core, modules...)...)
	logger.Debug("All Go modules registered.", "kinds", reg.Kinds())

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &App{
		outW:         outW,
		ctx:          ctx,
		logger:       logger,
		config:       cfg,
		registry:     reg,
		execModule:   execModule,
		promRegistry: promRegistry,
		metrics:      metrics.New(promRegistry),
	}
}

// Registry returns the application's action registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Gatherer exposes the metrics registry served on /metrics.
func (a *App) Gatherer() prometheus.Gatherer {
	return a.promRegistry
}
