package app

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"go.uber.org/zap"

	"trustable/internal/domain"
	"trustable/internal/infra/config"
	"trustable/internal/infra/mcpserver"
	"trustable/internal/infra/telemetry"
	"trustable/internal/tools"
)

// ServeConfig selects the config file and command-line overrides.
type ServeConfig struct {
	ConfigPath string
	// Overrides is applied after the file and environment are merged.
	Overrides func(*domain.Config)
}

func (c ServeConfig) apply(cfg *domain.Config) {
	if c.Overrides != nil {
		c.Overrides(cfg)
	}
}

func NewConfigLoader(logger *zap.Logger) *config.Loader {
	return config.NewLoader(logger)
}

// NewConfig loads the config file and applies overrides. Overrides are
// validated again so a flag cannot smuggle in an invalid value.
func NewConfig(ctx context.Context, serve ServeConfig, loader *config.Loader) (domain.Config, error) {
	cfg, err := loader.Load(ctx, serve.ConfigPath)
	if err != nil {
		return domain.Config{}, err
	}
	serve.apply(&cfg)
	if errs := config.Validate(cfg); len(errs) > 0 {
		return domain.Config{}, errors.New(strings.Join(errs, "; "))
	}
	return cfg, nil
}

func NewServerIdentity(cfg domain.Config) domain.ServerIdentity {
	return cfg.Server
}

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(versioncollector.NewCollector("trustable_mcp"))
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewHealthTracker() *telemetry.HealthTracker {
	return telemetry.NewHealthTracker()
}

func NewDispatcher(logger *zap.Logger, metrics domain.Metrics) (*tools.Dispatcher, error) {
	return tools.NewDispatcher(tools.DispatcherOptions{
		Logger:  logger,
		Metrics: metrics,
	})
}

func NewMCPServer(identity domain.ServerIdentity, dispatcher *tools.Dispatcher, logger *zap.Logger) *mcpserver.Server {
	return mcpserver.New(identity, dispatcher, logger)
}
