package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"trustable/internal/domain"
	"trustable/internal/infra/config"
	"trustable/internal/infra/httpserver"
	"trustable/internal/infra/mcpserver"
	"trustable/internal/infra/telemetry"
)

const componentMCP = "mcp"

// Application wires the MCP server with its ambient services.
type Application struct {
	ctx        context.Context
	configPath string
	overrides  func(*domain.Config)
	cfg        domain.Config

	logger   *zap.Logger
	level    zap.AtomicLevel
	loader   *config.Loader
	registry *prometheus.Registry
	health   *telemetry.HealthTracker
	server   *mcpserver.Server
}

// ApplicationOptions captures dependencies and settings for Application.
type ApplicationOptions struct {
	Context     context.Context
	ServeConfig ServeConfig
	Config      domain.Config
	Logger      *zap.Logger
	Level       zap.AtomicLevel
	Loader      *config.Loader
	Registry    *prometheus.Registry
	Health      *telemetry.HealthTracker
	Server      *mcpserver.Server
}

// NewApplication constructs the application and applies the configured log
// level.
func NewApplication(opts ApplicationOptions) *Application {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Application{
		ctx:        ctx,
		configPath: opts.ServeConfig.ConfigPath,
		overrides:  opts.ServeConfig.Overrides,
		cfg:        opts.Config,
		logger:     logger.Named("app"),
		level:      opts.Level,
		loader:     opts.Loader,
		registry:   opts.Registry,
		health:     opts.Health,
		server:     opts.Server,
	}
	if level, err := telemetry.ParseLevel(a.cfg.Log.Level); err == nil && a.level != (zap.AtomicLevel{}) {
		a.level.SetLevel(level)
	}
	return a
}

func (a *Application) Config() domain.Config {
	return a.cfg
}

func (a *Application) Server() *mcpserver.Server {
	return a.server
}

func (a *Application) Registry() *prometheus.Registry {
	return a.registry
}

// Run serves MCP on the configured transport and blocks until the context
// is canceled or the transport ends. The observability listener and the
// config watcher share its lifetime.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	a.logger.Info("configuration loaded",
		zap.String("config", a.configPath),
		telemetry.TransportField(string(a.cfg.Transport)),
		zap.String("server", a.cfg.Server.Name),
		zap.String("version", a.cfg.Server.Version),
		zap.Int("tools", len(a.server.ListTools())),
	)
	a.health.Register(componentMCP)

	var wg sync.WaitGroup
	a.startObservability(ctx, &wg)
	a.startWatcher(ctx, &wg)

	a.health.MarkReady(componentMCP)
	err := a.serve(ctx)
	a.health.MarkNotReady(componentMCP, "stopped")

	cancel()
	wg.Wait()
	return err
}

func (a *Application) serve(ctx context.Context) error {
	switch a.cfg.Transport {
	case domain.TransportStdio:
		return a.server.RunStdio(ctx)
	case domain.TransportStreamableHTTP:
		return httpserver.Serve(ctx, a.server.MCPServer(), httpserver.OptionsFromConfig(a.cfg), a.logger)
	default:
		return fmt.Errorf("unsupported transport: %s", a.cfg.Transport)
	}
}

func (a *Application) startObservability(ctx context.Context, wg *sync.WaitGroup) {
	obs := a.cfg.Observability
	if !obs.Metrics && !obs.Healthz {
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := telemetry.StartHTTPServer(ctx, telemetry.HTTPServerOptions{
			Addr:            obs.ListenAddress,
			EnableMetrics:   obs.Metrics,
			EnableHealthz:   obs.Healthz,
			Health:          a.health,
			Registry:        a.registry,
			ShutdownTimeout: time.Duration(a.cfg.ShutdownTimeoutSeconds) * time.Second,
		}, a.logger)
		if err != nil {
			a.logger.Warn("observability server failed", zap.Error(err))
		}
	}()
}

func (a *Application) startWatcher(ctx context.Context, wg *sync.WaitGroup) {
	if a.configPath == "" || a.level == (zap.AtomicLevel{}) {
		return
	}
	reload := config.LogLevelReloader(a.level, a.logger)
	watcher := config.NewWatcher(a.configPath, a.loader, a.logger, func(next domain.Config) {
		if a.overrides != nil {
			a.overrides(&next)
		}
		reload(next)
	})
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := watcher.Run(ctx); err != nil {
			a.logger.Warn("config watcher stopped", zap.Error(err))
		}
	}()
}
