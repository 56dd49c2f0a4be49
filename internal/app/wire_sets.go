//go:build wireinject
// +build wireinject

package app

import "github.com/google/wire"

var CoreInfraSet = wire.NewSet(
	NewLogging,
	NewLogger,
	NewLogLevel,
	NewConfigLoader,
	NewConfig,
	NewMetricsRegistry,
	NewMetrics,
	NewHealthTracker,
)

var ToolSet = wire.NewSet(
	NewServerIdentity,
	NewDispatcher,
	NewMCPServer,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	ToolSet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)
