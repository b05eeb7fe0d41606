//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/steering/internal/core/observability/log"
	"github.com/zeusync/steering/internal/core/sim"
	"github.com/zeusync/steering/internal/server"
)

var coreSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	sim.NewWorldFromScenario,
)

func InitializeWorld(level log.Level, scenario *sim.Scenario) (*sim.World, error) {
	wire.Build(coreSet)
	return nil, nil
}

func InitializeServer(level log.Level, scenario *sim.Scenario, config server.Config) (*server.Server, error) {
	wire.Build(coreSet, server.NewServer)
	return nil, nil
}
