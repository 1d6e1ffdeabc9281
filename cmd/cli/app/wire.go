//go:build wireinject
// +build wireinject

package app

import (
	"vdash/internal/adapters/filesystem"
	"vdash/internal/adapters/keyring"
	"vdash/internal/adapters/kubernetes"
	"vdash/internal/adapters/patcher"
	"vdash/internal/adapters/terminal"
	"vdash/internal/adapters/velero_api"
	"vdash/internal/core"
	"vdash/internal/core/handler"
	"vdash/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	keyring.ProvideZalandoKeyring,
	terminal.ProvideTerminalInput,
	wire.Bind(new(ports.TerminalInput), new(*terminal.TerminalInput)),
	patcher.ProvideApplier,
	wire.Bind(new(ports.PatchApplier), new(*patcher.Applier)),
	kubernetes.ProvideConfigMapPublisher,
	wire.Bind(new(ports.ConfigMapPublisher), new(*kubernetes.ConfigMapPublisher)),
)

// RemoteSet provides the routed client for the dashboard backend
var RemoteSet = wire.NewSet(
	core.ProvideRequestRouter,
	velero_api.ProvideClient,
	wire.Bind(new(ports.VeleroAPI), new(*velero_api.Client)),
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvideFileSystemClusterStore,
	wire.Bind(new(core.ClusterStore), new(*core.FileSystemClusterStore)),
	core.ProvideClusterRegistry,
	core.ProvideRestoreWorkflow,
	core.ProvideRulePreviewer,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectClusterRegistry() (*core.ClusterRegistry, error) {
	wire.Build(
		Adapter,
		core.ProvideFileSystemClusterStore,
		wire.Bind(new(core.ClusterStore), new(*core.FileSystemClusterStore)),
		core.ProvideClusterRegistry,
	)
	return &core.ClusterRegistry{}, nil
}

func InjectClusterCommandHandler() (handler.ClusterCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideClusterCommandHandler,
	)
	return handler.ClusterCommandHandler{}, nil
}

func InjectRestoreCommandHandler() (handler.RestoreCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		RemoteSet,
		handler.ProvideRestoreCommandHandler,
	)
	return handler.RestoreCommandHandler{}, nil
}

func InjectRulesCommandHandler() (handler.RulesCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideRulesCommandHandler,
	)
	return handler.RulesCommandHandler{}, nil
}

func InjectConfigCommandHandler() (handler.ConfigCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideConfigCommandHandler,
	)
	return handler.ConfigCommandHandler{}, nil
}
