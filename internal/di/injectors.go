//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"swtd/internal"
	"swtd/internal/controllers"
	"swtd/internal/persistence"
	"swtd/internal/providers"
	"swtd/internal/services"
	"swtd/internal/structures"
	"swtd/internal/watcher"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		persistence.NewZstdCompressor,
		services.NewTrackerService,
		persistence.NewFileManager,
		persistence.NewScheduler,
		watcher.NewWatcher,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
