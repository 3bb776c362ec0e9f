//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"github.com/ZamarianPatrick/oasis-backend/api"
	"github.com/ZamarianPatrick/oasis-backend/app"
	"github.com/ZamarianPatrick/oasis-backend/garden"
	"github.com/ZamarianPatrick/oasis-backend/graph"
	"github.com/ZamarianPatrick/oasis-backend/providers"
	"github.com/ZamarianPatrick/oasis-backend/store"
	"github.com/ZamarianPatrick/oasis-backend/structures"
)

var baseSet = wire.NewSet(
	providers.NewConfigProvider,
	provideLogger,
	providers.NewMetricsProvider,
	provideCatalog,
	store.NewStore,
	garden.New,
)

func InitApp(flags *structures.CliFlags) (*app.App, func(), error) {
	wire.Build(
		baseSet,
		providers.NewCacheProvider,
		api.NewController,
		api.NewNotifier,
		api.NewHandler,
		graph.NewResolver,
		graph.NewServer,
		api.NewRouter,
		app.NewApp,
	)

	return nil, nil, nil
}

func InitGarden(flags *structures.CliFlags) (*garden.Garden, func(), error) {
	wire.Build(
		baseSet,
		garden.NopNotifier,
	)

	return nil, nil, nil
}
