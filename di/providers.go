package di

import (
	"github.com/ZamarianPatrick/oasis-backend/catalog"
	"github.com/ZamarianPatrick/oasis-backend/providers"
	"github.com/ZamarianPatrick/oasis-backend/structures"
)

func provideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

func provideCatalog(conf *structures.Config, logger providers.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Load(conf.Catalog.Path)
	if err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "Catalog loaded from %s with %d offerings", conf.Catalog.Path, cat.Len())
	return cat, nil
}
