package graph

import (
	"github.com/ZamarianPatrick/oasis-backend/api"
	"github.com/ZamarianPatrick/oasis-backend/garden"
	"github.com/ZamarianPatrick/oasis-backend/providers"
)

// Resolver serves the schema from the garden and its change feed.
type Resolver struct {
	garden     *garden.Garden
	controller api.Controller
	logger     providers.Logger
}

func NewResolver(g *garden.Garden, controller api.Controller, logger providers.Logger) *Resolver {
	return &Resolver{
		garden:     g,
		controller: controller,
		logger:     logger,
	}
}
