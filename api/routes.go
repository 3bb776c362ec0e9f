package api

import (
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/ZamarianPatrick/oasis-backend/providers"
	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(conf *structures.Config, h *Handler, gql *handler.Server, metrics providers.MetricsProviderInterface) *gin.Engine {
	if !conf.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)
	if conf.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	instrumented := r.Group("/", providers.MetricsMiddleware(metrics))
	instrumented.GET("/catalog", h.Catalog)
	instrumented.GET("/plants", h.History)
	instrumented.GET("/plants/current", h.CurrentPlant)
	instrumented.PATCH("/plants/current", h.Rename)
	instrumented.POST("/plants/current/water", h.Water)
	instrumented.POST("/shop/replace", h.Replace)

	if gql != nil {
		r.GET("/playground", gin.WrapH(playground.Handler("Oasis", "/query")))
		instrumented.Any("/query", gin.WrapH(gql))
	}

	return r
}
