package graph

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/ZamarianPatrick/oasis-backend/api"
	"github.com/ZamarianPatrick/oasis-backend/catalog"
	"github.com/ZamarianPatrick/oasis-backend/garden"
	"github.com/ZamarianPatrick/oasis-backend/providers"
	"github.com/ZamarianPatrick/oasis-backend/store"
	"github.com/gorilla/websocket"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// NewServer serves queries and mutations over GET and POST and the
// plantChanged subscription over websockets.
func NewServer(r *Resolver) *handler.Server {
	srv := handler.New(NewExecutableSchema(Config{Resolvers: r}))

	srv.AddTransport(transport.Websocket{
		KeepAlivePingInterval: 10 * time.Second,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(req *http.Request) bool { return true },
		},
	})
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New(1000))
	srv.Use(extension.AutomaticPersistedQuery{Cache: lru.New(100)})
	srv.SetErrorPresenter(r.presentError)

	return srv
}

// presentError gives domain errors a stable extensions.code. Storage
// failures are logged and reported without their cause.
func (r *Resolver) presentError(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)

	var (
		nre *garden.NotReadyError
		pe  *garden.PersistenceError
		iv  *store.InvariantViolation
	)

	switch {
	case errors.As(err, &nre):
		gqlErr.Message = garden.NotReadyMessage
		gqlErr.Extensions = map[string]interface{}{
			"code":  "NOT_READY",
			"title": garden.NotReadyTitle,
			"phase": nre.Phase,
		}
	case errors.Is(err, catalog.ErrUnknownPlant):
		gqlErr.Extensions = map[string]interface{}{"code": "NOT_FOUND"}
	case errors.Is(err, garden.ErrInvalidAmount), errors.Is(err, garden.ErrNicknameLength), errors.Is(err, api.ErrNoSelection):
		gqlErr.Extensions = map[string]interface{}{"code": "BAD_USER_INPUT"}
	case errors.Is(err, errIntrospection):
		gqlErr.Extensions = map[string]interface{}{"code": "INTROSPECTION_DISABLED"}
	case errors.As(err, &iv):
		r.logger.Errorf(providers.TypeHTTP, "graphql %v: %s", gqlErr.Path, err)
		gqlErr.Message = "plant data is inconsistent"
		gqlErr.Extensions = map[string]interface{}{"code": "INTERNAL"}
	case errors.As(err, &pe):
		r.logger.Errorf(providers.TypeHTTP, "graphql %v: %s", gqlErr.Path, err)
		gqlErr.Message = "could not save your plant, try again"
		gqlErr.Extensions = map[string]interface{}{"code": "INTERNAL"}
	}

	return gqlErr
}
