package server

import (
	"go.uber.org/fx"

	"github.com/xtding233/cogtrain-backend/internal/server/grpcserver"
	"github.com/xtding233/cogtrain-backend/internal/server/httpserver"
	"github.com/xtding233/cogtrain-backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups),
		fx.Provide(grpcserver.Create),
	)
}

// Serve starts the listeners. It is kept apart from Module so tests can
// build the app without binding ports.
func Serve() fx.Option {
	return fx.Invoke(
		httpserver.Run,
		grpcserver.Run,
	)
}
