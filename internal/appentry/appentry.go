package appentry

import (
	"time"

	"go.uber.org/fx"

	"github.com/xtding233/cogtrain-backend/internal/config"
	"github.com/xtding233/cogtrain-backend/internal/controller"
	"github.com/xtding233/cogtrain-backend/internal/infra"
	"github.com/xtding233/cogtrain-backend/internal/pkg/logger"
	"github.com/xtding233/cogtrain-backend/internal/server"
)

// Options assembles the service. The configuration is parsed and the logger
// configured before fx starts, since both are needed to log fx itself.
func Options(conf *config.Config, additionalOpts ...fx.Option) []fx.Option {
	logger.Configure(conf)

	baseOpts := []fx.Option{
		fx.WithLogger(logger.Fx),

		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Services
		fx.Provide(
			Tuning,
			Reporter,
			Manager,
			Identity,
		),
		fx.Invoke(AnnounceWins),

		// Controllers
		controller.Module(),

		fx.StartTimeout(10 * time.Second),
		// fiber's IdleTimeout bounds the HTTP shutdown; this is the backstop
		fx.StopTimeout(2 * time.Minute),
	}

	return append(baseOpts, additionalOpts...)
}

// New builds the serving application.
func New(conf *config.Config) *fx.App {
	return fx.New(Options(conf, server.Serve())...)
}
