package infra

import (
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/xtding233/cogtrain-backend/internal/config"
	"github.com/xtding233/cogtrain-backend/internal/report"
	"github.com/xtding233/cogtrain-backend/internal/store"
)

type StoresIn struct {
	fx.In

	Config *config.Config
	Redis  *redis.Client `optional:"true"`
	NATS   *nats.Conn    `optional:"true"`
}

type StoresOut struct {
	fx.Out

	Documents store.Documents
	Sink      report.Sink
}

// Stores picks the persistence backends from what is configured. Player
// documents live in Firebase, else Redis, else memory. Result records go to
// every configured backend.
func Stores(in StoresIn) StoresOut {
	var (
		docs    store.Documents
		writers store.Multi
	)

	if in.Config.FirebaseURL != "" {
		fb := store.NewFirebase(in.Config.FirebaseURL, store.WithAuth(in.Config.FirebaseSecret))
		docs = fb
		writers = append(writers, fb)
	}
	if in.Redis != nil {
		rs := store.NewRedis(in.Redis, in.Config.RedisPrefix)
		if docs == nil {
			docs = rs
		}
		writers = append(writers, rs)
	}
	if in.NATS != nil {
		writers = append(writers, store.NewNATS(in.NATS, in.Config.NatsSubjectPrefix))
	}

	if docs == nil || len(writers) == 0 {
		mem := store.NewMemory()
		if docs == nil {
			log.Warn().
				Str("evt.name", "infra.stores").
				Msg("no document store configured, players are kept in memory")
			docs = mem
		}
		if len(writers) == 0 {
			log.Warn().
				Str("evt.name", "infra.stores").
				Msg("no result sink configured, records are kept in memory")
			writers = append(writers, mem)
		}
	}

	return StoresOut{
		Documents: docs,
		Sink:      writers,
	}
}
