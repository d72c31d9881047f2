package appentry

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/xtding233/cogtrain-backend/internal/config"
	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/identity"
	"github.com/xtding233/cogtrain-backend/internal/pkg/observability"
	"github.com/xtding233/cogtrain-backend/internal/report"
	"github.com/xtding233/cogtrain-backend/internal/session"
	"github.com/xtding233/cogtrain-backend/internal/store"
)

// Tuning loads the game tuning once, failing startup on an invalid file, and
// keeps it fresh with a polling watcher.
func Tuning(conf *config.Config, lc fx.Lifecycle) (*game.Loader, error) {
	loader := game.NewLoader(conf.TuningDir, conf.TuningProfile)
	cfg, err := loader.Reload()
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("evt.name", "tuning.loaded").
		Str("dir", conf.TuningDir).
		Str("profile", conf.TuningProfile).
		Str("version", cfg.Version).
		Msg("tuning loaded")

	if conf.TuningWatchInterval <= 0 {
		return loader, nil
	}

	w := game.NewWatcher(loader, conf.TuningWatchInterval)
	w.OnReload = func(_ game.Config, err error) {
		status := "ok"
		if err != nil {
			status = "failed"
		}
		observability.TuningReloads.WithLabelValues(status).Inc()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				w.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stop context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stop.Done():
				return stop.Err()
			}
		},
	})
	return loader, nil
}

func Reporter(conf *config.Config, sink report.Sink, lc fx.Lifecycle) *report.Reporter {
	r := report.NewReporter(sink,
		report.WithLocation(conf.Location()),
		report.WithTimeout(conf.ReportTimeout),
	)
	lc.Append(fx.Hook{
		OnStop: r.Close,
	})
	return r
}

func Manager(conf *config.Config, loader *game.Loader, r *report.Reporter, lc fx.Lifecycle) *session.Manager {
	m := session.NewManager(session.ManagerOptions{
		Tuning:   loader,
		Reporter: r,
		TTL:      conf.SessionTTL,
	})
	lc.Append(fx.Hook{
		// runs before the reporter drains, so aborted sessions never race a report
		OnStop: func(context.Context) error {
			m.Close()
			return nil
		},
	})
	return m
}

func Identity(docs store.Documents) *identity.Service {
	return identity.NewService(docs, nil)
}

type AnnounceIn struct {
	fx.In

	Config  *config.Config
	Manager *session.Manager
	NATS    *nats.Conn `optional:"true"`
}

// AnnounceWins publishes the game-won signal of every completed session on
// <NatsSubjectPrefix>.won when NATS is configured, and logs it otherwise.
func AnnounceWins(in AnnounceIn) {
	subject := in.Config.NatsSubjectPrefix + ".won"
	in.Manager.Subscribe(func(w session.Won) {
		evt := log.Info().
			Str("evt.name", "session.won").
			Str("session", w.SessionID).
			Str("player", w.PlayerID).
			Str("game", w.Game.String()).
			Bool("won", w.Won)
		if in.NATS == nil {
			evt.Msg("game won")
			return
		}

		b, err := json.Marshal(w)
		if err == nil {
			err = in.NATS.Publish(subject, b)
		}
		if err != nil {
			log.Error().Err(err).Str("evt.name", "session.won.publish").Msg("cannot announce win")
			return
		}
		evt.Str("subject", subject).Msg("game won")
	})
}
