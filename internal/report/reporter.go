package report

import (
	"context"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/cogtrain-backend/internal/pkg/observability"
	"github.com/xtding233/cogtrain-backend/internal/session"
)

// Sink persists one record at a slash-separated path.
type Sink interface {
	Write(ctx context.Context, path string, record any) error
}

// Reporter writes the record of every completed session in the background.
// Writes are never retried; failures are logged and counted.
type Reporter struct {
	sink    Sink
	loc     *time.Location
	timeout time.Duration
	newID   func() string

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

type Option func(*Reporter)

// WithLocation sets the time zone of the fecha field.
func WithLocation(loc *time.Location) Option { return func(r *Reporter) { r.loc = loc } }

// WithTimeout bounds a single write.
func WithTimeout(d time.Duration) Option { return func(r *Reporter) { r.timeout = d } }

// WithIDs replaces the record id generator.
func WithIDs(f func() string) Option { return func(r *Reporter) { r.newID = f } }

func NewReporter(sink Sink, opts ...Option) *Reporter {
	r := &Reporter{
		sink:    sink,
		loc:     time.Local,
		timeout: 10 * time.Second,
		newID:   func() string { return xid.New().String() },
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Submit starts writing the record of res and returns immediately.
func (r *Reporter) Submit(res session.Result) {
	game := res.Game.String()
	if res.PlayerID == "" {
		observability.ReportWrites.WithLabelValues(game, "skipped").Inc()
		log.Warn().
			Str("evt.name", "report.skipped").
			Str("session", res.SessionID).
			Str("game", game).
			Msg("no player id, result not reported")
		return
	}

	prefix, record, err := Build(res, r.loc)
	if err != nil {
		observability.ReportWrites.WithLabelValues(game, "failed").Inc()
		log.Error().Err(err).Str("evt.name", "report.build").Str("session", res.SessionID).Msg("cannot build record")
		return
	}
	path := Path(prefix, res.PlayerID, r.newID())

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		observability.ReportWrites.WithLabelValues(game, "dropped").Inc()
		log.Warn().
			Str("evt.name", "report.dropped").
			Str("session", res.SessionID).
			Str("path", path).
			Msg("reporter closed, result not reported")
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		start := time.Now()
		err := r.sink.Write(ctx, path, record)
		observability.ReportWriteDuration.WithLabelValues(game).Observe(time.Since(start).Seconds())
		if err != nil {
			observability.ReportWrites.WithLabelValues(game, "failed").Inc()
			log.Error().
				Err(err).
				Str("evt.name", "report.write.failed").
				Str("session", res.SessionID).
				Str("path", path).
				Msg("failed to write result record")
			return
		}
		observability.ReportWrites.WithLabelValues(game, "ok").Inc()
		log.Info().
			Str("evt.name", "report.written").
			Str("session", res.SessionID).
			Str("path", path).
			Msg("result record written")
	}()
}

// Close stops accepting results and waits for in-flight writes until ctx is done.
func (r *Reporter) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
