package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/session"
)

var finished = time.Date(2025, 3, 1, 10, 30, 45, 0, time.UTC)

func result(k game.Kind, m session.Metrics, elapsed time.Duration) session.Result {
	return session.Result{
		SessionID:  "sess",
		PlayerID:   "1234",
		Game:       k,
		Won:        true,
		Metrics:    m,
		StartedAt:  finished.Add(-elapsed),
		FinishedAt: finished,
	}
}

func TestBuildOrientation(t *testing.T) {
	m := session.Metrics{Correct: 15, Incorrect: 3}
	m.Observe(1900 * time.Millisecond)
	m.Observe(2900 * time.Millisecond)

	prefix, rec, err := Build(result(game.Orientation, m, 65700*time.Millisecond), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "orientacion", prefix)
	assert.Equal(t, OrientationRecord{
		Errors:          "3",
		AverageResponse: 2,
		TimeUsed:        65,
		Date:            "2025-03-01 10:30:45",
	}, rec)

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errores":"3","tiempoPromedioRespuesta":2,"tiempoUsado":65,"fecha":"2025-03-01 10:30:45"}`, string(b))
}

func TestBuildPerGame(t *testing.T) {
	m := session.Metrics{
		Correct:   20,
		Incorrect: 1,
		Requested: []string{"el perro come una manzana", "la niña lee un libro"},
		Given:     []string{"el perro come una manzana", "la niña lee un libro"},
	}
	m.Observe(12 * time.Second)
	m.Observe(8500 * time.Millisecond)

	cases := []struct {
		game   game.Kind
		prefix string
		want   any
	}{
		{game.Memory, "memoria", MemoryRecord{Errors: 1, TimeUsed: 90, Date: "2025-03-01 10:30:45"}},
		{game.Arithmetic, "calculo", ArithmeticRecord{Errors: 1, AverageResponse: 10, TimeUsed: 20, Date: "2025-03-01 10:30:45"}},
		{game.Language, "lenguaje", LanguageRecord{
			RequestedWords: "el perro come una manzana|la niña lee un libro",
			GivenSentences: "el perro come una manzana|la niña lee un libro",
			TimeUsed:       90,
			Date:           "2025-03-01 10:30:45",
		}},
		{game.Puzzle, "rompecabezas", PuzzleRecord{ErrorPercent: 4, TimeUsed: 20, Date: "2025-03-01 10:30:45"}},
		{game.Spatial, "espacial", SpatialRecord{AverageResponse: 10, TimeUsed: 20, Date: "2025-03-01 10:30:45"}},
	}
	for _, c := range cases {
		t.Run(string(c.game), func(t *testing.T) {
			prefix, rec, err := Build(result(c.game, m, 90*time.Second), time.UTC)
			require.NoError(t, err)
			assert.Equal(t, c.prefix, prefix)
			assert.Equal(t, c.want, rec)
		})
	}

	_, _, err := Build(session.Result{Game: "chess"}, time.UTC)
	assert.ErrorIs(t, err, game.ErrUnknownGame)
}

func TestBuildZeroAttempts(t *testing.T) {
	_, rec, err := Build(result(game.Puzzle, session.Metrics{}, 0), time.UTC)
	require.NoError(t, err)
	assert.Zero(t, rec.(PuzzleRecord).ErrorPercent)
}

type write struct {
	path   string
	record any
}

type fakeSink struct {
	mu     sync.Mutex
	writes []write
	err    error
}

func (f *fakeSink) Write(_ context.Context, path string, record any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, write{path, record})
	return f.err
}

func TestReporterWritesRecord(t *testing.T) {
	sink := &fakeSink{}
	r := NewReporter(sink, WithLocation(time.UTC), WithIDs(func() string { return "rec-1" }))

	r.Submit(result(game.Memory, session.Metrics{Incorrect: 2}, 42*time.Second))
	require.NoError(t, r.Close(context.Background()))

	require.Len(t, sink.writes, 1)
	assert.Equal(t, "memoria/1234/rec-1", sink.writes[0].path)
	assert.Equal(t, MemoryRecord{Errors: 2, TimeUsed: 42, Date: "2025-03-01 10:30:45"}, sink.writes[0].record)
}

func TestReporterSkipsAnonymousSessions(t *testing.T) {
	sink := &fakeSink{}
	r := NewReporter(sink)

	res := result(game.Spatial, session.Metrics{}, time.Second)
	res.PlayerID = ""
	r.Submit(res)
	require.NoError(t, r.Close(context.Background()))
	assert.Empty(t, sink.writes)
}

func TestReporterSwallowsWriteFailures(t *testing.T) {
	sink := &fakeSink{err: errors.New("store down")}
	r := NewReporter(sink)

	r.Submit(result(game.Arithmetic, session.Metrics{}, time.Second))
	r.Submit(result(game.Arithmetic, session.Metrics{}, time.Second))
	require.NoError(t, r.Close(context.Background()))
	assert.Len(t, sink.writes, 2)
}

type blockingSink struct{ release chan struct{} }

func (b blockingSink) Write(ctx context.Context, _ string, _ any) error {
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestReporterCloseHonorsContext(t *testing.T) {
	sink := blockingSink{release: make(chan struct{})}
	r := NewReporter(sink)
	r.Submit(result(game.Memory, session.Metrics{}, time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Close(ctx), context.DeadlineExceeded)

	close(sink.release)
	require.NoError(t, r.Close(context.Background()))
}

func TestReporterDropsResultsAfterClose(t *testing.T) {
	sink := &fakeSink{}
	r := NewReporter(sink)

	r.Submit(result(game.Puzzle, session.Metrics{}, time.Second))
	require.NoError(t, r.Close(context.Background()))
	r.Submit(result(game.Puzzle, session.Metrics{}, time.Second))
	require.NoError(t, r.Close(context.Background()))

	assert.Len(t, sink.writes, 1)
}

func TestReporterSubmitWhileClosing(t *testing.T) {
	sink := blockingSink{release: make(chan struct{})}
	r := NewReporter(sink)
	r.Submit(result(game.Memory, session.Metrics{}, time.Second))

	closed := make(chan error, 1)
	go func() { closed <- r.Close(context.Background()) }()
	for i := 0; i < 10; i++ {
		r.Submit(result(game.Memory, session.Metrics{}, time.Second))
	}

	close(sink.release)
	require.NoError(t, <-closed)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "calculo/1234/abc", Path("calculo", "1234", "abc"))
}
