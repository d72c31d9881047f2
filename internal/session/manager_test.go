package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/cogtrain-backend/internal/game"
)

type staticTuning game.Config

func (t staticTuning) Current() game.Config { return game.Config(t) }

type captureReporter struct {
	mu      sync.Mutex
	results []Result
}

func (c *captureReporter) Submit(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func newManager(rep Reporter) *Manager {
	return NewManager(ManagerOptions{
		Tuning:   staticTuning(game.Defaults()),
		Reporter: rep,
		Clock:    NewManualClock(t0),
		TTL:      time.Hour,
	})
}

func TestManagerStartUnknownGame(t *testing.T) {
	m := newManager(nil)
	_, err := m.Start(StartRequest{Game: "chess", PlayerID: "1234"})
	assert.ErrorIs(t, err, game.ErrUnknownGame)
	assert.Zero(t, m.Len())
}

func TestManagerNotifiesWonSessions(t *testing.T) {
	rep := &captureReporter{}
	m := newManager(rep)

	var observed []Won
	m.Subscribe(func(w Won) { observed = append(observed, w) })

	goal := 2
	s, err := m.Start(StartRequest{
		Game:      "Spatial",
		PlayerID:  "4321",
		Overrides: game.Overrides{Goal: &goal, Instant: true},
		Seed:      ptr(uint64(3)),
	})
	require.NoError(t, err)
	assert.Equal(t, game.Spatial, s.Game)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	for s.State() != Complete {
		_, _, err := m.Submit(s.ID, Response{TargetID: s.Round().TargetID})
		require.NoError(t, err)
	}

	require.Len(t, rep.results, 1)
	assert.Equal(t, "4321", rep.results[0].PlayerID)
	require.Len(t, observed, 1)
	assert.Equal(t, s.ID, observed[0].SessionID)
	assert.True(t, observed[0].Won)

	select {
	case w := <-m.Won():
		assert.Equal(t, game.Spatial, w.Game)
		assert.True(t, w.Won)
	default:
		t.Fatal("expected a won notification on the channel")
	}
}

func TestManagerLostSessionStillSignalsGameEnd(t *testing.T) {
	rep := &captureReporter{}
	m := newManager(rep)
	var observed []Won
	m.Subscribe(func(w Won) { observed = append(observed, w) })

	s, err := m.Start(StartRequest{Game: game.Arithmetic, PlayerID: "1000", Overrides: game.Overrides{Instant: true}})
	require.NoError(t, err)
	for s.State() != Complete {
		r := s.Round()
		_, _, err := m.Submit(s.ID, Response{Option: ptr((r.Answer + 1) % len(r.Options))})
		require.NoError(t, err)
	}
	require.Len(t, rep.results, 1)
	assert.False(t, rep.results[0].Won)

	require.Len(t, observed, 1)
	assert.Equal(t, s.ID, observed[0].SessionID)
	assert.Equal(t, game.Arithmetic, observed[0].Game)
	assert.False(t, observed[0].Won)

	select {
	case w := <-m.Won():
		assert.Equal(t, s.ID, w.SessionID)
		assert.False(t, w.Won)
	default:
		t.Fatal("expected the game-won signal for a lost session")
	}
}

func TestManagerAbortForgetsSession(t *testing.T) {
	m := newManager(nil)
	s, err := m.Start(StartRequest{Game: game.Orientation, PlayerID: "1234"})
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())

	require.NoError(t, m.Abort(s.ID))
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Abort(s.ID), ErrSessionNotFound)

	_, err = s.Submit(Response{})
	assert.ErrorIs(t, err, ErrSessionAborted)
}

func TestManagerRestart(t *testing.T) {
	m := newManager(nil)
	s, err := m.Start(StartRequest{Game: game.Memory, PlayerID: "1234", Overrides: game.Overrides{Instant: true}})
	require.NoError(t, err)

	_, _, err = m.Submit(s.ID, Response{Color: ptr((s.Round().Pattern[0] + 1) % 6)})
	require.NoError(t, err)
	require.Equal(t, 1, s.Metrics().Incorrect)

	v, err := m.Restart(s.ID)
	require.NoError(t, err)
	assert.Zero(t, v.Incorrect)
	assert.Equal(t, AwaitingResponse, v.State)

	_, err = m.Restart("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerCloseAbortsEverything(t *testing.T) {
	m := newManager(nil)
	a, err := m.Start(StartRequest{Game: game.Puzzle, PlayerID: "1"})
	require.NoError(t, err)
	b, err := m.Start(StartRequest{Game: game.Language, PlayerID: "2"})
	require.NoError(t, err)

	m.Close()
	assert.Zero(t, m.Len())
	assert.ErrorIs(t, a.Restart(), ErrSessionAborted)
	assert.ErrorIs(t, b.Restart(), ErrSessionAborted)
}
