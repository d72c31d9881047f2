package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/pkg/observability"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// Won is the game-won signal, published once for every completed session.
// Won carries the verdict: a lost arithmetic session still ends the game.
type Won struct {
	SessionID string    `json:"sessionId"`
	PlayerID  string    `json:"playerId"`
	Game      game.Kind `json:"game"`
	Won       bool      `json:"won"`
	At        time.Time `json:"at"`
}

// Reporter receives every completed session.
type Reporter interface {
	Submit(Result)
}

// Tuning provides the current game tuning.
type Tuning interface {
	Current() game.Config
}

// StartRequest describes a session to create.
type StartRequest struct {
	Game      game.Kind
	PlayerID  string
	Overrides game.Overrides
	// Seed makes the rounds of the session replicable.
	Seed *uint64
}

// ManagerOptions configure a Manager.
type ManagerOptions struct {
	Tuning   Tuning
	Reporter Reporter
	Clock    Clock
	// TTL expires sessions nobody touched for that long.
	TTL time.Duration
	// WonBuffer is the capacity of the Won channel.
	WonBuffer int
}

// Manager owns the live sessions.
type Manager struct {
	tuning   Tuning
	reporter Reporter
	clock    Clock
	sessions *cache.Cache

	mu        sync.RWMutex
	observers []func(Won)
	won       chan Won
}

func NewManager(o ManagerOptions) *Manager {
	if o.Clock == nil {
		o.Clock = RealClock{}
	}
	if o.TTL <= 0 {
		o.TTL = 30 * time.Minute
	}
	if o.WonBuffer <= 0 {
		o.WonBuffer = 64
	}
	m := &Manager{
		tuning:   o.Tuning,
		reporter: o.Reporter,
		clock:    o.Clock,
		sessions: cache.New(o.TTL, o.TTL/2),
		won:      make(chan Won, o.WonBuffer),
	}
	m.sessions.OnEvicted(func(id string, v interface{}) {
		v.(*Session).Abort()
		observability.SessionsLive.Dec()
		log.Debug().Str("evt.name", "session.evicted").Str("session", id).Msg("session dropped")
	})
	return m
}

// Start creates a session and presents its first round.
func (m *Manager) Start(req StartRequest) (*Session, error) {
	k, err := game.ParseKind(string(req.Game))
	if err != nil {
		return nil, err
	}
	req.Game = k
	if req.PlayerID == "" {
		log.Warn().
			Str("evt.name", "session.anonymous").
			Str("game", req.Game.String()).
			Msg("session started without player id, results will not be reported")
	}

	cfg := game.Resolve(m.tuning.Current(), req.Game, req.Overrides)
	var rng round.RandomSource
	if req.Seed != nil {
		rng = round.NewSeededRNG(*req.Seed)
	}
	s, err := New(Options{
		ID:         xid.New().String(),
		PlayerID:   req.PlayerID,
		Game:       req.Game,
		Config:     cfg,
		RNG:        rng,
		Clock:      m.clock,
		OnComplete: m.complete,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Start(); err != nil {
		return nil, err
	}

	m.sessions.SetDefault(s.ID, s)
	observability.SessionsStarted.WithLabelValues(req.Game.String()).Inc()
	observability.SessionsLive.Inc()
	log.Info().
		Str("evt.name", "session.started").
		Str("session", s.ID).
		Str("game", req.Game.String()).
		Str("player", req.PlayerID).
		Msg("session started")
	return s, nil
}

// Get returns a live session and extends its lifetime.
func (m *Manager) Get(id string) (*Session, error) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s := v.(*Session)
	m.sessions.SetDefault(id, s)
	return s, nil
}

// Submit forwards a response to a session.
func (m *Manager) Submit(id string, resp Response) (Outcome, View, error) {
	s, err := m.Get(id)
	if err != nil {
		return Outcome{}, View{}, err
	}
	out, err := s.Submit(resp)
	if err != nil {
		return Outcome{}, View{}, err
	}
	if out.Counted {
		observability.Responses.WithLabelValues(s.Game.String(), verdict(out)).Inc()
	}
	return out, s.View(), nil
}

// Restart resets a session to its first round.
func (m *Manager) Restart(id string) (View, error) {
	s, err := m.Get(id)
	if err != nil {
		return View{}, err
	}
	if err := s.Restart(); err != nil {
		return View{}, err
	}
	return s.View(), nil
}

// Abort cancels a session and forgets it.
func (m *Manager) Abort(id string) error {
	if _, ok := m.sessions.Get(id); !ok {
		return ErrSessionNotFound
	}
	m.sessions.Delete(id)
	return nil
}

// Len is the number of live sessions.
func (m *Manager) Len() int { return m.sessions.ItemCount() }

// Subscribe registers fn to be called for every completed session.
func (m *Manager) Subscribe(fn func(Won)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Won delivers completed sessions. Notifications are dropped while the buffer is full.
func (m *Manager) Won() <-chan Won { return m.won }

// Close aborts every live session.
func (m *Manager) Close() {
	for id := range m.sessions.Items() {
		m.sessions.Delete(id)
	}
}

func (m *Manager) complete(r Result) {
	observability.SessionsCompleted.WithLabelValues(r.Game.String(), strconv.FormatBool(r.Won)).Inc()
	log.Info().
		Str("evt.name", "session.completed").
		Str("session", r.SessionID).
		Str("game", r.Game.String()).
		Bool("won", r.Won).
		Int("correct", r.Metrics.Correct).
		Int("incorrect", r.Metrics.Incorrect).
		Dur("elapsed", r.Elapsed()).
		Msg("session completed")

	if m.reporter != nil {
		m.reporter.Submit(r)
	}

	w := Won{SessionID: r.SessionID, PlayerID: r.PlayerID, Game: r.Game, Won: r.Won, At: r.FinishedAt}
	m.mu.RLock()
	observers := append([]func(Won){}, m.observers...)
	m.mu.RUnlock()
	for _, fn := range observers {
		fn(w)
	}
	select {
	case m.won <- w:
	default:
		log.Warn().Str("evt.name", "session.won.dropped").Str("session", r.SessionID).Msg("won channel full")
	}
}

func verdict(o Outcome) string {
	switch {
	case o.Timeout:
		return "timeout"
	case o.Correct:
		return "correct"
	default:
		return "incorrect"
	}
}
