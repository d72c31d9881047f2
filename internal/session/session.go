package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
	"github.com/xtding233/cogtrain-backend/internal/tier"
)

// Result is the summary of a completed session handed to the reporter.
type Result struct {
	SessionID  string
	PlayerID   string
	Game       game.Kind
	Won        bool
	Metrics    Metrics
	StartedAt  time.Time
	FinishedAt time.Time
}

// Elapsed is the wall time the session took.
func (r Result) Elapsed() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Options configure a new session.
type Options struct {
	ID       string
	PlayerID string
	Game     game.Kind
	Config   game.Config
	RNG      round.RandomSource
	Clock    Clock
	// OnComplete runs once per completion, outside the session lock.
	OnComplete func(Result)
}

// Session is one play-through of one game. All methods are safe for
// concurrent use; delayed transitions run on the Clock.
type Session struct {
	ID       string
	PlayerID string
	Game     game.Kind

	mu         sync.Mutex
	cfg        game.Config
	rules      Rules
	gen        round.Generator
	ctrl       *tier.Controller
	clock      Clock
	onComplete func(Result)

	state     State
	round     *round.Round
	index     int
	metrics   Metrics
	last      *Outcome
	startedAt time.Time
	openedAt  time.Time
	aborted   bool

	// epoch invalidates scheduled callbacks; timer is the pending one.
	epoch   uint64
	timer   Timer
	pending *Result
}

// New builds an idle session.
func New(o Options) (*Session, error) {
	rules, err := NewRules(o.Game, o.Config)
	if err != nil {
		return nil, err
	}
	gen, err := round.New(o.Game, o.Config, o.RNG)
	if err != nil {
		return nil, err
	}
	clock := o.Clock
	if clock == nil {
		clock = RealClock{}
	}
	return &Session{
		ID:         o.ID,
		PlayerID:   o.PlayerID,
		Game:       o.Game,
		cfg:        o.Config,
		rules:      rules,
		gen:        gen,
		ctrl:       tier.NewController(o.Config.LadderFor(o.Game)),
		clock:      clock,
		onComplete: o.OnComplete,
	}, nil
}

// Start presents the first round after the game's intro delay.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.flush()

	if s.aborted {
		return ErrSessionAborted
	}
	if s.state != Idle {
		return ErrAlreadyStarted
	}
	s.startedAt = s.clock.Now()
	return s.present(s.cfg.TimingFor(s.Game).Intro, false)
}

// Submit judges a response against the open round.
func (s *Session) Submit(resp Response) (Outcome, error) {
	s.mu.Lock()
	defer s.flush()

	switch {
	case s.aborted:
		return Outcome{}, ErrSessionAborted
	case s.state == Complete:
		return Outcome{}, ErrSessionComplete
	case s.state != AwaitingResponse:
		return Outcome{}, ErrNotAwaiting
	}

	elapsed := s.clock.Now().Sub(s.openedAt)
	s.state = Validating
	out, err := s.rules.Judge(s.round, resp, elapsed, &s.metrics)
	if err != nil {
		s.state = AwaitingResponse
		return Outcome{}, err
	}
	if !out.Counted {
		s.state = AwaitingResponse
		s.last = &out
		return out, nil
	}
	return out, s.apply(out)
}

// Restart drops all progress and starts over from Idle.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.flush()

	if s.aborted {
		return ErrSessionAborted
	}
	s.cancel()
	s.rules.Reset()
	s.gen.Reset()
	s.ctrl.Reset()
	s.state = Idle
	s.round = nil
	s.index = 0
	s.metrics = Metrics{}
	s.last = nil
	s.pending = nil

	s.startedAt = s.clock.Now()
	return s.present(s.cfg.TimingFor(s.Game).Intro, false)
}

// Abort stops every pending transition. The session is never reported.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.aborted {
		return
	}
	s.cancel()
	s.aborted = true
	if s.state != Complete {
		s.state = Idle
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Round returns a copy of the open round, nil before the first presentation.
func (s *Session) Round() *round.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round == nil {
		return nil
	}
	return s.round.Clone()
}

// Metrics returns a copy of the session metrics.
func (s *Session) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.clone()
}

// present generates the next round (or reuses the current one) and opens it
// for responses after delay plus the game's presentation time.
func (s *Session) present(delay time.Duration, same bool) error {
	if !same || s.round == nil {
		t := s.ctrl.Observe(s.rules.Progress(s.metrics))
		r, err := s.gen.Next(t)
		if err != nil {
			return errors.Wrap(err, "generate round")
		}
		r.Index = s.index
		s.index++
		s.round = r
	} else {
		s.round = s.round.Clone()
	}
	s.rules.Begin(s.round)
	s.state = Presenting
	s.schedule(delay+s.rules.Present(s.round), s.open)
	return nil
}

// open starts accepting responses and arms the deadline of timed games.
func (s *Session) open() {
	s.state = AwaitingResponse
	s.openedAt = s.clock.Now()
	if t, ok := s.rules.(timed); ok && t.Limit() > 0 {
		s.schedule(t.Limit(), s.expire)
	}
}

func (s *Session) expire() {
	if s.state != AwaitingResponse {
		return
	}
	t := s.rules.(timed)
	if err := s.apply(t.Expire(&s.metrics)); err != nil {
		log.Error().Err(err).Str("evt.name", "session.expire").Str("session", s.ID).Msg("failed to continue after timeout")
	}
}

// apply moves the state machine after a counted outcome.
func (s *Session) apply(out Outcome) error {
	s.last = &out
	if out.Next == Stay {
		s.state = AwaitingResponse
		return nil
	}

	s.cancel()
	switch out.Next {
	case Finish:
		s.finish()
		return nil
	case Repeat:
		s.state = Validating
		s.schedule(s.rules.Delay(out), func() { s.represent(true) })
	default:
		s.state = Validating
		s.schedule(s.rules.Delay(out), func() { s.represent(false) })
	}
	return nil
}

func (s *Session) represent(same bool) {
	if err := s.present(0, same); err != nil {
		log.Error().Err(err).Str("evt.name", "session.present").Str("session", s.ID).Msg("failed to present round")
	}
}

func (s *Session) finish() {
	s.state = Complete
	won := true
	if sc, ok := s.rules.(scored); ok {
		won = sc.Won(s.metrics)
	}
	s.pending = &Result{
		SessionID:  s.ID,
		PlayerID:   s.PlayerID,
		Game:       s.Game,
		Won:        won,
		Metrics:    s.metrics.clone(),
		StartedAt:  s.startedAt,
		FinishedAt: s.clock.Now(),
	}
}

// schedule runs fn after d under the session lock, unless the session moved
// on in between. A zero delay runs fn right away.
func (s *Session) schedule(d time.Duration, fn func()) {
	if d <= 0 {
		fn()
		return
	}
	epoch := s.epoch
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.flush()
		if s.epoch != epoch || s.aborted {
			return
		}
		s.timer = nil
		fn()
	})
}

// cancel invalidates every scheduled callback.
func (s *Session) cancel() {
	s.epoch++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// flush releases the lock and then reports a completion, if any.
func (s *Session) flush() {
	res := s.pending
	s.pending = nil
	cb := s.onComplete
	s.mu.Unlock()
	if res != nil && cb != nil {
		cb(*res)
	}
}
