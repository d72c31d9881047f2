// Package sim plays sessions with a scripted player to see how a tuning
// behaves before it reaches real players.
package sim

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
	"github.com/xtding233/cogtrain-backend/internal/session"
	"github.com/xtding233/cogtrain-backend/internal/stats"
)

var ErrInvalidParams = errors.New("invalid simulation parameters")

// Params describes one simulation run.
type Params struct {
	Game game.Kind
	// Accuracy is the probability the player answers a response correctly.
	Accuracy float64
	Trials   int
	// Seed makes the run replicable; trial i uses Seed+i.
	Seed uint64
	// Think is how long the player takes per response. Orientation rounds
	// time out when it reaches the response limit.
	Think time.Duration
	// MaxResponses caps one trial; sessions still open then count as abandoned.
	MaxResponses int
}

// Report summarizes the trials of a run.
type Report struct {
	Game      game.Kind `json:"game"`
	Trials    int       `json:"trials"`
	Completed int       `json:"completed"`
	Won       int       `json:"won"`

	// per completed session
	Responses    stats.Summary `json:"responses"`
	FinalTier    stats.Summary `json:"finalTier"`
	ErrorPercent stats.Summary `json:"errorPercent"`
	Elapsed      stats.Summary `json:"elapsedSeconds"`
}

// Run plays p.Trials sessions of p.Game under cfg without presentation delays.
func Run(cfg game.Config, p Params) (Report, error) {
	if p.Accuracy < 0 || p.Accuracy > 1 {
		return Report{}, fmt.Errorf("%w: accuracy %v outside [0,1]", ErrInvalidParams, p.Accuracy)
	}
	if p.Trials <= 0 {
		return Report{Game: p.Game}, nil
	}
	if p.MaxResponses <= 0 {
		p.MaxResponses = 10000
	}
	k, err := game.ParseKind(string(p.Game))
	if err != nil {
		return Report{}, err
	}
	p.Game = k
	cfg = game.Resolve(cfg, k, game.Overrides{Instant: true})

	rep := Report{Game: k, Trials: p.Trials}
	var responses, tiers, errPct, elapsed []float64
	for i := 0; i < p.Trials; i++ {
		t, err := playOne(cfg, p, p.Seed+uint64(i))
		if err != nil {
			return Report{}, err
		}
		if t.result == nil {
			continue
		}
		rep.Completed++
		if t.result.Won {
			rep.Won++
		}
		responses = append(responses, float64(t.responses))
		tiers = append(tiers, float64(t.tier))
		errPct = append(errPct, t.result.Metrics.ErrorPercent())
		elapsed = append(elapsed, t.result.Elapsed().Seconds())
	}
	rep.Responses = stats.Summarize(responses)
	rep.FinalTier = stats.Summarize(tiers)
	rep.ErrorPercent = stats.Summarize(errPct)
	rep.Elapsed = stats.Summarize(elapsed)
	return rep, nil
}

type trial struct {
	result    *session.Result
	responses int
	tier      int
}

func playOne(cfg game.Config, p Params, seed uint64) (trial, error) {
	var t trial
	clock := session.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s, err := session.New(session.Options{
		ID:         fmt.Sprintf("sim-%d", seed),
		PlayerID:   "sim",
		Game:       p.Game,
		Config:     cfg,
		RNG:        round.NewSeededRNG(seed),
		Clock:      clock,
		OnComplete: func(r session.Result) { t.result = &r },
	})
	if err != nil {
		return t, err
	}
	if err := s.Start(); err != nil {
		return t, err
	}
	defer s.Abort()

	pl := &player{
		rng:      round.NewSeededRNG(^seed),
		accuracy: p.Accuracy,
		colors:   cfg.Memory.Colors,
	}
	for t.responses < p.MaxResponses {
		clock.Advance(p.Think)
		if s.State() == session.Complete {
			break
		}
		r := s.Round()
		if r == nil || s.State() != session.AwaitingResponse {
			return t, fmt.Errorf("sim: %s session stuck in %s", p.Game, s.State())
		}

		resp, err := pl.respond(r)
		if err != nil {
			return t, err
		}
		out, err := s.Submit(resp)
		if err != nil {
			return t, err
		}
		t.responses++
		pl.observe(out)
		if s.State() == session.Complete {
			break
		}
	}
	t.tier = s.View().Tier
	return t, nil
}

// player answers correctly with probability accuracy. It remembers how far
// into a memory pattern or puzzle it got, which the round alone does not tell.
type player struct {
	rng      round.RandomSource
	accuracy float64
	colors   int
	pos      int
}

func (pl *player) observe(out session.Outcome) {
	if out.Counted && out.Correct && out.Next == session.Stay {
		pl.pos++
		return
	}
	if out.Counted && out.Next != session.Stay {
		pl.pos = 0
	}
}

func (pl *player) respond(r *round.Round) (session.Response, error) {
	ok, err := round.Chance(pl.accuracy, pl.rng)
	if err != nil {
		return session.Response{}, err
	}

	switch r.Game {
	case game.Arithmetic:
		opt := r.Answer
		if !ok {
			opt = (r.Answer + 1) % len(r.Options)
		}
		return session.Response{Option: &opt}, nil

	case game.Memory:
		color := r.Pattern[pl.pos]
		if !ok {
			color = (color + 1) % pl.colors
		}
		return session.Response{Color: &color}, nil

	case game.Orientation:
		d := r.Move.Direction
		if !ok {
			d = (d + 1) % 4
			if r.Move.Decoy != nil {
				d = *r.Move.Decoy
			}
		}
		return session.Response{Direction: &d}, nil

	case game.Language:
		words := r.Words
		if !ok {
			words = append(append([]string(nil), words[:len(words)-1]...), "algo")
		}
		return session.Response{Text: strings.Join(words, " ")}, nil

	case game.Puzzle:
		zone, piece := pl.pos, pl.pos
		if !ok && pl.pos+1 < len(r.Pieces) {
			piece = pl.pos + 1
		}
		return session.Response{Zone: &zone, Piece: &piece}, nil

	case game.Spatial:
		id := r.TargetID
		if !ok {
			id = "elsewhere"
		}
		return session.Response{TargetID: id}, nil
	}
	return session.Response{}, fmt.Errorf("%w: %q", game.ErrUnknownGame, r.Game)
}
