package session

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// puzzleRules: drop every piece on its zone. Zone i takes piece i.
type puzzleRules struct {
	cfg    game.PuzzleConfig
	locked []bool
	rounds int
}

func (p *puzzleRules) Reset() {
	p.locked = nil
	p.rounds = 0
}

func (p *puzzleRules) Progress(Metrics) int { return p.rounds }

func (p *puzzleRules) Begin(r *round.Round) { p.locked = make([]bool, len(r.Pieces)) }

func (p *puzzleRules) Present(*round.Round) time.Duration { return p.cfg.Timing.Present }

func (p *puzzleRules) Judge(_ *round.Round, resp Response, elapsed time.Duration, m *Metrics) (Outcome, error) {
	if resp.Zone == nil || resp.Piece == nil {
		return Outcome{}, fmt.Errorf("%w: zone and piece required", ErrInvalidResponse)
	}
	zone, piece := *resp.Zone, *resp.Piece
	n := len(p.locked)
	if zone < 0 || zone >= n || piece < 0 || piece >= n {
		return Outcome{}, fmt.Errorf("%w: zone and piece must be in [0,%d)", ErrInvalidResponse, n)
	}
	if p.locked[piece] || p.locked[zone] {
		return Outcome{}, fmt.Errorf("%w: already placed", ErrInvalidResponse)
	}

	if zone != piece {
		m.Fail()
		return Outcome{Counted: true, Next: Stay, Feedback: "that piece does not go there"}, nil
	}

	m.Succeed()
	p.locked[piece] = true
	if !lo.EveryBy(p.locked, func(b bool) bool { return b }) {
		return Outcome{Counted: true, Correct: true, Next: Stay}, nil
	}

	m.Observe(elapsed)
	p.rounds++
	next := Advance
	if p.rounds >= p.cfg.MaxRounds {
		next = Finish
	}
	return Outcome{Counted: true, Correct: true, Next: next, Feedback: "puzzle solved"}, nil
}

func (p *puzzleRules) Delay(o Outcome) time.Duration {
	if o.Next != Advance {
		return 0
	}
	return p.cfg.AfterRound + p.cfg.Timing.Between
}
