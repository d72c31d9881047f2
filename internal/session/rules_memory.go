package session

import (
	"fmt"
	"time"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// memoryRules: reproduce the shown color pattern one press at a time.
type memoryRules struct {
	cfg   game.MemoryConfig
	input []int
}

func (mr *memoryRules) Reset() { mr.input = nil }

func (mr *memoryRules) Progress(m Metrics) int { return m.Correct }

func (mr *memoryRules) Begin(*round.Round) { mr.input = mr.input[:0] }

// Present covers lighting up every color of the pattern.
func (mr *memoryRules) Present(r *round.Round) time.Duration {
	return time.Duration(len(r.Pattern))*(mr.cfg.Lit+mr.cfg.Gap) + mr.cfg.Timing.Present
}

func (mr *memoryRules) Judge(r *round.Round, resp Response, _ time.Duration, m *Metrics) (Outcome, error) {
	if resp.Color == nil || *resp.Color < 0 || *resp.Color >= mr.cfg.Colors {
		return Outcome{}, fmt.Errorf("%w: color must be in [0,%d)", ErrInvalidResponse, mr.cfg.Colors)
	}

	// a complete input always leaves the round, so the press is within the pattern
	if *resp.Color != r.Pattern[len(mr.input)] {
		m.Fail()
		mr.input = mr.input[:0]
		return Outcome{Counted: true, Next: Repeat, Feedback: "wrong color, watch again"}, nil
	}

	m.Succeed()
	mr.input = append(mr.input, *resp.Color)
	switch {
	case len(mr.input) < len(r.Pattern):
		return Outcome{Counted: true, Correct: true, Next: Stay}, nil
	case len(r.Pattern) >= mr.cfg.MaxPattern:
		return Outcome{Counted: true, Correct: true, Next: Finish, Feedback: "pattern complete"}, nil
	default:
		return Outcome{Counted: true, Correct: true, Next: Advance, Feedback: "well done"}, nil
	}
}

func (mr *memoryRules) Delay(o Outcome) time.Duration { return afterOutcome(mr.cfg.Timing, o) }
