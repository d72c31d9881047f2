package session

import (
	"fmt"
	"time"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// arithmeticRules: pick the option that equals the target, MaxRounds times.
type arithmeticRules struct {
	cfg game.ArithmeticConfig
}

func (a *arithmeticRules) Reset() {}

func (a *arithmeticRules) Progress(m Metrics) int { return m.Correct }

func (a *arithmeticRules) Begin(*round.Round) {}

func (a *arithmeticRules) Present(*round.Round) time.Duration { return a.cfg.Timing.Present }

func (a *arithmeticRules) Judge(r *round.Round, resp Response, elapsed time.Duration, m *Metrics) (Outcome, error) {
	if resp.Option == nil || *resp.Option < 0 || *resp.Option >= len(r.Options) {
		return Outcome{}, fmt.Errorf("%w: option must be in [0,%d)", ErrInvalidResponse, len(r.Options))
	}

	m.Observe(elapsed)
	out := Outcome{Counted: true, Next: Advance}
	if *resp.Option == r.Answer {
		m.Succeed()
		out.Correct = true
		out.Feedback = "correct"
	} else {
		m.Fail()
		out.Feedback = fmt.Sprintf("incorrect, the answer was %s", r.Options[r.Answer])
	}
	if m.Attempts() >= a.cfg.MaxRounds {
		out.Next = Finish
	}
	return out, nil
}

func (a *arithmeticRules) Delay(o Outcome) time.Duration { return afterOutcome(a.cfg.Timing, o) }

func (a *arithmeticRules) Won(m Metrics) bool { return m.Correct >= m.Incorrect }
