package session

import (
	"fmt"
	"time"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// spatialRules: find the requested targets in turn.
type spatialRules struct {
	cfg game.SpatialConfig
}

func (s *spatialRules) Reset() {}

func (s *spatialRules) Progress(m Metrics) int { return m.Correct }

func (s *spatialRules) Begin(*round.Round) {}

func (s *spatialRules) Present(*round.Round) time.Duration { return s.cfg.Timing.Present }

func (s *spatialRules) Judge(r *round.Round, resp Response, elapsed time.Duration, m *Metrics) (Outcome, error) {
	if resp.TargetID == "" {
		return Outcome{}, fmt.Errorf("%w: targetId required", ErrInvalidResponse)
	}
	if resp.TargetID != r.TargetID {
		return Outcome{Next: Stay}, nil
	}

	m.Succeed()
	m.Observe(elapsed)
	next := Advance
	if m.Correct >= len(s.cfg.Targets) {
		next = Finish
	}
	return Outcome{Counted: true, Correct: true, Next: next, Feedback: "target found"}, nil
}

func (s *spatialRules) Delay(o Outcome) time.Duration { return afterOutcome(s.cfg.Timing, o) }
