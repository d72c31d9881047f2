package session

import (
	"fmt"
	"time"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// orientationRules: answer the direction the sphere moved in before the limit runs out.
// Each correct answer speeds the sphere up and shortens the limit.
type orientationRules struct {
	cfg     game.OrientationConfig
	correct int
	limit   time.Duration
}

func (o *orientationRules) Reset() {
	o.correct = 0
	o.limit = 0
}

func (o *orientationRules) Progress(m Metrics) int { return m.Correct }

func (o *orientationRules) Begin(r *round.Round) {
	o.limit = seconds(o.cfg.Limit.At(o.correct))
	if r.Move != nil {
		r.Move.Speed = o.cfg.Speed.At(o.correct)
		r.Move.LimitMs = o.limit.Milliseconds()
	}
}

func (o *orientationRules) Present(*round.Round) time.Duration { return o.cfg.Timing.Present }

func (o *orientationRules) Limit() time.Duration { return o.limit }

func (o *orientationRules) Judge(r *round.Round, resp Response, elapsed time.Duration, m *Metrics) (Outcome, error) {
	if resp.Direction == nil || !resp.Direction.Valid() {
		return Outcome{}, fmt.Errorf("%w: direction required", ErrInvalidResponse)
	}
	if elapsed >= o.limit {
		return o.Expire(m), nil
	}

	m.Observe(elapsed)
	if *resp.Direction != r.Move.Direction {
		m.Fail()
		return Outcome{Counted: true, Next: Advance, Feedback: "incorrect"}, nil
	}
	m.Succeed()
	o.correct++
	next := Advance
	if o.correct >= o.cfg.TargetCorrect {
		next = Finish
	}
	return Outcome{Counted: true, Correct: true, Next: next, Feedback: "correct"}, nil
}

// Expire counts a timeout: an error that costs the whole limit.
func (o *orientationRules) Expire(m *Metrics) Outcome {
	m.Fail()
	m.Observe(o.limit)
	return Outcome{Counted: true, Timeout: true, Next: Advance, Feedback: "time is up"}
}

func (o *orientationRules) Delay(out Outcome) time.Duration {
	switch {
	case out.Next == Finish:
		return 0
	case out.Correct:
		return o.cfg.AfterCorrect
	default:
		return o.cfg.AfterError
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
