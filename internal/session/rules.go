package session

import (
	"fmt"
	"time"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// Response is what the client reports the player did. Only the fields of
// the session's game are read.
type Response struct {
	Option    *int             `json:"option,omitempty"`    // arithmetic: chosen option index
	Color     *int             `json:"color,omitempty"`     // memory: pressed color
	Direction *round.Direction `json:"direction,omitempty"` // orientation
	Text      string           `json:"text,omitempty"`      // language: the sentence
	Zone      *int             `json:"zone,omitempty"`      // puzzle: drop zone
	Piece     *int             `json:"piece,omitempty"`     // puzzle: dropped piece
	TargetID  string           `json:"targetId,omitempty"`  // spatial: detected target
}

// Outcome of judging one response.
type Outcome struct {
	Counted  bool   `json:"counted"`
	Correct  bool   `json:"correct"`
	Timeout  bool   `json:"timeout,omitempty"`
	Next     Next   `json:"next"`
	Feedback string `json:"feedback,omitempty"`
}

// Rules are the progression and validation rules of one game.
type Rules interface {
	// Reset clears the per-session progression.
	Reset()
	// Progress is the count the difficulty ladder is indexed with.
	Progress(m Metrics) int
	// Begin is called every time a round is presented, new or repeated.
	Begin(r *round.Round)
	// Present is how long the round is shown before responses are accepted.
	Present(r *round.Round) time.Duration
	// Judge validates resp against the open round and updates m. An error
	// rejects the response without touching the session.
	Judge(r *round.Round, resp Response, elapsed time.Duration, m *Metrics) (Outcome, error)
	// Delay is the pause after o before the next round is presented.
	Delay(o Outcome) time.Duration
}

// timed rules put a deadline on every round.
type timed interface {
	Limit() time.Duration
	Expire(m *Metrics) Outcome
}

// scored rules decide whether a completed session counts as won.
// Sessions of other games are won when they complete.
type scored interface {
	Won(m Metrics) bool
}

// NewRules returns the rules of game k tuned by cfg.
func NewRules(k game.Kind, cfg game.Config) (Rules, error) {
	switch k {
	case game.Orientation:
		return &orientationRules{cfg: cfg.Orientation}, nil
	case game.Memory:
		return &memoryRules{cfg: cfg.Memory}, nil
	case game.Arithmetic:
		return &arithmeticRules{cfg: cfg.Arithmetic}, nil
	case game.Language:
		return &languageRules{cfg: cfg.Language}, nil
	case game.Puzzle:
		return &puzzleRules{cfg: cfg.Puzzle}, nil
	case game.Spatial:
		return &spatialRules{cfg: cfg.Spatial}, nil
	}
	return nil, fmt.Errorf("%w: %q", game.ErrUnknownGame, string(k))
}

// afterOutcome picks the delay of t matching the next step.
func afterOutcome(t game.Timing, o Outcome) time.Duration {
	switch o.Next {
	case Advance:
		return t.Between
	case Repeat:
		return t.Retry
	}
	return 0
}
