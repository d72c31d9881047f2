package session

import (
	"time"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// View is a read-only snapshot of a session for clients.
type View struct {
	ID        string       `json:"id"`
	PlayerID  string       `json:"playerId"`
	Game      game.Kind    `json:"game"`
	State     State        `json:"state"`
	Tier      int          `json:"tier"`
	Round     *round.Round `json:"round,omitempty"`
	Last      *Outcome     `json:"last,omitempty"`
	Correct   int          `json:"correct"`
	Incorrect int          `json:"incorrect"`
	AverageMs int64        `json:"averageMs"`
	StartedAt time.Time    `json:"startedAt"`
}

// View snapshots the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:        s.ID,
		PlayerID:  s.PlayerID,
		Game:      s.Game,
		State:     s.state,
		Tier:      s.ctrl.Level,
		Correct:   s.metrics.Correct,
		Incorrect: s.metrics.Incorrect,
		AverageMs: s.metrics.AverageResponse().Milliseconds(),
		StartedAt: s.startedAt,
	}
	if s.round != nil && s.state != Idle {
		v.Round = s.round.Clone()
	}
	if s.last != nil {
		last := *s.last
		v.Last = &last
	}
	return v
}
