package session

import (
	"fmt"

	"github.com/samber/lo"
)

// State of the per-session state machine:
// Idle → Presenting → AwaitingResponse → Validating → (Presenting | Complete).
type State int

const (
	Idle State = iota
	Presenting
	AwaitingResponse
	Validating
	Complete
)

var stateNames = [...]string{"idle", "presenting", "awaiting_response", "validating", "complete"}

func (s State) String() string {
	if s < Idle || s > Complete {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	i := lo.IndexOf(stateNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown state %q", b)
	}
	*s = State(i)
	return nil
}

// Next is what a validated response does to the session.
type Next int

const (
	// Stay keeps the current round open.
	Stay Next = iota
	// Advance presents a new round.
	Advance
	// Repeat presents the same round again.
	Repeat
	// Finish ends the session.
	Finish
)

var nextNames = [...]string{"stay", "advance", "repeat", "complete"}

func (n Next) String() string {
	if n < Stay || n > Finish {
		return fmt.Sprintf("Next(%d)", int(n))
	}
	return nextNames[n]
}

func (n Next) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

func (n *Next) UnmarshalText(b []byte) error {
	i := lo.IndexOf(nextNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown next %q", b)
	}
	*n = Next(i)
	return nil
}
