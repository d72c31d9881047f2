package round

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtding233/cogtrain-backend/internal/game"
)

var ErrDecoysExhausted = errors.New("could not find enough distinct decoys")

// Round is the open challenge of a session. Only the fields of its game are set.
type Round struct {
	Game  game.Kind `json:"game"`
	Index int       `json:"index"`
	Tier  int       `json:"tier"`

	// arithmetic
	Target  int      `json:"target,omitempty"`
	Options []string `json:"options,omitempty"`
	Answer  int      `json:"-"`

	// memory
	Pattern []int `json:"pattern,omitempty"`

	// orientation
	Move *Move `json:"move,omitempty"`

	// language
	Words []string `json:"words,omitempty"`

	// puzzle: zone i expects piece i
	Set    string   `json:"set,omitempty"`
	Pieces []string `json:"pieces,omitempty"`

	// spatial
	TargetID string `json:"targetId,omitempty"`
}

// Clone returns a deep copy, used when a round is presented again.
func (r *Round) Clone() *Round {
	c := *r
	c.Options = append([]string(nil), r.Options...)
	c.Pattern = append([]int(nil), r.Pattern...)
	c.Words = append([]string(nil), r.Words...)
	c.Pieces = append([]string(nil), r.Pieces...)
	if r.Move != nil {
		m := *r.Move
		if r.Move.Decoy != nil {
			d := *r.Move.Decoy
			m.Decoy = &d
		}
		c.Move = &m
	}
	return &c
}

// Move is one orientation round. Decoy, when set, is shown first and then
// replaced by Direction, which is the only correct answer.
type Move struct {
	Direction Direction  `json:"direction"`
	Decoy     *Direction `json:"decoy,omitempty"`
	Speed     float64    `json:"speed"`
	LimitMs   int64      `json:"limitMs"`
}

// Direction of an orientation move.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) Valid() bool { return d >= Up && d <= Right }

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	p, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// ParseDirection accepts a direction name or its index "0".."3".
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range directionNames {
		if s == n || s == fmt.Sprint(i) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("invalid direction %q", s)
}
