package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownGame = errors.New("unknown game")

// Kind identifies one mini-game.
type Kind string

const (
	Orientation Kind = "orientation"
	Memory      Kind = "memory"
	Arithmetic  Kind = "arithmetic"
	Language    Kind = "language"
	Puzzle      Kind = "puzzle"
	Spatial     Kind = "spatial"
)

// Kinds lists every mini-game in menu order.
func Kinds() []Kind {
	return []Kind{Orientation, Memory, Arithmetic, Language, Puzzle, Spatial}
}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, s)
}

func (k Kind) String() string { return string(k) }
