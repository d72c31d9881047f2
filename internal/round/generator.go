package round

import (
	"fmt"

	"github.com/xtding233/cogtrain-backend/internal/game"
)

// Generator produces the next round of one game as a function of the tier.
// Generators keep per-session state (a growing pattern, used puzzle sets),
// so each session owns its own instance.
type Generator interface {
	Next(tier int) (*Round, error)
	// Reset forgets the per-session state.
	Reset()
}

// New returns the generator of game k, tuned by cfg. A nil rng uses DefaultRNG().
func New(k game.Kind, cfg game.Config, rng RandomSource) (Generator, error) {
	if rng == nil {
		rng = DefaultRNG()
	}
	switch k {
	case game.Arithmetic:
		return NewArithmetic(cfg.Arithmetic, rng), nil
	case game.Memory:
		return NewMemory(cfg.Memory, rng), nil
	case game.Orientation:
		return NewOrientation(rng), nil
	case game.Language:
		return NewLanguage(cfg.Language, rng), nil
	case game.Puzzle:
		return NewPuzzle(cfg.Puzzle, rng), nil
	case game.Spatial:
		return NewSpatial(cfg.Spatial, rng), nil
	}
	return nil, fmt.Errorf("%w: %q", game.ErrUnknownGame, string(k))
}
