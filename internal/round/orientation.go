package round

import "github.com/xtding233/cogtrain-backend/internal/game"

// OrientationGenerator picks the direction the sphere moves in.
// Two consecutive rounds never share a direction.
type OrientationGenerator struct {
	rng  RandomSource
	prev *Direction
}

func NewOrientation(rng RandomSource) *OrientationGenerator {
	return &OrientationGenerator{rng: rng}
}

func (g *OrientationGenerator) Reset() { g.prev = nil }

// Next returns a plain move at tier 1 and a deceptive double move from tier 2 on.
func (g *OrientationGenerator) Next(tier int) (*Round, error) {
	var dir Direction
	if g.prev == nil {
		dir = Direction(g.rng.IntN(4))
	} else {
		dir = g.other(*g.prev)
	}
	g.prev = &dir

	m := &Move{Direction: dir}
	if tier >= 2 {
		decoy := g.other(dir)
		m.Decoy = &decoy
	}
	return &Round{Game: game.Orientation, Tier: tier, Move: m}, nil
}

// other returns a uniform direction different from d.
func (g *OrientationGenerator) other(d Direction) Direction {
	o := Direction(g.rng.IntN(3))
	if o >= d {
		o++
	}
	return o
}
