package round

import "github.com/xtding233/cogtrain-backend/internal/game"

// SpatialGenerator asks for the targets one by one in an order shuffled once per session.
type SpatialGenerator struct {
	cfg   game.SpatialConfig
	rng   RandomSource
	order []string
	next  int
}

func NewSpatial(cfg game.SpatialConfig, rng RandomSource) *SpatialGenerator {
	return &SpatialGenerator{cfg: cfg, rng: rng}
}

func (g *SpatialGenerator) Reset() {
	g.order = nil
	g.next = 0
}

// Len is the number of targets of a session.
func (g *SpatialGenerator) Len() int { return len(g.cfg.Targets) }

func (g *SpatialGenerator) Next(tier int) (*Round, error) {
	if g.order == nil {
		g.order = append([]string(nil), g.cfg.Targets...)
		Shuffle(g.rng, g.order)
	}
	r := &Round{Game: game.Spatial, Tier: tier}
	if len(g.order) > 0 {
		r.TargetID = g.order[g.next%len(g.order)]
		g.next++
	}
	return r, nil
}
