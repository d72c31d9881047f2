package round

import "github.com/xtding233/cogtrain-backend/internal/game"

// MemoryGenerator grows a color pattern by one step per new round.
type MemoryGenerator struct {
	cfg     game.MemoryConfig
	rng     RandomSource
	pattern []int
}

func NewMemory(cfg game.MemoryConfig, rng RandomSource) *MemoryGenerator {
	return &MemoryGenerator{cfg: cfg, rng: rng}
}

func (g *MemoryGenerator) Reset() { g.pattern = nil }

// Next extends the pattern until it holds MaxPattern colors.
func (g *MemoryGenerator) Next(tier int) (*Round, error) {
	if len(g.pattern) < max(g.cfg.MaxPattern, 1) {
		g.pattern = append(g.pattern, g.rng.IntN(max(g.cfg.Colors, 1)))
	}
	return &Round{
		Game:    game.Memory,
		Tier:    tier,
		Pattern: append([]int(nil), g.pattern...),
	}, nil
}
