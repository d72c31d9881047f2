package round

import (
	"github.com/samber/lo"

	"github.com/xtding233/cogtrain-backend/internal/game"
)

// PuzzleGenerator hands out picture sets without repetition until all were used.
type PuzzleGenerator struct {
	cfg  game.PuzzleConfig
	rng  RandomSource
	used map[int]bool
}

func NewPuzzle(cfg game.PuzzleConfig, rng RandomSource) *PuzzleGenerator {
	return &PuzzleGenerator{cfg: cfg, rng: rng, used: map[int]bool{}}
}

func (g *PuzzleGenerator) Reset() { g.used = map[int]bool{} }

func (g *PuzzleGenerator) Next(tier int) (*Round, error) {
	all := lo.Range(len(g.cfg.Sets))
	free := lo.Filter(all, func(i int, _ int) bool { return !g.used[i] })
	if len(free) == 0 {
		free = all
	}
	if len(free) == 0 {
		return &Round{Game: game.Puzzle, Tier: tier}, nil
	}
	i := free[g.rng.IntN(len(free))]
	g.used[i] = true

	set := g.cfg.Sets[i]
	return &Round{
		Game:   game.Puzzle,
		Tier:   tier,
		Set:    set.Name,
		Pieces: append([]string(nil), set.Pieces...),
	}, nil
}
