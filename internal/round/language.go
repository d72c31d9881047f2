package round

import (
	"github.com/xtding233/cogtrain-backend/internal/game"
)

// LanguageGenerator draws the words a sentence has to contain.
// The tier is the word count: 3 = S+V+C, 4 = 2S+V+C or S+2V+C, 5 = 2S+2V+C.
type LanguageGenerator struct {
	cfg game.LanguageConfig
	rng RandomSource
}

func NewLanguage(cfg game.LanguageConfig, rng RandomSource) *LanguageGenerator {
	return &LanguageGenerator{cfg: cfg, rng: rng}
}

func (g *LanguageGenerator) Reset() {}

func (g *LanguageGenerator) Next(tier int) (*Round, error) {
	subjects, verbs := 1, 1
	switch {
	case tier >= 5:
		subjects, verbs = 2, 2
	case tier == 4:
		// coin flip between a second subject and a second verb
		two, err := Chance(0.5, g.rng)
		if err != nil {
			return nil, err
		}
		if two {
			subjects = 2
		} else {
			verbs = 2
		}
	}

	words := make([]string, 0, subjects+verbs+1)
	words = append(words, pick(g.rng, g.cfg.Subjects, subjects)...)
	words = append(words, pick(g.rng, g.cfg.Verbs, verbs)...)
	words = append(words, pick(g.rng, g.cfg.Objects, 1)...)
	return &Round{Game: game.Language, Tier: subjects + verbs + 1, Words: words}, nil
}

// pick draws n words, distinct while the bank allows it.
func pick(rng RandomSource, bank []string, n int) []string {
	if len(bank) == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for len(out) < n {
		cp := append([]string(nil), bank...)
		Shuffle(rng, cp)
		out = append(out, cp[:min(n-len(out), len(cp))]...)
	}
	return out
}
