package game

import (
	"math"
	"time"

	"github.com/xtding233/cogtrain-backend/internal/tier"
)

// Defaults returns the built-in tuning every YAML layer is applied on top of.
func Defaults() Config {
	return Config{
		Version: "builtin",
		Orientation: OrientationConfig{
			TargetCorrect:  15,
			Distance:       1200,
			Speed:          tier.Step{Start: 600, Delta: 150, Bound: 2400},
			Limit:          tier.Step{Start: 10, Delta: -0.5, Bound: 5},
			DeceptiveSpeed: 1800,
			AfterCorrect:   time.Second,
			AfterError:     1500 * time.Millisecond,
			Timing: Timing{
				Intro: 2300 * time.Millisecond,
			},
		},
		Memory: MemoryConfig{
			MaxPattern: 8,
			Colors:     6,
			Lit:        500 * time.Millisecond,
			Gap:        250 * time.Millisecond,
			Timing: Timing{
				Present: time.Second,
				Between: 2200 * time.Millisecond,
				Retry:   1500 * time.Millisecond,
			},
		},
		Arithmetic: ArithmeticConfig{
			MaxRounds: 10,
			Options:   3,
			Ladder: tier.Ladder{
				{Upto: 2, Tier: 1},
				{Upto: 4, Tier: 2},
				{Upto: 6, Tier: 3},
				{Upto: 8, Tier: 4},
				{Upto: 10, Tier: 5},
				{Upto: 12, Tier: 6},
				{Upto: math.MaxInt32, Tier: 7},
			},
			Tiers: []ArithmeticTier{
				{Tier: 1, Op: OpSum, Min: 5, Max: 20},
				{Tier: 2, Op: OpSum, Min: 20, Max: 50},
				{Tier: 3, Op: OpDifference, Min: 5, Max: 30, Span: 30, Cap: 50},
				{Tier: 4, Op: OpDifference, Min: 50, Max: 200, Span: 30, Cap: 300},
				{Tier: 5, Op: OpProduct, Min: 4, Max: 50, FactorMin: 2, FactorMax: 9, CofactorMin: 2, CofactorMax: 9},
				{Tier: 6, Op: OpProduct, Min: 20, Max: 200, FactorMin: 2, FactorMax: 9, CofactorMin: 2, CofactorMax: 99},
				{Tier: 7, Op: OpProduct, Min: 100, Max: 999, FactorMin: 10, FactorMax: 99, CofactorMin: 2, CofactorMax: 99},
			},
			Timing: Timing{
				Between: 2 * time.Second,
			},
		},
		Language: LanguageConfig{
			MaxRounds: 3,
			Ladder: tier.Ladder{
				{Upto: 0, Tier: 3},
				{Upto: 1, Tier: 4},
				{Upto: 2, Tier: 5},
			},
			Subjects: []string{"el perro", "la niña", "mi abuelo", "el gato", "la maestra", "mi hermano"},
			Verbs:    []string{"come", "corre", "lee", "juega", "canta", "pinta"},
			Objects:  []string{"en el parque", "una manzana", "con su amigo", "en la casa", "un libro", "por la tarde"},
			Timing: Timing{
				Between: 2 * time.Second,
			},
		},
		Puzzle: PuzzleConfig{
			MaxRounds:  5,
			Zones:      4,
			AfterRound: time.Second,
			Sets: []PuzzleSet{
				{Name: "granja", Pieces: []string{"granja-1", "granja-2", "granja-3", "granja-4"}},
				{Name: "playa", Pieces: []string{"playa-1", "playa-2", "playa-3", "playa-4"}},
				{Name: "ciudad", Pieces: []string{"ciudad-1", "ciudad-2", "ciudad-3", "ciudad-4"}},
				{Name: "bosque", Pieces: []string{"bosque-1", "bosque-2", "bosque-3", "bosque-4"}},
				{Name: "espacio", Pieces: []string{"espacio-1", "espacio-2", "espacio-3", "espacio-4"}},
			},
			Timing: Timing{
				Present: 5 * time.Second,
			},
		},
		Spatial: SpatialConfig{
			Targets: []string{"arbol", "casa", "perro", "sol", "flor"},
			Timing: Timing{
				Between: 1500 * time.Millisecond,
			},
		},
	}
}
