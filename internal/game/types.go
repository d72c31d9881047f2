package game

import (
	"time"

	"github.com/xtding233/cogtrain-backend/internal/tier"
)

// Config is the full tuning of the suite, one section per mini-game.
// It is decoded from YAML on top of Defaults(), so a file only needs the keys it changes.
type Config struct {
	Version     string            `yaml:"version"`
	Orientation OrientationConfig `yaml:"orientation"`
	Memory      MemoryConfig      `yaml:"memory"`
	Arithmetic  ArithmeticConfig  `yaml:"arithmetic"`
	Language    LanguageConfig    `yaml:"language"`
	Puzzle      PuzzleConfig      `yaml:"puzzle"`
	Spatial     SpatialConfig     `yaml:"spatial"`
	Notes       string            `yaml:"notes,omitempty"`
}

// Timing holds the delayed transitions of a game.
type Timing struct {
	Intro   time.Duration `yaml:"intro"`   // before the very first round
	Present time.Duration `yaml:"present"` // Presenting → AwaitingResponse
	Between time.Duration `yaml:"between"` // after a validated round, before the next one
	Retry   time.Duration `yaml:"retry"`   // before a failed round is replayed
}

type OrientationConfig struct {
	TargetCorrect  int           `yaml:"target_correct"`
	Distance       float64       `yaml:"distance"` // px travelled by one move
	Speed          tier.Step     `yaml:"speed"`    // px/s by correct count
	Limit          tier.Step     `yaml:"limit"`    // response limit in seconds by correct count
	DeceptiveSpeed float64       `yaml:"deceptive_speed"`
	AfterCorrect   time.Duration `yaml:"after_correct"`
	AfterError     time.Duration `yaml:"after_error"`
	Timing         Timing        `yaml:"timing"`
}

type MemoryConfig struct {
	MaxPattern int           `yaml:"max_pattern"`
	Colors     int           `yaml:"colors"`
	Lit        time.Duration `yaml:"lit"` // how long one color stays lit
	Gap        time.Duration `yaml:"gap"` // pause between two colors
	Timing     Timing        `yaml:"timing"`
}

type ArithmeticConfig struct {
	MaxRounds int              `yaml:"max_rounds"`
	Options   int              `yaml:"options"`
	Ladder    tier.Ladder      `yaml:"ladder"`
	Tiers     []ArithmeticTier `yaml:"tiers"`
	Timing    Timing           `yaml:"timing"`
}

// Operator names the operation a tier asks for.
type Operator string

const (
	OpSum        Operator = "sum"
	OpDifference Operator = "difference"
	OpProduct    Operator = "product"
)

// ArithmeticTier parameterizes round generation at one tier.
// Targets are drawn from [Min, Max).
type ArithmeticTier struct {
	Tier int      `yaml:"tier"`
	Op   Operator `yaml:"op"`
	Min  int      `yaml:"min"`
	Max  int      `yaml:"max"`

	// difference: minuend drawn from [target+1, min(target+Span, Cap))
	Span int `yaml:"span,omitempty"`
	Cap  int `yaml:"cap,omitempty"`

	// product: factor in [FactorMin, FactorMax], cofactor in [CofactorMin, CofactorMax]
	FactorMin   int `yaml:"factor_min,omitempty"`
	FactorMax   int `yaml:"factor_max,omitempty"`
	CofactorMin int `yaml:"cofactor_min,omitempty"`
	CofactorMax int `yaml:"cofactor_max,omitempty"`
}

type LanguageConfig struct {
	MaxRounds int         `yaml:"max_rounds"`
	Ladder    tier.Ladder `yaml:"ladder"` // completed rounds → word count
	Subjects  []string    `yaml:"subjects"`
	Verbs     []string    `yaml:"verbs"`
	Objects   []string    `yaml:"objects"`
	Timing    Timing      `yaml:"timing"`
}

type PuzzleConfig struct {
	MaxRounds  int           `yaml:"max_rounds"`
	Zones      int           `yaml:"zones"`
	Sets       []PuzzleSet   `yaml:"sets"`
	AfterRound time.Duration `yaml:"after_round"`
	Timing     Timing        `yaml:"timing"`
}

// PuzzleSet is one picture split into ordered pieces.
type PuzzleSet struct {
	Name   string   `yaml:"name"`
	Pieces []string `yaml:"pieces"`
}

type SpatialConfig struct {
	Targets []string `yaml:"targets"`
	Timing  Timing   `yaml:"timing"`
}

// OrientationLadder derives the orientation ladder from the speed schedule:
// the deceptive double move starts once the sphere reaches DeceptiveSpeed.
func (c OrientationConfig) OrientationLadder() tier.Ladder {
	n := c.Speed.Reaches(c.DeceptiveSpeed)
	if n < 0 {
		return tier.Single()
	}
	if n == 0 {
		return tier.Ladder{{Upto: 0, Tier: 2}}
	}
	return tier.Ladder{{Upto: n - 1, Tier: 1}, {Upto: n, Tier: 2}}
}

// LadderFor returns the difficulty ladder of a game.
func (c Config) LadderFor(k Kind) tier.Ladder {
	switch k {
	case Arithmetic:
		return c.Arithmetic.Ladder
	case Language:
		return c.Language.Ladder
	case Orientation:
		return c.Orientation.OrientationLadder()
	default:
		return tier.Single()
	}
}

// TimingFor returns the delayed-transition settings of a game.
func (c Config) TimingFor(k Kind) Timing {
	switch k {
	case Orientation:
		return c.Orientation.Timing
	case Memory:
		return c.Memory.Timing
	case Arithmetic:
		return c.Arithmetic.Timing
	case Language:
		return c.Language.Timing
	case Puzzle:
		return c.Puzzle.Timing
	case Spatial:
		return c.Spatial.Timing
	}
	return Timing{}
}

// TierParams returns the arithmetic parameters for tier t. Tiers missing from
// the table fall back to the closest lower tier, then to the first entry.
func (c ArithmeticConfig) TierParams(t int) ArithmeticTier {
	var best *ArithmeticTier
	for i := range c.Tiers {
		at := &c.Tiers[i]
		if at.Tier == t {
			return *at
		}
		if at.Tier < t && (best == nil || at.Tier > best.Tier) {
			best = at
		}
	}
	if best != nil {
		return *best
	}
	if len(c.Tiers) > 0 {
		return c.Tiers[0]
	}
	return ArithmeticTier{Tier: 1, Op: OpSum, Min: 10, Max: 50}
}
