package game

import (
	"fmt"
	"strings"
)

// Validate checks semantic constraints of a Config.
func Validate(cfg Config) error {
	var errs []string

	// orientation
	o := cfg.Orientation
	if o.TargetCorrect <= 0 {
		errs = append(errs, "orientation.target_correct must be >= 1")
	}
	if o.Distance <= 0 {
		errs = append(errs, "orientation.distance must be > 0")
	}
	if o.Speed.Start <= 0 || o.Speed.Bound < o.Speed.Start {
		errs = append(errs, "orientation.speed must start > 0 and ramp up to bound")
	}
	if o.Limit.Bound <= 0 || o.Limit.Start < o.Limit.Bound {
		errs = append(errs, "orientation.limit must start >= bound > 0")
	}

	// memory
	if cfg.Memory.MaxPattern <= 0 {
		errs = append(errs, "memory.max_pattern must be >= 1")
	}
	if cfg.Memory.Colors < 2 {
		errs = append(errs, "memory.colors must be >= 2")
	}

	// arithmetic
	a := cfg.Arithmetic
	if a.MaxRounds <= 0 {
		errs = append(errs, "arithmetic.max_rounds must be >= 1")
	}
	if a.Options < 1 {
		errs = append(errs, "arithmetic.options must be >= 1")
	}
	if err := a.Ladder.Validate(); err != nil {
		errs = append(errs, "arithmetic.ladder: "+err.Error())
	}
	if len(a.Tiers) == 0 {
		errs = append(errs, "arithmetic.tiers must not be empty")
	}
	for i, t := range a.Tiers {
		errs = append(errs, validateArithmeticTier(i, t, a.Options)...)
	}

	// language
	l := cfg.Language
	if l.MaxRounds <= 0 {
		errs = append(errs, "language.max_rounds must be >= 1")
	}
	if err := l.Ladder.Validate(); err != nil {
		errs = append(errs, "language.ladder: "+err.Error())
	}
	if len(l.Subjects) == 0 || len(l.Verbs) == 0 || len(l.Objects) == 0 {
		errs = append(errs, "language word bank needs subjects, verbs and objects")
	}
	if l.Ladder.TierFor(0) < 3 || l.Ladder.Max() > 5 {
		errs = append(errs, "language.ladder tiers are word counts and must stay within 3..5")
	}

	// puzzle
	p := cfg.Puzzle
	if p.MaxRounds <= 0 {
		errs = append(errs, "puzzle.max_rounds must be >= 1")
	}
	if p.Zones <= 0 {
		errs = append(errs, "puzzle.zones must be >= 1")
	}
	if len(p.Sets) == 0 {
		errs = append(errs, "puzzle.sets must not be empty")
	}
	for i, s := range p.Sets {
		if len(s.Pieces) != p.Zones {
			errs = append(errs, fmt.Sprintf("puzzle.sets[%d] must have exactly %d pieces", i, p.Zones))
		}
	}

	// spatial
	if len(cfg.Spatial.Targets) == 0 {
		errs = append(errs, "spatial.targets must not be empty")
	}
	seen := map[string]bool{}
	for _, t := range cfg.Spatial.Targets {
		if seen[t] {
			errs = append(errs, fmt.Sprintf("spatial.targets: duplicate %q", t))
		}
		seen[t] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("tuning validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateArithmeticTier(i int, t ArithmeticTier, options int) []string {
	var errs []string
	prefix := fmt.Sprintf("arithmetic.tiers[%d]", i)
	if t.Min < 2 || t.Max <= t.Min {
		errs = append(errs, prefix+": range must satisfy 2 <= min < max")
	}
	// decoys are other targets of the same range, all distinct
	if t.Max-t.Min < options {
		errs = append(errs, fmt.Sprintf("%s: range must hold at least %d distinct targets", prefix, options))
	}
	switch t.Op {
	case OpSum:
	case OpDifference:
		if t.Span <= 1 || t.Cap <= t.Min+1 {
			errs = append(errs, prefix+": difference needs span > 1 and cap > min+1")
		}
	case OpProduct:
		if t.FactorMin < 2 || t.FactorMax < t.FactorMin {
			errs = append(errs, prefix+": product needs 2 <= factor_min <= factor_max")
		}
		if t.CofactorMin < 2 || t.CofactorMax < t.CofactorMin {
			errs = append(errs, prefix+": product needs 2 <= cofactor_min <= cofactor_max")
		}
	default:
		errs = append(errs, prefix+": op must be one of: sum, difference, product")
	}
	return errs
}
