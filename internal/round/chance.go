package round

import (
	"errors"
	"math"
)

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Chance reports a hit with probability p.
// p <= 0 never hits, p >= 1 always hits, otherwise rng.Float64() < p.
func Chance(p float64, rng RandomSource) (bool, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return false, ErrInvalidProb
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}
