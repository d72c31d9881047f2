package tier

// Step is a clamped linear schedule: Start + n*Delta, never past Bound.
// A positive Delta ramps up toward Bound, a negative one ramps down.
// Example: Start=10, Delta=-0.5, Bound=5 → 10, 9.5, 9, ... 5, 5.
type Step struct {
	Start float64 `yaml:"start" json:"start"`
	Delta float64 `yaml:"delta" json:"delta"`
	Bound float64 `yaml:"bound" json:"bound"`
}

// At returns the value after n successes.
func (s Step) At(n int) float64 {
	if n < 0 {
		n = 0
	}
	v := s.Start + float64(n)*s.Delta
	switch {
	case s.Delta > 0 && v > s.Bound:
		v = s.Bound
	case s.Delta < 0 && v < s.Bound:
		v = s.Bound
	}
	return v
}

// Reaches returns the first n at which the schedule is at or past x,
// or -1 if it never gets there.
func (s Step) Reaches(x float64) int {
	for n := 0; ; n++ {
		v := s.At(n)
		if (s.Delta >= 0 && v >= x) || (s.Delta < 0 && v <= x) {
			return n
		}
		if v == s.Bound || s.Delta == 0 {
			return -1
		}
	}
}
