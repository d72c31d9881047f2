// Package stats summarizes numeric samples: session response times and
// simulated session lengths.
package stats

import (
	"math"
	"sort"
)

// Summary describes a sample set.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Summarize computes mean, population variance and interpolated percentiles.
// The result does not depend on the order of xs.
func Summarize(xs []float64) Summary {
	n := len(xs)
	if n == 0 {
		return Summary{}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)

	return Summary{
		N:      n,
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(cp, 0.50),
		P90:    percentile(cp, 0.90),
		P99:    percentile(cp, 0.99),
	}
}

// Ints is Summarize for integer samples.
func Ints(xs []int) Summary {
	fs := make([]float64, len(xs))
	for i, v := range xs {
		fs[i] = float64(v)
	}
	return Summarize(fs)
}

// percentile expects sorted input.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	f := pos - float64(i)
	if i+1 >= n {
		return sorted[i]
	}
	return sorted[i]*(1-f) + sorted[i+1]*f
}
