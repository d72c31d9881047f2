package session

import (
	"time"

	"github.com/xtding233/cogtrain-backend/internal/stats"
)

// Metrics accumulates the outcome of a session. Only a judged response mutates it.
type Metrics struct {
	Correct   int
	Incorrect int
	Samples   []time.Duration
	Total     time.Duration

	// language transcript: the words asked for and the sentence given, per counted attempt
	Requested []string
	Given     []string
}

func (m *Metrics) Succeed() { m.Correct++ }
func (m *Metrics) Fail()    { m.Incorrect++ }

// Observe records one response time.
func (m *Metrics) Observe(d time.Duration) {
	m.Samples = append(m.Samples, d)
	m.Total += d
}

func (m Metrics) Attempts() int { return m.Correct + m.Incorrect }

// AverageResponse is Total over the number of observed samples, zero without samples.
func (m Metrics) AverageResponse() time.Duration {
	if len(m.Samples) == 0 {
		return 0
	}
	return m.Total / time.Duration(len(m.Samples))
}

// ErrorPercent is Incorrect / Attempts × 100, zero without attempts.
func (m Metrics) ErrorPercent() float64 {
	if m.Attempts() == 0 {
		return 0
	}
	return float64(m.Incorrect) * 100 / float64(m.Attempts())
}

// ResponseStats summarizes the response time samples in seconds.
func (m Metrics) ResponseStats() stats.Summary {
	xs := make([]float64, len(m.Samples))
	for i, d := range m.Samples {
		xs[i] = d.Seconds()
	}
	return stats.Summarize(xs)
}

func (m Metrics) clone() Metrics {
	c := m
	c.Samples = append([]time.Duration(nil), m.Samples...)
	c.Requested = append([]string(nil), m.Requested...)
	c.Given = append([]string(nil), m.Given...)
	return c
}
