// Package stats has the running statistics used to summarize self-play.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm).
type Statistic struct {
	n    int
	last float64
	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.n++
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; 0 with fewer than two samples.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Last() float64 {
	return s.last
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Iterations() int {
	return s.n
}

// ConfidenceInterval returns the bounds of the ci% (0-100) confidence
// interval around the mean.
func (s *Statistic) ConfidenceInterval(ci float64) (float64, float64) {
	half := ZVal(ci) * s.StandardError()
	return s.mean - half, s.mean + half
}

// ProportionInterval is the normal-approximation confidence interval of a
// proportion with the given number of successes out of n trials.
func ProportionInterval(successes, n int, ci float64) (float64, float64, float64) {
	if n == 0 {
		return 0, 0, 0
	}
	p := float64(successes) / float64(n)
	half := ZVal(ci) * math.Sqrt(p*(1-p)/float64(n))
	return p, math.Max(0, p-half), math.Min(1, p+half)
}
