package stats

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.scores))
	}
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
	assert.InDelta(t, 0, ZVal(0), 1e-9)
}

func TestConfidenceInterval(t *testing.T) {
	s := &Statistic{}
	for _, v := range []float64{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Push(v)
	}
	lo, hi := s.ConfidenceInterval(95)
	assert.InDelta(t, 18-1.959964*5.2372293656638/2.8284271247, lo, 1e-4)
	assert.InDelta(t, 18+1.959964*5.2372293656638/2.8284271247, hi, 1e-4)
}

func TestProportionInterval(t *testing.T) {
	p, lo, hi := ProportionInterval(50, 100, 95)
	assert.InDelta(t, 0.5, p, 1e-9)
	assert.InDelta(t, 0.5-0.0979982, lo, 1e-5)
	assert.InDelta(t, 0.5+0.0979982, hi, 1e-5)

	p, lo, hi = ProportionInterval(10, 10, 95)
	assert.Equal(t, 1.0, p)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 1.0, hi)

	p, _, _ = ProportionInterval(0, 0, 95)
	assert.Equal(t, 0.0, p)
}

func TestHistogramText(t *testing.T) {
	assert.Equal(t, "(no data)\n", HistogramText(nil, 5))
	text := HistogramText([]float64{7, 7, 8, 9, 12, 12, 12, 20}, 4)
	assert.NotEmpty(t, text)
	assert.True(t, strings.HasSuffix(text, "\n"))
}
