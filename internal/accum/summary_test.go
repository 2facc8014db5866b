package accum

import (
	"math"
	"math/rand"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
)

func TestSummaryKnownValues(t *testing.T) {
	s := NewSummary()
	for _, v := range []float64{10, 12, 9, 11, 13} {
		s.Add(v)
	}

	assert.Equal(t, int64(5), s.N())
	assert.InDelta(t, 11.0, s.Mean(), 1e-12)
	assert.InDelta(t, 2.5, s.Variance(), 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), s.StdDev(), 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), s.StandardError(), 1e-12)
	assert.InDelta(t, 55.0, s.Sum(), 1e-12)
	assert.InDelta(t, 10.0, s.SumSquaredDeviations(), 1e-12)
	assert.Equal(t, 9.0, s.Min())
	assert.Equal(t, 13.0, s.Max())
}

func TestSummaryDegenerate(t *testing.T) {
	s := NewSummary()
	assert.True(t, math.IsNaN(s.Mean()))
	assert.True(t, math.IsNaN(s.Min()))
	assert.True(t, math.IsNaN(s.Variance()))

	s.Add(4)
	assert.Equal(t, 4.0, s.Mean())
	assert.True(t, math.IsNaN(s.Variance()), "variance is undefined for N=1")
	assert.True(t, math.IsNaN(s.StdDev()))
	assert.True(t, math.IsNaN(s.StandardError()))
}

func TestSummaryIgnoresNaN(t *testing.T) {
	s := NewSummary()
	s.Add(1)
	s.Add(math.NaN())
	s.Add(3)
	assert.Equal(t, int64(2), s.N())
	assert.Equal(t, 2.0, s.Mean())
}

func TestSummaryIgnoresInfinity(t *testing.T) {
	a, b := NewSummary(), NewSummary()
	for _, v := range []float64{1, 2, math.Inf(1), 3, math.Inf(-1)} {
		a.Add(v)
	}
	for _, v := range []float64{math.Inf(-1), 3, 2, 1, math.Inf(1)} {
		b.Add(v)
	}
	for _, s := range []*Summary{a, b} {
		assert.Equal(t, int64(3), s.N())
		assert.InDelta(t, 2.0, s.Mean(), 1e-12)
		assert.InDelta(t, 1.0, s.Variance(), 1e-12)
		assert.Equal(t, 3.0, s.Max())
	}
}

func TestSummaryMatchesReferenceStats(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]float64, 500)
	s := NewSummary()
	for i := range data {
		data[i] = rng.NormFloat64()*3 + 100
		s.Add(data[i])
	}

	mean, _ := stats.Mean(data)
	variance, _ := stats.SampleVariance(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	assert.InDelta(t, mean, s.Mean(), 1e-9)
	assert.InDelta(t, variance, s.Variance(), 1e-9)
	assert.Equal(t, min, s.Min())
	assert.Equal(t, max, s.Max())
}

// TestSummaryOrderIndependence feeds permutations of one multiset
func TestSummaryOrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]float64, 200)
	for i := range data {
		data[i] = rng.ExpFloat64() * 50
	}

	ref := NewSummary()
	for _, v := range data {
		ref.Add(v)
	}

	for trial := 0; trial < 20; trial++ {
		perm := rng.Perm(len(data))
		s := NewSummary()
		for _, i := range perm {
			s.Add(data[i])
		}
		assert.Equal(t, ref.N(), s.N())
		assert.InDelta(t, ref.Mean(), s.Mean(), 1e-9)
		assert.InEpsilon(t, ref.Variance(), s.Variance(), 1e-9)
		assert.Equal(t, ref.Min(), s.Min())
		assert.Equal(t, ref.Max(), s.Max())
	}
}

func TestSummaryMerge(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data := make([]float64, 301)
	for i := range data {
		data[i] = rng.NormFloat64()*10 - 5
	}

	whole := NewSummary()
	for _, v := range data {
		whole.Add(v)
	}

	for _, cut := range []int{0, 1, 150, 300, 301} {
		a, b := NewSummary(), NewSummary()
		for _, v := range data[:cut] {
			a.Add(v)
		}
		for _, v := range data[cut:] {
			b.Add(v)
		}

		ab := a.Clone()
		ab.Merge(b)
		ba := b.Clone()
		ba.Merge(a)

		for _, m := range []*Summary{ab, ba} {
			assert.Equal(t, whole.N(), m.N(), "cut=%d", cut)
			assert.InDelta(t, whole.Mean(), m.Mean(), 1e-9, "cut=%d", cut)
			assert.InEpsilon(t, whole.Variance(), m.Variance(), 1e-9, "cut=%d", cut)
			assert.Equal(t, whole.Min(), m.Min(), "cut=%d", cut)
			assert.Equal(t, whole.Max(), m.Max(), "cut=%d", cut)
		}
	}
}

func TestSummaryMergeAssociative(t *testing.T) {
	parts := [][]float64{{1, 2, 3}, {10}, {-4, 8, 8, 0.5}}
	sums := make([]*Summary, len(parts))
	for i, p := range parts {
		sums[i] = NewSummary()
		for _, v := range p {
			sums[i].Add(v)
		}
	}

	left := sums[0].Clone()
	left.Merge(sums[1])
	left.Merge(sums[2])

	right := sums[1].Clone()
	right.Merge(sums[2])
	tmp := sums[0].Clone()
	tmp.Merge(right)

	assert.InDelta(t, left.Mean(), tmp.Mean(), 1e-12)
	assert.InDelta(t, left.Variance(), tmp.Variance(), 1e-12)
}

func TestSummaryMergeNilAndEmpty(t *testing.T) {
	s := NewSummary()
	s.Add(2)
	s.Merge(nil)
	s.Merge(NewSummary())
	assert.Equal(t, int64(1), s.N())

	e := NewSummary()
	e.Merge(s)
	assert.Equal(t, 2.0, e.Mean())
}
