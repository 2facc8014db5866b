package hypothesis

import (
	"math"
	"math/rand"
	"testing"

	"hypotest/internal/accum"

	"github.com/stretchr/testify/assert"
)

func leveneSample(values ...float64) LeveneSample {
	s := accum.NewSummary()
	for _, v := range values {
		s.Add(v)
	}
	return LeveneSample{Summary: s, Values: values}
}

func TestLeveneThreeGroups(t *testing.T) {
	res := Levene([]LeveneSample{
		leveneSample(1, 2, 3),
		leveneSample(4, 5, 6),
		leveneSample(7, 8, 10),
	})

	assert.InDelta(t, 0.5161290322580656, res.F, 1e-12)
	assert.Equal(t, int64(2), res.DF1)
	assert.Equal(t, int64(6), res.DF2)
	assert.InDelta(t, 0.6211111874714768, res.P, 1e-9)
}

// TestLeveneTwoGroupShortcutAgrees compares the closed form with the k-group path
func TestLeveneTwoGroupShortcutAgrees(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 50; trial++ {
		n1, n2 := 2+rng.Intn(40), 2+rng.Intn(40)
		a := make([]float64, n1)
		b := make([]float64, n2)
		for i := range a {
			a[i] = rng.NormFloat64() * (1 + rng.Float64())
		}
		for i := range b {
			b[i] = rng.NormFloat64()*3 + 2
		}

		generic := Levene([]LeveneSample{leveneSample(a...), leveneSample(b...)})
		short := LeveneTwoGroup(leveneSample(a...), leveneSample(b...))

		assert.Equal(t, generic.DF1, short.DF1)
		assert.Equal(t, generic.DF2, short.DF2)
		assert.InEpsilon(t, generic.F, short.F, 1e-9, "trial %d", trial)
		assert.InEpsilon(t, generic.P, short.P, 1e-9, "trial %d", trial)
	}
}

func TestLeveneDegenerate(t *testing.T) {
	res := Levene([]LeveneSample{leveneSample(1, 2, 3)})
	assert.True(t, math.IsNaN(res.F))
	assert.True(t, math.IsNaN(res.P))

	res = Levene([]LeveneSample{leveneSample(1, 2), leveneSample()})
	assert.True(t, math.IsNaN(res.F), "empty groups do not count towards k")

	res = LeveneTwoGroup(leveneSample(1, 2), leveneSample())
	assert.True(t, math.IsNaN(res.F))

	// constant groups: no dispersion at all
	res = Levene([]LeveneSample{leveneSample(2, 2), leveneSample(5, 5)})
	assert.True(t, math.IsNaN(res.F))
}

func TestLeveneUsesCompanionMeans(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	shifted := accum.NewSummary()
	for _, v := range values {
		shifted.Add(v + 10)
	}

	own := LeveneTwoGroup(leveneSample(values...), leveneSample(5, 7, 9))
	other := LeveneTwoGroup(LeveneSample{Summary: shifted, Values: values}, leveneSample(5, 7, 9))
	assert.NotEqual(t, own.F, other.F)
}
