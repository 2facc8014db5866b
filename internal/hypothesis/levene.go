package hypothesis

import (
	"math"

	"github.com/montanaflynn/stats"

	"hypotest/internal/accum"
	"hypotest/internal/distributions"
)

// LeveneSample is one group of a Levene test: the companion test's summary,
// whose mean is reused, plus the raw values of the group.
type LeveneSample struct {
	Summary *accum.Summary
	Values  []float64
}

// LeveneStatistic is the outcome of Levene's test
type LeveneStatistic struct {
	F   float64
	DF1 int64
	DF2 int64
	P   float64
}

func (s LeveneSample) deviations() []float64 {
	mean := s.Summary.Mean()
	z := make([]float64, len(s.Values))
	for i, v := range s.Values {
		z[i] = math.Abs(v - mean)
	}
	return z
}

// Levene runs Levene's test over k groups. Empty groups do not count towards k.
//
//	F = (N-k)/(k-1) · Σ nᵢ(z̄ᵢ-z̄)² / ΣΣ(zᵢⱼ-z̄ᵢ)²   with zᵢⱼ = |xᵢⱼ - x̄ᵢ|
func Levene(samples []LeveneSample) LeveneStatistic {
	var (
		groups [][]float64
		all    []float64
	)
	for _, s := range samples {
		if len(s.Values) == 0 {
			continue
		}
		z := s.deviations()
		groups = append(groups, z)
		all = append(all, z...)
	}

	k, n := int64(len(groups)), int64(len(all))
	res := LeveneStatistic{DF1: k - 1, DF2: n - k, F: math.NaN(), P: math.NaN()}
	if k < 2 {
		return res
	}

	total, _ := stats.Sum(all)
	grand := total / float64(n)

	var between, within float64
	for _, z := range groups {
		mean, _ := stats.Mean(z)
		// population variance · nᵢ = Σ(zᵢⱼ - z̄ᵢ)²
		pv, _ := stats.PopulationVariance(z)
		ni := float64(len(z))
		between += ni * (mean - grand) * (mean - grand)
		within += ni * pv
	}

	res.F = float64(n-k) / float64(k-1) * between / within
	res.P = distributions.FTestPValue(res.F, float64(res.DF1), float64(res.DF2))
	return res
}

// LeveneTwoGroup is the two-group form of Levene's test. With k = 2 the
// between-group term reduces to n₁n₂/(n₁+n₂)·(z̄₁-z̄₂)², so
//
//	F = (n₁+n₂-2)/den · num
//
// with num that term and den = (n₁-1)s²z₁ + (n₂-1)s²z₂, both taken from the
// accumulated absolute deviations.
func LeveneTwoGroup(a, b LeveneSample) LeveneStatistic {
	za, zb := accum.NewSummary(), accum.NewSummary()
	for _, z := range a.deviations() {
		za.Add(z)
	}
	for _, z := range b.deviations() {
		zb.Add(z)
	}

	n1, n2 := float64(za.N()), float64(zb.N())
	res := LeveneStatistic{DF1: 1, DF2: za.N() + zb.N() - 2, F: math.NaN(), P: math.NaN()}
	if za.N() == 0 || zb.N() == 0 {
		return res
	}

	d := za.Mean() - zb.Mean()
	num := n1 * n2 / (n1 + n2) * d * d
	den := za.SumSquaredDeviations() + zb.SumSquaredDeviations()

	res.F = (n1 + n2 - 2) / den * num
	res.P = distributions.FTestPValue(res.F, float64(res.DF1), float64(res.DF2))
	return res
}
