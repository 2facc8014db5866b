// Package distributions wraps the reference distributions used by the tests.
//
// Degenerate parameters (df <= 0, NaN inputs) yield NaN rather than a
// conventional p = 1, so that undefined results surface as missing cells.
package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// StudentsT returns the standard Student's t distribution with df degrees of freedom
func StudentsT(df float64) distuv.StudentsT {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
}

// TTestPValue computes the two-tailed p-value of a t statistic
func TTestPValue(t, df float64) float64 {
	if !(df > 0) || math.IsNaN(t) {
		return math.NaN()
	}
	return 2 * StudentsT(df).Survival(math.Abs(t))
}

// TCritical returns the t quantile for a two-sided confidence level, i.e.
// t*(df, α/2) with α = 1 - confidence
func TCritical(confidence, df float64) float64 {
	if !(df > 0) || !(confidence > 0 && confidence < 1) {
		return math.NaN()
	}
	alpha := 1.0 - confidence
	return StudentsT(df).Quantile(1.0 - alpha/2.0)
}

// ConfidenceInterval returns center ± t*(df, α/2)·se
func ConfidenceInterval(center, se, df, confidence float64) (lower, upper float64) {
	margin := TCritical(confidence, df) * se
	return center - margin, center + margin
}

// FTestPValue computes the upper-tail p-value of an F statistic
func FTestPValue(f, df1, df2 float64) float64 {
	if !(df1 > 0) || !(df2 > 0) || math.IsNaN(f) {
		return math.NaN()
	}
	if math.IsInf(f, 1) {
		return 0
	}
	fDist := distuv.F{D1: df1, D2: df2}
	return fDist.Survival(f)
}
