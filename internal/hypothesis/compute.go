package hypothesis

import (
	"math"

	"hypotest/domain/stattest"
	"hypotest/internal/accum"
	"hypotest/internal/distributions"
)

// meanTestResult is a t-test of a single sample's mean against zero
type meanTestResult struct {
	mean, sd, se float64
	t, df, p     float64
	lower, upper float64
}

// meanTest tests the mean of s against zero. The one-sample test feeds it
// x - μ₀, the paired test x - y.
func meanTest(s *accum.Summary, confidence float64) meanTestResult {
	r := meanTestResult{
		mean: s.Mean(),
		sd:   s.StdDev(),
		se:   s.StandardError(),
		df:   degreesOfFreedom(s.N() - 1),
	}
	r.t = r.mean / r.se
	r.p = distributions.TTestPValue(r.t, r.df)
	r.lower, r.upper = distributions.ConfidenceInterval(r.mean, r.se, r.df, confidence)
	return r
}

// degreesOfFreedom converts an integral df, mapping negative values to NaN
func degreesOfFreedom(df int64) float64 {
	if df < 0 {
		return math.NaN()
	}
	return float64(df)
}

func describe(column, group string, s *accum.Summary, missing, missingGroup int64) stattest.Descriptive {
	return stattest.Descriptive{
		Column:       column,
		Group:        group,
		N:            s.N(),
		Missing:      missing,
		MissingGroup: missingGroup,
		Mean:         s.Mean(),
		StdDev:       s.StdDev(),
		StdErr:       s.StandardError(),
		Min:          s.Min(),
		Max:          s.Max(),
	}
}
