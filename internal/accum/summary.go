// Package accum provides streaming sufficient statistics for the hypothesis tests.
package accum

import "math"

// Summary is an append-only accumulator of a numeric sample.
//
// Mean and the sum of squared deviations are maintained with Welford's update.
// Variance, StdDev and StandardError return NaN while N < 2; Mean, Min and Max
// return NaN while N == 0. NaN inputs are ignored by Add.
type Summary struct {
	n    int64
	mean float64
	m2   float64
	min  float64
	max  float64
}

// NewSummary returns an empty accumulator
func NewSummary() *Summary {
	return &Summary{}
}

// Add adds x to the sample. NaN and infinite values are ignored.
func (s *Summary) Add(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	s.n++
	if s.n == 1 {
		s.mean, s.min, s.max = x, x, x
		return
	}
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)
	if x < s.min {
		s.min = x
	}
	if x > s.max {
		s.max = x
	}
}

// Merge folds other into s using the pairwise update of Chan et al.
// The result does not depend on the order in which samples were split.
func (s *Summary) Merge(other *Summary) {
	if other == nil || other.n == 0 {
		return
	}
	if s.n == 0 {
		*s = *other
		return
	}
	n := s.n + other.n
	delta := other.mean - s.mean
	na, nb := float64(s.n), float64(other.n)
	s.mean = (na*s.mean + nb*other.mean) / float64(n)
	s.m2 += other.m2 + delta*delta*na*nb/float64(n)
	s.n = n
	s.min = math.Min(s.min, other.min)
	s.max = math.Max(s.max, other.max)
}

// Clone returns an independent copy
func (s *Summary) Clone() *Summary {
	c := *s
	return &c
}

// N returns the number of values added
func (s *Summary) N() int64 {
	return s.n
}

// Mean returns the sample mean
func (s *Summary) Mean() float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.mean
}

// Sum returns the sum of all values
func (s *Summary) Sum() float64 {
	return s.mean * float64(s.n)
}

// SumSquaredDeviations returns Σ(x - mean)²
func (s *Summary) SumSquaredDeviations() float64 {
	return s.m2
}

// Variance returns the sample variance (divide by N-1)
func (s *Summary) Variance() float64 {
	if s.n < 2 {
		return math.NaN()
	}
	return s.m2 / float64(s.n-1)
}

// StdDev returns the sample standard deviation
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns sqrt(Variance/N)
func (s *Summary) StandardError() float64 {
	return math.Sqrt(s.Variance() / float64(s.n))
}

// Min returns the smallest value
func (s *Summary) Min() float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.min
}

// Max returns the largest value
func (s *Summary) Max() float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.max
}
