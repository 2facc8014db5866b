package distributions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTTestPValue(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		df   float64
		want float64
	}{
		{"one-sample reference", math.Sqrt(2), 4, 0.23019964108049862},
		{"sign symmetric", -math.Sqrt(2), 4, 0.23019964108049862},
		{"two-sample reference", -3.6742346141747673, 4, 0.021311641128756734},
		{"zero", 0, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TTestPValue(tt.t, tt.df), 1e-9)
		})
	}
}

func TestTTestPValueDegenerate(t *testing.T) {
	assert.True(t, math.IsNaN(TTestPValue(1, 0)))
	assert.True(t, math.IsNaN(TTestPValue(1, -1)))
	assert.True(t, math.IsNaN(TTestPValue(math.NaN(), 3)))
	assert.True(t, math.IsNaN(TTestPValue(1, math.NaN())))
}

func TestTCritical(t *testing.T) {
	assert.InDelta(t, 2.7764451051977908, TCritical(0.95, 4), 1e-8)
	assert.True(t, math.IsNaN(TCritical(0.95, 0)))
	assert.True(t, math.IsNaN(TCritical(1.5, 4)))
}

func TestConfidenceInterval(t *testing.T) {
	lo, hi := ConfidenceInterval(1, math.Sqrt(0.5), 4, 0.95)
	assert.InDelta(t, -0.9632431614775552, lo, 1e-8)
	assert.InDelta(t, 2.963243161477555, hi, 1e-8)

	lo, hi = ConfidenceInterval(1, math.NaN(), 4, 0.95)
	assert.True(t, math.IsNaN(lo))
	assert.True(t, math.IsNaN(hi))
}

func TestFTestPValue(t *testing.T) {
	assert.InDelta(t, 0.001991171830418584, FTestPValue(20.846153846153847, 2, 6), 1e-9)
	// F(1, df) = t²
	assert.InDelta(t, TTestPValue(-3.6742346141747673, 4), FTestPValue(13.5, 1, 4), 1e-9)
	assert.Equal(t, 0.0, FTestPValue(math.Inf(1), 2, 6))
	assert.True(t, math.IsNaN(FTestPValue(1, 0, 6)))
	assert.True(t, math.IsNaN(FTestPValue(math.NaN(), 2, 6)))
}
