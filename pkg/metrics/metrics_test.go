package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelfordMeanVariance(t *testing.T) {
	mean, variance := MeanVariance([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 4.0, variance, 1e-9)
}

func TestWelfordCombine(t *testing.T) {
	var a, b, combined Welford
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	for i, v := range values {
		if i < 4 {
			a.Add(v)
		} else {
			b.Add(v)
		}
		combined.Add(v)
	}

	a.Combine(&b)
	assert.InDelta(t, combined.Mean(), a.Mean(), 1e-9)
	assert.InDelta(t, combined.Variance(), a.Variance(), 1e-9)
}

func TestPearsonCorrelationPerfectFit(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}

	p := NewPearsonCalculator(x, y)
	assert.InDelta(t, 1.0, p.Correlation(), 1e-9)
}

func TestPearsonCombineMatchesWholeSeries(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{2, 3, 5, 7, 8, 9, 13, 15}

	var a, b, whole PearsonCalculator
	for i := range x {
		if i < 3 {
			a.Add(x[i], y[i])
		} else {
			b.Add(x[i], y[i])
		}
		whole.Add(x[i], y[i])
	}

	a.Combine(&b)
	assert.InDelta(t, whole.MeanX(), a.MeanX(), 1e-9)
	assert.InDelta(t, whole.MeanY(), a.MeanY(), 1e-9)
	assert.InDelta(t, whole.VarianceX(), a.VarianceX(), 1e-9)
	assert.InDelta(t, whole.Covariance(), a.Covariance(), 1e-9)
	assert.InDelta(t, whole.Correlation(), a.Correlation(), 1e-9)
}

func TestPearsonDegenerateVarianceYieldsNaNCorrelation(t *testing.T) {
	x := []float64{5, 5, 5, 5}
	y := []float64{1, 2, 3, 4}

	p := NewPearsonCalculator(x, y)
	assert.True(t, math.IsNaN(p.Correlation()))
}

func TestLinearScaleIdempotence(t *testing.T) {
	yHat := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 9, 11, 15}

	alpha, beta := LinearScale(yHat, y)
	scaled := ApplyScale(yHat, alpha, beta)

	alpha2, beta2 := LinearScale(scaled, y)
	assert.InDelta(t, 0.0, alpha2, 1e-9)
	assert.InDelta(t, 1.0, beta2, 1e-9)
}

func TestLinearScaleDegenerateVariance(t *testing.T) {
	yHat := []float64{5, 5, 5, 5}
	y := []float64{1, 2, 3, 4}

	alpha, beta := LinearScale(yHat, y)
	assert.Equal(t, 0.0, beta)
	assert.InDelta(t, 2.5, alpha, 1e-9)
}

func TestNMSEZeroWhenEqual(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	assert.Equal(t, 0.0, NMSE(y, y))
}

func TestNMSEDegenerateTargetVariance(t *testing.T) {
	y := []float64{5, 5, 5, 5}
	assert.Equal(t, 0.0, NMSE(y, y))

	yHat := []float64{1, 2, 3, 4}
	assert.True(t, math.IsInf(NMSE(yHat, y), 1))
}

func TestRSquaredBoundsAndPerfectFit(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, RSquared(y, y), 1e-9)

	noisy := []float64{1, 2.1, 2.9, 4.2, 4.8}
	r2 := RSquared(noisy, y)
	assert.GreaterOrEqual(t, r2, 0.0)
	assert.LessOrEqual(t, r2, 1.0)
}
