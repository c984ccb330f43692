package metrics

import "math"

// NMSE computes mean squared error divided by the target's variance
// (§4.G). If Var(y)==0, NMSE is defined as 0 when MSE is also 0 (perfect
// constant match), otherwise +∞.
func NMSE(yHat, y []float64) float64 {
	_, varY := MeanVariance(y)
	mse := meanSquaredError(yHat, y)
	if varY == 0 {
		if mse == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return mse / varY
}

func meanSquaredError(yHat, y []float64) float64 {
	var w Welford
	for i := range yHat {
		d := yHat[i] - y[i]
		w.Add(d * d)
	}
	return w.Mean()
}

// RSquared computes the squared Pearson correlation between prediction
// and target (§4.G).
func RSquared(yHat, y []float64) float64 {
	p := NewPearsonCalculator(yHat, y)
	r := p.Correlation()
	return r * r
}
