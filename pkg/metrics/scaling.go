package metrics

// varianceEpsilon is the degenerate-variance threshold below which
// linear scaling and the R² facade treat a prediction vector as
// effectively constant (§4.G, §4.H).
const varianceEpsilon = 1e-12

// LinearScale computes the slope β and intercept α minimizing
// ‖y - (α + β·ŷ)‖² (§4.G "Linear scaling"). If Var(ŷ) < 1e-12, β is
// defined as 0 and α as mean(y), matching the degenerate-variance
// fallback the spec calls out explicitly.
func LinearScale(yHat, y []float64) (alpha, beta float64) {
	p := NewPearsonCalculator(yHat, y)
	varYHat := p.VarianceX()
	if varYHat < varianceEpsilon {
		return p.MeanY(), 0
	}
	beta = p.Covariance() / varYHat
	alpha = p.MeanY() - beta*p.MeanX()
	return alpha, beta
}

// ApplyScale returns a new slice with yHat[i] transformed to
// alpha + beta*yHat[i].
func ApplyScale(yHat []float64, alpha, beta float64) []float64 {
	out := make([]float64, len(yHat))
	for i, v := range yHat {
		out[i] = alpha + beta*v
	}
	return out
}
