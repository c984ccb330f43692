package metrics

import "math"

// PearsonCalculator maintains running mean and co-moment accumulators for
// X, Y, and their product, with Welford-style incremental updates rather
// than plain accumulating sums — the same cancellation-avoidance the
// single-variable Welford type uses, extended to the bivariate case
// (§4.G "Maintains running sums for X, Y, X², Y², XY with Welford-style
// updates"). p.m2X/p.m2Y/p.c are co-moments (n times the population
// variance/covariance), following Welford's own choice to track M2
// rather than a running sum of squares.
type PearsonCalculator struct {
	n            int64
	meanX, meanY float64
	m2X, m2Y     float64 // co-moments: n*VarianceX, n*VarianceY
	c            float64 // co-moment: n*Covariance(X, Y)
}

// Add folds one (x, y) observation into the running accumulators using
// the same incremental update Welford.Add uses for a single variable,
// extended to track the X-Y co-moment alongside each variable's own.
func (p *PearsonCalculator) Add(x, y float64) {
	p.n++
	n := float64(p.n)

	dx := x - p.meanX
	p.meanX += dx / n
	dy := y - p.meanY
	p.meanY += dy / n

	p.m2X += dx * (x - p.meanX)
	p.m2Y += dy * (y - p.meanY)
	p.c += dx * (y - p.meanY)
}

// AddSlices folds every paired (xs[i], ys[i]) observation. It panics if
// the slices have different lengths, since that indicates a caller bug
// rather than a runtime condition to recover from.
func (p *PearsonCalculator) AddSlices(xs, ys []float64) {
	if len(xs) != len(ys) {
		panic("metrics: PearsonCalculator.AddSlices: length mismatch")
	}
	for i := range xs {
		p.Add(xs[i], ys[i])
	}
}

// Combine merges other's accumulators into p using the parallel
// covariance-combination formula (the bivariate analogue of
// Welford.Combine's parallel variance combination), enabling partial
// accumulators from independent goroutines to be tree-reduced.
func (p *PearsonCalculator) Combine(other *PearsonCalculator) {
	if other.n == 0 {
		return
	}
	if p.n == 0 {
		*p = *other
		return
	}

	n1, n2 := float64(p.n), float64(other.n)
	total := n1 + n2
	dx := other.meanX - p.meanX
	dy := other.meanY - p.meanY

	newMeanX := p.meanX + dx*n2/total
	newMeanY := p.meanY + dy*n2/total
	newM2X := p.m2X + other.m2X + dx*dx*n1*n2/total
	newM2Y := p.m2Y + other.m2Y + dy*dy*n1*n2/total
	newC := p.c + other.c + dx*dy*n1*n2/total

	p.n += other.n
	p.meanX = newMeanX
	p.meanY = newMeanY
	p.m2X = newM2X
	p.m2Y = newM2Y
	p.c = newC
}

// MeanX and MeanY return the running means.
func (p *PearsonCalculator) MeanX() float64 { return p.meanX }
func (p *PearsonCalculator) MeanY() float64 { return p.meanY }

// VarianceX and VarianceY return the running population variances.
func (p *PearsonCalculator) VarianceX() float64 {
	if p.n == 0 {
		return 0
	}
	return p.m2X / float64(p.n)
}

func (p *PearsonCalculator) VarianceY() float64 {
	if p.n == 0 {
		return 0
	}
	return p.m2Y / float64(p.n)
}

// Covariance returns the running population covariance of X and Y.
func (p *PearsonCalculator) Covariance() float64 {
	if p.n == 0 {
		return 0
	}
	return p.c / float64(p.n)
}

// Correlation returns the Pearson correlation coefficient r. If either
// variable has zero variance, the correlation is undefined and
// Correlation returns NaN; callers handling the R² facade's degenerate
// case check VarianceX directly against the 1e-12 threshold before
// calling Correlation (§4.H).
//
// Correlation is computed directly from the co-moments (c /
// sqrt(m2X*m2Y)) rather than from Covariance()/sqrt(VarianceX()*VarianceY()):
// the n factors cancel algebraically, and skipping the intermediate
// divide-by-n keeps one fewer rounding step in the hot path.
func (p *PearsonCalculator) Correlation() float64 {
	denom := math.Sqrt(p.m2X * p.m2Y)
	if denom == 0 {
		return math.NaN()
	}
	return p.c / denom
}

// NewPearsonCalculator folds every paired observation from xs and ys and
// returns the resulting calculator.
func NewPearsonCalculator(xs, ys []float64) *PearsonCalculator {
	p := &PearsonCalculator{}
	p.AddSlices(xs, ys)
	return p
}
