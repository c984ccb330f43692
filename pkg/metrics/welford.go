// Package metrics implements the numerically-stable statistics the
// fitness facades build on (§4.G): Welford online mean/variance, a
// running Pearson R calculator, linear scaling, NMSE, and R².
package metrics

// Welford accumulates mean and variance online using the
// Welford/Knuth algorithm, which avoids the catastrophic cancellation of
// the naive sum-of-squares formula.
type Welford struct {
	count int64
	mean  float64
	m2    float64 // sum of squared deviations from the running mean
}

// Add folds x into the running statistics.
func (w *Welford) Add(x float64) {
	w.count++
	delta := x - w.mean
	w.mean += delta / float64(w.count)
	delta2 := x - w.mean
	w.m2 += delta * delta2
}

// Count returns the number of values folded in so far.
func (w *Welford) Count() int64 { return w.count }

// Mean returns the running mean, or 0 if no values have been added.
func (w *Welford) Mean() float64 { return w.mean }

// Variance returns the running population variance (divide by N, not
// N-1), or 0 if fewer than one value has been added.
func (w *Welford) Variance() float64 {
	if w.count == 0 {
		return 0
	}
	return w.m2 / float64(w.count)
}

// Combine merges other's statistics into w using the parallel variance
// combination formula, so partial Welford accumulators from independent
// goroutines can be tree-reduced (§4.G "supports combine(other) for
// tree-reduction across threads").
func (w *Welford) Combine(other *Welford) {
	if other.count == 0 {
		return
	}
	if w.count == 0 {
		*w = *other
		return
	}
	n1, n2 := float64(w.count), float64(other.count)
	delta := other.mean - w.mean
	total := n1 + n2

	newMean := w.mean + delta*n2/total
	newM2 := w.m2 + other.m2 + delta*delta*n1*n2/total

	w.count += other.count
	w.mean = newMean
	w.m2 = newM2
}

// MeanVariance folds every value in xs and returns (mean, variance) in
// one call.
func MeanVariance(xs []float64) (mean, variance float64) {
	var w Welford
	for _, x := range xs {
		w.Add(x)
	}
	return w.Mean(), w.Variance()
}
