// Package fitness implements the two evaluator facades (§4.H), the
// parallel population driver (§4.I, §5), and the local-optimizer
// collaborator contract (§6).
package fitness

import (
	"github.com/wildfunctions/gpeval/pkg/dataset"
	"github.com/wildfunctions/gpeval/pkg/expr"
)

// OptimizeSummary reports what a LocalOptimizer.Optimize call did.
type OptimizeSummary struct {
	Iterations    int
	FinalResidual float64
}

// LocalOptimizer tunes a tree's Constant node values against target
// values over a training range (§6 "Consumed from the local optimizer").
// Implementations must mutate only nodes where Node.IsConstant() is true;
// Variable weights are never touched by the optimizer (§6 resolving the
// spec's Open Question on Variable weight tunability — Variable weight
// semantics are a primitive-set/tree-construction concern, out of scope
// here).
type LocalOptimizer interface {
	Optimize(tree *expr.Tree, ds *dataset.Dataset, target []float64, r dataset.Range, maxIterations int) (OptimizeSummary, error)
}

// NoopOptimizer is a LocalOptimizer that does nothing: it never mutates
// the tree and always reports zero iterations. It lets the fitness
// facades run without a real NLLS optimizer wired in.
type NoopOptimizer struct{}

func (NoopOptimizer) Optimize(tree *expr.Tree, ds *dataset.Dataset, target []float64, r dataset.Range, maxIterations int) (OptimizeSummary, error) {
	return OptimizeSummary{Iterations: 0}, nil
}
