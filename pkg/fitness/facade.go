package fitness

import (
	"math"
	"sync/atomic"

	"github.com/wildfunctions/gpeval/pkg/dataset"
	"github.com/wildfunctions/gpeval/pkg/eval"
	"github.com/wildfunctions/gpeval/pkg/expr"
	"github.com/wildfunctions/gpeval/pkg/metrics"
)

// Problem bundles the dataset-facing context a facade needs to score a
// tree: which dataset, which column is the regression target, which row
// range to train over, and an optional local optimizer (§4.H).
type Problem struct {
	Dataset        *dataset.Dataset
	TargetVariable string
	TrainingRange  dataset.Range

	LocalOptimizer    LocalOptimizer
	LocalIterations   int
	FitnessEvalBudget int64 // 0 means unlimited, per §6
}

// targetValues resolves the Problem's target column over its training
// range.
func (p Problem) targetValues() ([]float64, error) {
	col, err := p.Dataset.ColumnByName(p.TargetVariable)
	if err != nil {
		return nil, err
	}
	r := p.TrainingRange
	if r.Start < 0 || r.End > len(col) || r.Start > r.End {
		return nil, dataset.ErrOutOfRange
	}
	return col[r.Start:r.End], nil
}

// Facade is the shared contract the Parallel Driver calls: evaluate one
// tree against the Problem and return a scalar fitness. Both facades
// increment FitnessEvaluations on every call and, whenever local
// optimization ran, add the optimizer's reported iteration count to
// LocalEvaluations (§4.H, §5 "atomic counters with relaxed ordering"). Budget reports the configured
// FitnessEvalBudget, letting the driver halt further dispatch once the
// count of real evaluations reaches it (§5 "Cancellation & timeouts",
// §6 "fitness_evaluation_budget"); a return of 0 means unlimited.
type Facade interface {
	Evaluate(tree *expr.Tree) (float64, error)
	FitnessEvaluations() int64
	LocalEvaluations() int64
	Budget() int64
}

type counters struct {
	fitnessEvaluations atomic.Int64
	localEvaluations   atomic.Int64
}

func (c *counters) FitnessEvaluations() int64 { return c.fitnessEvaluations.Load() }
func (c *counters) LocalEvaluations() int64   { return c.localEvaluations.Load() }

func (c *counters) runLocalOptimization(problem Problem, evaluator *eval.Evaluator, tree *expr.Tree) error {
	if problem.LocalIterations <= 0 || problem.LocalOptimizer == nil {
		return nil
	}
	target, err := problem.targetValues()
	if err != nil {
		return err
	}
	summary, err := problem.LocalOptimizer.Optimize(tree, problem.Dataset, target, problem.TrainingRange, problem.LocalIterations)
	if err != nil {
		return err
	}
	c.localEvaluations.Add(int64(summary.Iterations))
	return nil
}

// NMSEEvaluator is the minimization facade bounded below by 0 (§4.H
// "NMSE-based").
type NMSEEvaluator struct {
	counters
	Problem   Problem
	Evaluator *eval.Evaluator
}

// NewNMSEEvaluator returns an NMSEEvaluator using the default batch size.
func NewNMSEEvaluator(problem Problem) *NMSEEvaluator {
	return &NMSEEvaluator{Problem: problem, Evaluator: eval.NewEvaluator()}
}

// Budget returns the Problem's configured FitnessEvalBudget.
func (e *NMSEEvaluator) Budget() int64 { return e.Problem.FitnessEvalBudget }

// Evaluate computes the NMSE-based fitness of tree, running the
// configured local optimizer first if enabled.
func (e *NMSEEvaluator) Evaluate(tree *expr.Tree) (float64, error) {
	defer e.fitnessEvaluations.Add(1)

	if err := e.runLocalOptimization(e.Problem, e.Evaluator, tree); err != nil {
		return 0, err
	}

	yHat, err := e.Evaluator.Evaluate(tree, e.Problem.Dataset, e.Problem.TrainingRange)
	if err != nil {
		return 0, err
	}
	y, err := e.Problem.targetValues()
	if err != nil {
		return 0, err
	}

	alpha, beta := metrics.LinearScale(yHat, y)
	scaled := metrics.ApplyScale(yHat, alpha, beta)

	nmse := metrics.NMSE(scaled, y)
	if math.IsNaN(nmse) || math.IsInf(nmse, 0) || nmse < 0 {
		return math.Inf(1), nil
	}
	return nmse, nil
}

// RSquaredEvaluator is the R²-based facade, expressed in minimization
// form (1 - R²) and bounded in [0, 1] (§4.H "R²-based").
type RSquaredEvaluator struct {
	counters
	Problem   Problem
	Evaluator *eval.Evaluator
}

// NewRSquaredEvaluator returns an RSquaredEvaluator using the default
// batch size.
func NewRSquaredEvaluator(problem Problem) *RSquaredEvaluator {
	return &RSquaredEvaluator{Problem: problem, Evaluator: eval.NewEvaluator()}
}

// Budget returns the Problem's configured FitnessEvalBudget.
func (e *RSquaredEvaluator) Budget() int64 { return e.Problem.FitnessEvalBudget }

// Evaluate computes the 1-R²-based fitness of tree, running the
// configured local optimizer first if enabled.
func (e *RSquaredEvaluator) Evaluate(tree *expr.Tree) (float64, error) {
	defer e.fitnessEvaluations.Add(1)

	if err := e.runLocalOptimization(e.Problem, e.Evaluator, tree); err != nil {
		return 0, err
	}

	yHat, err := e.Evaluator.Evaluate(tree, e.Problem.Dataset, e.Problem.TrainingRange)
	if err != nil {
		return 0, err
	}
	y, err := e.Problem.targetValues()
	if err != nil {
		return 0, err
	}

	p := metrics.NewPearsonCalculator(yHat, y)
	const varianceEpsilon = 1e-12
	if p.VarianceX() < varianceEpsilon {
		return 1.0, nil
	}

	r := p.Correlation()
	r2 := r * r
	if math.IsNaN(r2) || math.IsInf(r2, 0) || r2 < 0 || r2 > 1 {
		return 1.0, nil
	}
	return 1 - r2, nil
}
