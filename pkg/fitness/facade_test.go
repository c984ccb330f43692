package fitness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/gpeval/pkg/dataset"
	"github.com/wildfunctions/gpeval/pkg/expr"
)

func perfectFitProblem(t *testing.T) (Problem, uint64) {
	t.Helper()
	xHash := uint64(1)
	ds, err := dataset.NewDataset(
		[]dataset.Variable{{Name: "x", Hash: xHash}, {Name: "y", Hash: 2}},
		[][]float64{{1, 2, 3, 4}, {1, 2, 3, 4}},
		4,
	)
	require.NoError(t, err)

	return Problem{
		Dataset:        ds,
		TargetVariable: "y",
		TrainingRange:  ds.FullRange(),
		LocalOptimizer: NoopOptimizer{},
	}, xHash
}

func TestNMSEEvaluatorPerfectFit(t *testing.T) {
	problem, xHash := perfectFitProblem(t)
	tree := expr.NewBuilder().Var(xHash, 1.0).Build()

	e := NewNMSEEvaluator(problem)
	fit, err := e.Evaluate(tree)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, fit, 1e-9)
	assert.EqualValues(t, 1, e.FitnessEvaluations())
}

func TestRSquaredEvaluatorPerfectFit(t *testing.T) {
	problem, xHash := perfectFitProblem(t)
	tree := expr.NewBuilder().Var(xHash, 1.0).Build()

	e := NewRSquaredEvaluator(problem)
	fit, err := e.Evaluate(tree)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, fit, 1e-9)
}

func TestRSquaredEvaluatorDegenerateConstant(t *testing.T) {
	problem, _ := perfectFitProblem(t)
	tree := expr.NewBuilder().Const(7.0).Build()

	e := NewRSquaredEvaluator(problem)
	fit, err := e.Evaluate(tree)
	require.NoError(t, err)
	assert.Equal(t, 1.0, fit)
}

func TestNMSEEvaluatorMissingVariableSurfaced(t *testing.T) {
	problem, _ := perfectFitProblem(t)
	tree := expr.NewBuilder().Var(999, 1.0).Build()

	e := NewNMSEEvaluator(problem)
	_, err := e.Evaluate(tree)
	assert.ErrorIs(t, err, dataset.ErrMissingVariable)
}

func TestEvaluatorBudgetReflectsProblem(t *testing.T) {
	problem, _ := perfectFitProblem(t)
	problem.FitnessEvalBudget = 42

	assert.EqualValues(t, 42, NewNMSEEvaluator(problem).Budget())
	assert.EqualValues(t, 42, NewRSquaredEvaluator(problem).Budget())
}
