package eval

import (
	"errors"
	"fmt"

	"github.com/wildfunctions/gpeval/pkg/dataset"
	"github.com/wildfunctions/gpeval/pkg/expr"
)

// DefaultBatchSize is B=64, the scratch matrix batch height (§4.E).
const DefaultBatchSize = 64

// ErrInvalidBatchSize is returned when a negative batch size is
// configured (§6 "batch_size: ... must be > 0"). A zero BatchSize is
// treated as "unset" and falls back to DefaultBatchSize; a negative one
// is a configuration error and is rejected rather than silently
// substituted (§7 "the core never silently substitutes default values"
// for invalid configuration).
var ErrInvalidBatchSize = errors.New("eval: batch size must be > 0")

// Evaluator computes tree outputs over a dataset row range using the
// batched scratch-matrix algorithm (§4.E). It is stateless and safe for
// concurrent use by multiple goroutines against the same Dataset, since
// each call allocates its own scratch matrix (§5 "Scratch matrices are
// per-thread (or per-task) and never shared").
type Evaluator struct {
	BatchSize int
}

// NewEvaluator returns an Evaluator using DefaultBatchSize.
func NewEvaluator() *Evaluator { return &Evaluator{BatchSize: DefaultBatchSize} }

// Evaluate computes tree's output for every row in r, returning a slice
// of length r.Len(). It is a pure function of (tree, ds, r): no state is
// read or written outside the call (§4.E "State machine: none").
func (e *Evaluator) Evaluate(tree *expr.Tree, ds *dataset.Dataset, r dataset.Range) ([]float64, error) {
	batchSize := e.BatchSize
	if batchSize < 0 {
		return nil, ErrInvalidBatchSize
	}
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	if r.Start < 0 || r.End > ds.Rows() || r.Start > r.End {
		return nil, fmt.Errorf("range [%d,%d) over %d rows: %w", r.Start, r.End, ds.Rows(), dataset.ErrOutOfRange)
	}
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	nodes := tree.Nodes()
	length := len(nodes)
	result := make([]float64, r.Len())
	if length == 0 {
		return result, nil
	}

	mat := newScratch(length, batchSize)
	root := tree.Root()

	for batchStart := r.Start; batchStart < r.End; batchStart += batchSize {
		batchEnd := batchStart + batchSize
		if batchEnd > r.End {
			batchEnd = r.End
		}
		width := batchEnd - batchStart
		mat.resize(width)

		if err := evaluateBatch(tree, ds, mat, batchStart, width); err != nil {
			return nil, err
		}

		copy(result[batchStart-r.Start:batchEnd-r.Start], mat.col(root))
		mat.resize(batchSize)
	}

	return result, nil
}

func evaluateBatch(tree *expr.Tree, ds *dataset.Dataset, mat *scratch, batchStart, width int) error {
	nodes := tree.Nodes()

	for p, n := range nodes {
		out := mat.col(p)[:width]
		switch {
		case n.IsConstant():
			fillConstant(out, n.Value)
		case n.IsVariable():
			col, err := ds.ColumnByHash(n.VariableHash)
			if err != nil {
				return fmt.Errorf("eval: node %d: %w", p, err)
			}
			fillVariable(out, col[batchStart:batchStart+width], n.Value)
		default:
			children, ok := tree.ChildIndices(p)
			if !ok {
				return fmt.Errorf("eval: node %d: %w", p, expr.ErrInvalidTree)
			}
			ins := make([][]float64, len(children))
			for i, c := range children {
				ins[i] = mat.col(c)[:width]
			}
			if err := applyKernel(n.Kind, out, ins); err != nil {
				return fmt.Errorf("eval: node %d: %w", p, err)
			}
		}
	}
	return nil
}

func fillConstant(out []float64, v float64) {
	for i := range out {
		out[i] = v
	}
}

func fillVariable(out, column []float64, weight float64) {
	for i := range out {
		out[i] = weight * column[i]
	}
}

// applyKernel dispatches to the operator kernel for kind, handling both
// n-ary binary kinds (Add/Sub/Mul/Div, via the 5-group apply/accumulate
// split) and fixed-arity-1 unary kinds.
func applyKernel(kind expr.NodeType, out []float64, ins [][]float64) error {
	switch kind {
	case expr.Add:
		dispatchNary(out, applyAdd, accumulateAdd, ins)
	case expr.Sub:
		if len(ins) == 1 {
			for i := range out {
				out[i] = -ins[0][i]
			}
			return nil
		}
		dispatchNary(out, applySub, accumulateSub, ins)
	case expr.Mul:
		dispatchNary(out, applyMul, accumulateMul, ins)
	case expr.Div:
		if len(ins) == 1 {
			for i := range out {
				out[i] = 1 / ins[0][i]
			}
			return nil
		}
		dispatchNary(out, applyDiv, accumulateDiv, ins)
	case expr.Log:
		applyLog(out, ins[0])
	case expr.Exp:
		applyExp(out, ins[0])
	case expr.Sin:
		applySin(out, ins[0])
	case expr.Cos:
		applyCos(out, ins[0])
	case expr.Tan:
		applyTan(out, ins[0])
	case expr.Sqrt:
		applySqrt(out, ins[0])
	case expr.Cbrt:
		applyCbrt(out, ins[0])
	default:
		return fmt.Errorf("no kernel for kind %s", kind)
	}
	return nil
}
