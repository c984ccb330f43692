// Package eval implements the batched expression evaluator (§4.E) and its
// operator kernels (§4.F), grounded in
// original_source/include/operon/core/eval_detail.hpp's apply/accumulate
// n-ary dispatch.
package eval

import "math"

// maxGroup is the maximum number of operands combined by a single
// apply/accumulate call, matching eval_detail.hpp's five-wide templates.
const maxGroup = 5

// applyAdd writes out[i] = sum(ins[j][i]) for the first operand group.
func applyAdd(out []float64, ins ...[]float64) {
	for i := range out {
		var s float64
		for _, in := range ins {
			s += in[i]
		}
		out[i] = s
	}
}

// accumulateAdd merges a later operand group into out by addition.
func accumulateAdd(out []float64, ins ...[]float64) {
	for i := range out {
		var s float64
		for _, in := range ins {
			s += in[i]
		}
		out[i] += s
	}
}

// applySub writes out = ins[0] - sum(ins[1:]) for the first group, matching
// eval_detail.hpp's grouping: all non-first operands in a group are
// summed once, then subtracted, rather than folded one at a time (§9
// Design Notes, "Open question" on Sub grouping — preserved verbatim here
// to match reference numerics).
func applySub(out []float64, ins ...[]float64) {
	for i := range out {
		var s float64
		for _, in := range ins[1:] {
			s += in[i]
		}
		out[i] = ins[0][i] - s
	}
}

// accumulateSub subtracts the sum of a later operand group from out.
func accumulateSub(out []float64, ins ...[]float64) {
	for i := range out {
		var s float64
		for _, in := range ins {
			s += in[i]
		}
		out[i] -= s
	}
}

// applyMul writes out[i] = product(ins[j][i]) for the first group.
func applyMul(out []float64, ins ...[]float64) {
	for i := range out {
		p := 1.0
		for _, in := range ins {
			p *= in[i]
		}
		out[i] = p
	}
}

// accumulateMul merges a later operand group into out by multiplication.
func accumulateMul(out []float64, ins ...[]float64) {
	for i := range out {
		p := 1.0
		for _, in := range ins {
			p *= in[i]
		}
		out[i] *= p
	}
}

// applyDiv writes out = ins[0] / product(ins[1:]) for the first group.
func applyDiv(out []float64, ins ...[]float64) {
	for i := range out {
		p := 1.0
		for _, in := range ins[1:] {
			p *= in[i]
		}
		out[i] = ins[0][i] / p
	}
}

// accumulateDiv divides out by the product of a later operand group.
func accumulateDiv(out []float64, ins ...[]float64) {
	for i := range out {
		p := 1.0
		for _, in := range ins {
			p *= in[i]
		}
		out[i] /= p
	}
}

// unaryKernel is the elementwise apply form for a fixed-arity-1 kind.
type unaryKernel func(out, in []float64)

func applyLog(out, in []float64) {
	for i := range out {
		out[i] = math.Log(in[i])
	}
}
func applyExp(out, in []float64) {
	for i := range out {
		out[i] = math.Exp(in[i])
	}
}
func applySin(out, in []float64) {
	for i := range out {
		out[i] = math.Sin(in[i])
	}
}
func applyCos(out, in []float64) {
	for i := range out {
		out[i] = math.Cos(in[i])
	}
}
func applyTan(out, in []float64) {
	for i := range out {
		out[i] = math.Tan(in[i])
	}
}
func applySqrt(out, in []float64) {
	for i := range out {
		out[i] = math.Sqrt(in[i])
	}
}
func applyCbrt(out, in []float64) {
	for i := range out {
		out[i] = math.Cbrt(in[i])
	}
}

// naryFunc is the signature of the per-kind first-group (apply) and
// later-group (accumulate) functions for the n-ary binary kinds (Add, Sub,
// Mul, Div).
type naryFunc func(out []float64, ins ...[]float64)

// dispatchNary partitions ins into groups of up to maxGroup, calling apply
// for the first group and accumulate for each subsequent group, writing
// the final result into out. This mirrors eval_detail.hpp's dispatch_op:
// minimizing writes to out and keeping the rounding-error chain short by
// pre-summing each group of up to five before merging.
func dispatchNary(out []float64, apply, accumulate naryFunc, ins [][]float64) {
	if len(ins) == 0 {
		return
	}
	first := ins
	if len(first) > maxGroup {
		first = ins[:maxGroup]
	}
	apply(out, first...)

	for start := maxGroup; start < len(ins); start += maxGroup {
		end := start + maxGroup
		if end > len(ins) {
			end = len(ins)
		}
		accumulate(out, ins[start:end]...)
	}
}
