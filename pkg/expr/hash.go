package expr

import (
	"math"
	"sort"
)

// mixHash combines a parent's HashValue with its children's
// CalculatedHashValues into the parent's CalculatedHashValue. Children are
// pre-sorted by the caller for commutative kinds so that structurally
// equivalent trees (e.g. Add(a,b) and Add(b,a)) share the same identity
// (§9 Design Notes, "Commutative hashing").
//
// This is an FNV-1a-style mix: deterministic, order-sensitive on the slice
// as given, with no dependency on map iteration order or other
// non-deterministic state.
func mixHash(seed uint64, children []uint64) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := seed ^ offset64
	h *= prime64
	for _, c := range children {
		h ^= c
		h *= prime64
	}
	return h
}

// sortedHashes returns a new slice with h sorted ascending. Used for
// commutative kinds; the sort is a stable sort of a small fixed-size array,
// not a set container, per §9.
func sortedHashes(h []uint64) []uint64 {
	out := make([]uint64, len(h))
	copy(out, h)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CalculatedHash computes the CalculatedHashValue for a node given its
// HashValue and its children's CalculatedHashValues in left-to-right source
// order (§4.B). For commutative kinds the child hashes are sorted before
// mixing; for all other kinds they are used in the given order.
func CalculatedHash(kind NodeType, hashValue uint64, childHashes []uint64) uint64 {
	if kind.IsCommutative() {
		childHashes = sortedHashes(childHashes)
	}
	return mixHash(hashValue, childHashes)
}

// VariableCalculatedHash computes a Variable leaf's CalculatedHashValue by
// mixing its weight into its column hash (§4.A: "a deterministic function
// of (kind, weight for Variable, ...)"). Weight is part of a Variable's
// identity — unlike a Constant's value, which the local optimizer may
// tune in place without changing the tree's structural identity, a
// Variable's weight is never mutated after construction, so two
// same-column Variables with different weights are genuinely distinct
// individuals and must not collide under Equal.
func VariableCalculatedHash(columnHash uint64, weight float64) uint64 {
	return mixHash(columnHash, []uint64{math.Float64bits(weight)})
}
