// Package expr implements the postfix expression tree representation used
// by the batched evaluator: NodeType, Node, Tree, and PrimitiveSet.
package expr

import "fmt"

// NodeType identifies the kind of an expression node. Each kind has a
// distinct bit so sets of kinds can be expressed and combined as bitmasks.
type NodeType uint16

const (
	Add NodeType = 1 << iota
	Mul
	Sub
	Div
	Log
	Exp
	Sin
	Cos
	Tan
	Sqrt
	Cbrt
	Constant
	Variable
)

var nodeTypeNames = map[NodeType]string{
	Add:      "Add",
	Mul:      "Mul",
	Sub:      "Sub",
	Div:      "Div",
	Log:      "Log",
	Exp:      "Exp",
	Sin:      "Sin",
	Cos:      "Cos",
	Tan:      "Tan",
	Sqrt:     "Sqrt",
	Cbrt:     "Cbrt",
	Constant: "Constant",
	Variable: "Variable",
}

// String returns the kind's name, e.g. "Add".
func (k NodeType) String() string {
	if name, ok := nodeTypeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeType(%d)", uint16(k))
}

// IsCommutative reports whether kind k is Add or Mul.
func (k NodeType) IsCommutative() bool {
	return k == Add || k == Mul
}

// IsBinary reports whether kind k is a binary operator (Add, Mul, Sub, Div).
// Binary kinds may be stored with arity > 2; the evaluator treats them as
// n-ary (§4.E).
func (k NodeType) IsBinary() bool {
	return k == Add || k == Mul || k == Sub || k == Div
}

// IsUnary reports whether kind k is a fixed-arity-1 operator.
func (k NodeType) IsUnary() bool {
	switch k {
	case Log, Exp, Sin, Cos, Tan, Sqrt, Cbrt:
		return true
	default:
		return false
	}
}

// IsLeaf reports whether kind k is Constant or Variable.
func (k NodeType) IsLeaf() bool {
	return k == Constant || k == Variable
}

// DefaultArity returns the arity a freshly constructed node of kind k has:
// 2 for binary kinds, 1 for unary kinds, 0 for leaves.
func (k NodeType) DefaultArity() int {
	switch {
	case k.IsBinary():
		return 2
	case k.IsUnary():
		return 1
	default:
		return 0
	}
}

// NodeTypeSet is a bitmask of NodeType values, used by PrimitiveSet
// configuration (§4.C) to enumerate enabled kinds.
type NodeTypeSet uint16

// AllNodeTypes enumerates every kind defined by the grammar.
var AllNodeTypes = []NodeType{Add, Mul, Sub, Div, Log, Exp, Sin, Cos, Tan, Sqrt, Cbrt, Constant, Variable}

// NewNodeTypeSet builds a set from individual kinds.
func NewNodeTypeSet(kinds ...NodeType) NodeTypeSet {
	var s NodeTypeSet
	for _, k := range kinds {
		s |= NodeTypeSet(k)
	}
	return s
}

// Union returns s ∪ other.
func (s NodeTypeSet) Union(other NodeTypeSet) NodeTypeSet { return s | other }

// Difference returns s \ other.
func (s NodeTypeSet) Difference(other NodeTypeSet) NodeTypeSet { return s &^ other }

// Contains reports whether kind k is a member of s.
func (s NodeTypeSet) Contains(k NodeType) bool { return s&NodeTypeSet(k) != 0 }

// Node is the atomic tree element: kind, arity, subtree length, hashes, and
// a scalar value. It is a single concrete struct rather than a polymorphic
// hierarchy so the postfix node array stays contiguous and cache-friendly
// (§9 Design Notes, "Heterogeneous node records").
type Node struct {
	Kind    NodeType
	Arity   int
	Length  int
	Enabled bool

	// HashValue is the structural hash: a deterministic function of kind
	// and identity alone (for Variable, of the referenced column's hash).
	HashValue uint64

	// CalculatedHashValue additionally depends on children (sorted for
	// commutative kinds) and is used for subtree-equivalence checks.
	CalculatedHashValue uint64

	// Value is the numeric value for Constant, the multiplicative weight
	// for Variable, and unused for operator kinds.
	Value float64

	// VariableHash identifies the dataset column a Variable node reads
	// from. Unused for all other kinds.
	VariableHash uint64
}

// NewNode constructs a Node of the given kind with default arity/length and
// HashValue seeded from the kind's bit pattern, mirroring
// original_source/src/core/node.hpp's Node(NodeType) constructor.
func NewNode(kind NodeType) Node {
	arity := kind.DefaultArity()
	value := 0.0
	if kind == Constant || kind == Variable {
		value = 1.0
	}
	return Node{
		Kind:                kind,
		Arity:               arity,
		Length:              arity,
		Enabled:             true,
		HashValue:           uint64(kind),
		CalculatedHashValue: uint64(kind),
		Value:               value,
	}
}

// NewConstant constructs a leaf Constant node holding value v.
func NewConstant(v float64) Node {
	n := NewNode(Constant)
	n.Value = v
	return n
}

// NewVariable constructs a leaf Variable node with multiplicative weight w
// referencing the dataset column whose hash id is columnHash.
func NewVariable(columnHash uint64, w float64) Node {
	n := NewNode(Variable)
	n.Value = w
	n.VariableHash = columnHash
	n.HashValue = columnHash
	n.CalculatedHashValue = VariableCalculatedHash(columnHash, w)
	return n
}

// IsConstant, IsVariable, IsLeaf, IsCommutative report on the node's kind.
func (n Node) IsConstant() bool    { return n.Kind == Constant }
func (n Node) IsVariable() bool    { return n.Kind == Variable }
func (n Node) IsLeaf() bool        { return n.Kind.IsLeaf() }
func (n Node) IsCommutative() bool { return n.Kind.IsCommutative() }

// Less orders nodes by (HashValue, CalculatedHashValue) lexicographically,
// per §4.A.
func (n Node) Less(other Node) bool {
	if n.HashValue != other.HashValue {
		return n.HashValue < other.HashValue
	}
	return n.CalculatedHashValue < other.CalculatedHashValue
}

// Equal reports structural equivalence: matching CalculatedHashValue.
func (n Node) Equal(other Node) bool {
	return n.CalculatedHashValue == other.CalculatedHashValue
}

func (n Node) String() string {
	switch n.Kind {
	case Constant:
		return fmt.Sprintf("Constant(%g)", n.Value)
	case Variable:
		return fmt.Sprintf("Variable(hash=%d, w=%g)", n.VariableHash, n.Value)
	default:
		return fmt.Sprintf("%s(arity=%d)", n.Kind, n.Arity)
	}
}
