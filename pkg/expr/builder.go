package expr

import "fmt"

// Builder assembles a Tree by pushing nodes in postfix order, computing
// each node's Length and CalculatedHashValue from its children
// automatically. It exists because tree construction operators
// (mutation, crossover, random sampling) are an external collaborator's
// concern (§1 Non-goals); Builder only covers the mechanical bookkeeping
// needed to hand-assemble fixed trees for tests and the demo CLI.
type Builder struct {
	nodes []Node
	// stack holds the index of each subtree root pushed so far, in the
	// order they'd be consumed as operands by the next operator.
	stack []int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Leaf pushes a pre-built leaf node (Constant or Variable) and returns
// the builder for chaining. A Constant's CalculatedHashValue is set to
// its bare HashValue (value-independent, since the local optimizer tunes
// Constants in place); a Variable's additionally mixes in its weight,
// matching NewVariable (§4.A).
func (b *Builder) Leaf(n Node) *Builder {
	if !n.IsLeaf() {
		panic(fmt.Sprintf("expr: Leaf called with non-leaf kind %s", n.Kind))
	}
	n.Length = 1
	if n.IsVariable() {
		n.CalculatedHashValue = VariableCalculatedHash(n.VariableHash, n.Value)
	} else {
		n.CalculatedHashValue = n.HashValue
	}
	b.nodes = append(b.nodes, n)
	b.stack = append(b.stack, len(b.nodes)-1)
	return b
}

// Const pushes a Constant leaf with value v.
func (b *Builder) Const(v float64) *Builder { return b.Leaf(NewConstant(v)) }

// Var pushes a Variable leaf referencing columnHash with weight w.
func (b *Builder) Var(columnHash uint64, w float64) *Builder {
	return b.Leaf(NewVariable(columnHash, w))
}

// Op pops arity operands off the stack (in push order, which is source
// left-to-right order) and pushes a new node of kind combining them.
func (b *Builder) Op(kind NodeType, arity int) *Builder {
	if len(b.stack) < arity {
		panic(fmt.Sprintf("expr: Op(%s, %d) needs %d operands, have %d", kind, arity, arity, len(b.stack)))
	}
	start := len(b.stack) - arity
	operands := b.stack[start:]

	childHashes := make([]uint64, arity)
	length := 1
	for i, idx := range operands {
		childHashes[i] = b.nodes[idx].CalculatedHashValue
		length += b.nodes[idx].Length
	}

	n := NewNode(kind)
	n.Arity = arity
	n.Length = length
	n.CalculatedHashValue = CalculatedHash(kind, n.HashValue, childHashes)

	b.stack = b.stack[:start]
	b.nodes = append(b.nodes, n)
	b.stack = append(b.stack, len(b.nodes)-1)
	return b
}

// Add2/Sub2/Mul2/Div2 push a binary operator over the two most recently
// pushed operands.
func (b *Builder) Add2() *Builder { return b.Op(Add, 2) }
func (b *Builder) Sub2() *Builder { return b.Op(Sub, 2) }
func (b *Builder) Mul2() *Builder { return b.Op(Mul, 2) }
func (b *Builder) Div2() *Builder { return b.Op(Div, 2) }

// AddN/MulN push an n-ary Add/Mul over the n most recently pushed
// operands, exercising the §4.E n-ary dispatch path.
func (b *Builder) AddN(n int) *Builder { return b.Op(Add, n) }
func (b *Builder) MulN(n int) *Builder { return b.Op(Mul, n) }

// Unary pushes a unary operator over the single most recently pushed
// operand.
func (b *Builder) Unary(kind NodeType) *Builder { return b.Op(kind, 1) }

// Build finalizes the tree. It panics if more than one subtree remains
// unconsumed on the stack (malformed construction sequence).
func (b *Builder) Build() *Tree {
	if len(b.stack) != 1 {
		panic(fmt.Sprintf("expr: Build called with %d unconsumed subtrees, want 1", len(b.stack)))
	}
	return NewTree(b.nodes)
}
