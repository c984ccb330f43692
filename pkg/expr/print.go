package expr

import (
	"fmt"
	"strings"
)

// Print renders the subtree rooted at index as an infix string, using
// names to resolve Variable nodes' VariableHash to a human-readable name.
// Unknown variable hashes render as "var<hash>".
func Print(t *Tree, index int, names map[uint64]string) string {
	var b strings.Builder
	printNode(&b, t, index, names)
	return b.String()
}

// String renders the whole tree (rooted at the last node) as an infix
// string with bare hash ids for variables.
func (t *Tree) String() string {
	if t.Length() == 0 {
		return "<empty>"
	}
	return Print(t, t.Root(), nil)
}

func printNode(b *strings.Builder, t *Tree, index int, names map[uint64]string) {
	n := t.Nodes()[index]
	switch {
	case n.IsConstant():
		fmt.Fprintf(b, "%g", n.Value)
		return
	case n.IsVariable():
		name, ok := names[n.VariableHash]
		if !ok {
			name = fmt.Sprintf("var<%d>", n.VariableHash)
		}
		if n.Value != 1.0 {
			fmt.Fprintf(b, "(%g*%s)", n.Value, name)
		} else {
			b.WriteString(name)
		}
		return
	}

	children, ok := t.ChildIndices(index)
	if !ok {
		b.WriteString("<invalid>")
		return
	}

	if n.Kind.IsUnary() {
		fmt.Fprintf(b, "%s(", strings.ToLower(n.Kind.String()))
		printNode(b, t, children[0], names)
		b.WriteByte(')')
		return
	}

	op := binaryOpSymbol(n.Kind)
	b.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			fmt.Fprintf(b, " %s ", op)
		}
		printNode(b, t, c, names)
	}
	b.WriteByte(')')
}

func binaryOpSymbol(k NodeType) string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return k.String()
	}
}
