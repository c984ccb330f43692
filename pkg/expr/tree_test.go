package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeChildIndicesOrder(t *testing.T) {
	// (10 - 2 - 3) as a 3-ary Sub: postfix [10, 2, 3, Sub/arity=3]
	tree := NewBuilder().Const(10).Const(2).Const(3).Op(Sub, 3).Build()

	children, ok := tree.ChildIndices(tree.Root())
	require.True(t, ok)
	require.Len(t, children, 3)

	assert.Equal(t, 10.0, tree.Nodes()[children[0]].Value)
	assert.Equal(t, 2.0, tree.Nodes()[children[1]].Value)
	assert.Equal(t, 3.0, tree.Nodes()[children[2]].Value)
}

func TestTreeSubtreeRange(t *testing.T) {
	tree := NewBuilder().Const(1).Const(2).Add2().Const(3).Add2().Build()

	start, end, ok := tree.SubtreeRange(2) // the first Add node
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
}

func TestTreeDepth(t *testing.T) {
	leaf := NewBuilder().Const(1).Build()
	assert.Equal(t, 0, leaf.Depth())

	nested := NewBuilder().Const(1).Const(2).Add2().Const(3).Add2().Build()
	assert.Equal(t, 2, nested.Depth())
}

func TestTreeValidate(t *testing.T) {
	valid := NewBuilder().Const(1).Const(2).Add2().Build()
	assert.NoError(t, valid.Validate())

	broken := NewTree([]Node{
		NewConstant(1),
		{Kind: Add, Arity: 2, Length: 99}, // wrong length, only 1 preceding node
	})
	assert.ErrorIs(t, broken.Validate(), ErrInvalidTree)
}

// TestChildWalkAggregateLength is property 10 from the spec: the walk
// from p-1 produces exactly arity(p) children whose aggregate length is
// length(p)-1.
func TestChildWalkAggregateLength(t *testing.T) {
	tree := NewBuilder().
		Const(1).Const(2).Const(3).AddN(3).
		Const(4).
		Add2().
		Build()

	root := tree.Root()
	children, ok := tree.ChildIndices(root)
	require.True(t, ok)
	assert.Len(t, children, tree.Nodes()[root].Arity)

	sum := 0
	for _, c := range children {
		sum += tree.Nodes()[c].Length
	}
	assert.Equal(t, tree.Nodes()[root].Length-1, sum)
}
