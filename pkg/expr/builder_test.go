package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderVarMatchesNewVariableHash(t *testing.T) {
	viaBuilder := NewBuilder().Var(7, 2.0).Build()
	direct := NewVariable(7, 2.0)

	require.Equal(t, 1, viaBuilder.Length())
	assert.Equal(t, direct.CalculatedHashValue, viaBuilder.Nodes()[0].CalculatedHashValue)
}

func TestBuilderVarDifferentWeightsAreNotEqual(t *testing.T) {
	a := NewBuilder().Var(7, 1.0).Build()
	b := NewBuilder().Var(7, 2.0).Build()

	assert.False(t, a.Nodes()[0].Equal(b.Nodes()[0]))
}

func TestBuilderConstIgnoresValueInHash(t *testing.T) {
	a := NewBuilder().Const(3).Build()
	b := NewBuilder().Const(9).Build()

	assert.True(t, a.Nodes()[0].Equal(b.Nodes()[0]))
}
