package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticPreset(t *testing.T) {
	p, err := Preset("arithmetic")
	require.NoError(t, err)

	for _, k := range []NodeType{Add, Sub, Mul, Div, Constant, Variable} {
		assert.True(t, p.IsEnabled(k), "%s should be enabled", k)
	}
	assert.False(t, p.IsEnabled(Log))
}

func TestUnknownPreset(t *testing.T) {
	_, err := Preset("does-not-exist")
	assert.Error(t, err)
}

func TestSetAritySuccess(t *testing.T) {
	p := NewPrimitiveSet("test")
	p.Enable(Add, 1)

	require.NoError(t, p.SetArity(Add, 2, 5))
	assert.Equal(t, 2, p.MinArity(Add))
	assert.Equal(t, 5, p.MaxArity(Add))
}

func TestSetArityRejectsUnaryAndLeaf(t *testing.T) {
	p := NewPrimitiveSet("test")
	p.Enable(Log, 1)
	p.Enable(Constant, 1)

	assert.ErrorIs(t, p.SetArity(Log, 1, 3), ErrArityMismatch)
	assert.ErrorIs(t, p.SetArity(Constant, 1, 3), ErrArityMismatch)
}

func TestEnabledKindsOrder(t *testing.T) {
	p := NewPrimitiveSet("test")
	p.Enable(Variable, 1)
	p.Enable(Add, 1)

	kinds := p.EnabledKinds()
	require.Len(t, kinds, 2)
	assert.Equal(t, Add, kinds[0]) // AllNodeTypes order, not insertion order
	assert.Equal(t, Variable, kinds[1])
}
