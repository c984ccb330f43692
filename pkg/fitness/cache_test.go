package fitness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/gpeval/pkg/expr"
)

func TestHashCachePutGet(t *testing.T) {
	c, err := NewHashCache(2)
	require.NoError(t, err)

	c.Put(1, SubtreeDescriptor{Kind: 1, Arity: 2})
	d, ok := c.Get(1)
	require.True(t, ok)
	assert.EqualValues(t, 1, d.Kind)

	_, ok = c.Get(2)
	assert.False(t, ok)
}

func TestHashCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewHashCache(1)
	require.NoError(t, err)

	c.Put(1, SubtreeDescriptor{Kind: 1})
	c.Put(2, SubtreeDescriptor{Kind: 2})

	_, ok := c.Get(1)
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Get(2)
	assert.True(t, ok)
}

func TestHashCacheResultPutGet(t *testing.T) {
	c, err := NewHashCache(2)
	require.NoError(t, err)

	c.PutResult(1, CachedResult{Fitness: 0.5})
	r, ok := c.GetResult(1)
	require.True(t, ok)
	assert.Equal(t, 0.5, r.Fitness)
	assert.NoError(t, r.Err)

	_, ok = c.GetResult(2)
	assert.False(t, ok)
	assert.Equal(t, 1, c.ResultLen())
}

func TestHashCacheResultPreservesError(t *testing.T) {
	c, err := NewHashCache(2)
	require.NoError(t, err)

	sentinel := errors.New("boom")
	c.PutResult(1, CachedResult{Err: sentinel})
	r, ok := c.GetResult(1)
	require.True(t, ok)
	assert.Equal(t, sentinel, r.Err)
}

func TestContentHashMatchesOnlyForIdenticalTrees(t *testing.T) {
	a := expr.NewBuilder().Const(3).Build()
	b := expr.NewBuilder().Const(3).Build()
	c := expr.NewBuilder().Const(4).Build()

	ha, ok := ContentHash(a)
	require.True(t, ok)
	hb, ok := ContentHash(b)
	require.True(t, ok)
	hc, ok := ContentHash(c)
	require.True(t, ok)

	assert.Equal(t, ha, hb, "same shape and same constant value must match")
	assert.NotEqual(t, ha, hc, "same shape with a different constant value must not match")
}

func TestContentHashEmptyTree(t *testing.T) {
	empty := expr.NewTree(nil)
	_, ok := ContentHash(empty)
	assert.False(t, ok)
}
