package fitness

import (
	"math"

	lru "github.com/hashicorp/golang-lru"

	"github.com/wildfunctions/gpeval/pkg/expr"
)

// SubtreeDescriptor is the lightweight canonical-shape record stored per
// CalculatedHashValue: enough to recognize a repeated subtree shape
// without retaining the whole tree (§4.K).
type SubtreeDescriptor struct {
	Kind        uint16
	Arity       int
	ChildHashes []uint64
}

// CachedResult is a memoized Evaluate outcome, keyed by a tree's content
// hash rather than its bare root CalculatedHashValue: CalculatedHashValue
// is deliberately value-independent (every Constant shares HashValue
// regardless of its tuned value, per §4.A), so two individuals with
// identical shape but different constants would otherwise collide and
// one would silently receive the other's fitness. ContentHash folds each
// leaf's Value in too, so a cache hit only ever occurs for individuals
// that are genuinely interchangeable.
type CachedResult struct {
	Fitness float64
	Err     error
}

// HashCache is a pair of bounded LRU caches: one from a Node's
// CalculatedHashValue to its SubtreeDescriptor, short-circuiting repeated
// structural-equivalence checks across a population (§4.K), and one from
// a tree's ContentHash to its memoized CachedResult, letting the Parallel
// Driver skip re-evaluating individuals it has already scored. Both are
// pure optimization layers: not using them (leaving Driver.Cache unset,
// or simply not calling Put/Get) never changes an evaluation's observable
// output.
type HashCache struct {
	descriptors *lru.Cache
	results     *lru.Cache
}

// NewHashCache returns a HashCache whose descriptor and result caches
// each hold at most size entries. A size of 0 is rejected by the
// underlying LRU constructor, so callers wanting "caching disabled"
// should simply not use a HashCache rather than constructing one with
// size 0.
func NewHashCache(size int) (*HashCache, error) {
	descriptors, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	results, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &HashCache{descriptors: descriptors, results: results}, nil
}

// Get returns the descriptor for hash, if present.
func (h *HashCache) Get(hash uint64) (SubtreeDescriptor, bool) {
	v, ok := h.descriptors.Get(hash)
	if !ok {
		return SubtreeDescriptor{}, false
	}
	return v.(SubtreeDescriptor), true
}

// Put records descriptor under hash, evicting the least recently used
// entry if the descriptor cache is full.
func (h *HashCache) Put(hash uint64, descriptor SubtreeDescriptor) {
	h.descriptors.Add(hash, descriptor)
}

// Len returns the number of entries currently held in the descriptor
// cache.
func (h *HashCache) Len() int { return h.descriptors.Len() }

// GetResult returns the memoized fitness result for the tree whose
// content hash is key, if present.
func (h *HashCache) GetResult(key uint64) (CachedResult, bool) {
	v, ok := h.results.Get(key)
	if !ok {
		return CachedResult{}, false
	}
	return v.(CachedResult), true
}

// PutResult records result under key, evicting the least recently used
// entry if the result cache is full.
func (h *HashCache) PutResult(key uint64, result CachedResult) {
	h.results.Add(key, result)
}

// ResultLen returns the number of entries currently held in the result
// cache.
func (h *HashCache) ResultLen() int { return h.results.Len() }

// ContentHash extends a tree's root CalculatedHashValue with each leaf's
// Value, using the same FNV-1a-style mix expr.CalculatedHash uses for
// structural hashing. Two trees share a ContentHash only if they are
// shape-for-shape, constant-for-constant, and weight-for-weight
// identical, making it safe to key a fitness memoization cache on.
func ContentHash(tree *expr.Tree) (uint64, bool) {
	root := tree.Root()
	if root < 0 {
		return 0, false
	}
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := tree.Nodes()[root].CalculatedHashValue
	for _, n := range tree.Nodes() {
		if !n.IsLeaf() {
			continue
		}
		h ^= math.Float64bits(n.Value)
		h *= prime64
	}
	h ^= offset64
	h *= prime64
	return h, true
}
