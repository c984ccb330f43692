package expr

import "fmt"

// arityBounds holds the configured [min, max] arity for a kind, along with
// its sampling frequency and enabled flag.
type arityBounds struct {
	enabled   bool
	frequency float64
	minArity  int
	maxArity  int
}

// PrimitiveSet is the grammar: which kinds are enabled, their relative
// sampling frequency, and their arity bounds (§4.C). Configuration is via
// bitmask union/difference of NodeTypeSet, matching the teacher's pool
// registry pattern (pkg/pool/pool.go's Register/Get/Names) generalized
// from "a pool of random-tree building blocks" to "a configured grammar
// the evaluator and external collaborators consult."
type PrimitiveSet struct {
	name   string
	bounds map[NodeType]*arityBounds
}

// NewPrimitiveSet builds an empty, named PrimitiveSet with no kinds
// enabled.
func NewPrimitiveSet(name string) *PrimitiveSet {
	return &PrimitiveSet{
		name:   name,
		bounds: make(map[NodeType]*arityBounds),
	}
}

// Name returns the PrimitiveSet's name, e.g. "arithmetic".
func (p *PrimitiveSet) Name() string { return p.name }

// Enable turns on kind with the given sampling frequency, using the
// kind's default arity bounds. Calling Enable again on an already-enabled
// kind updates its frequency.
func (p *PrimitiveSet) Enable(kind NodeType, frequency float64) {
	b, ok := p.bounds[kind]
	if !ok {
		b = &arityBounds{minArity: kind.DefaultArity(), maxArity: kind.DefaultArity()}
		p.bounds[kind] = b
	}
	b.enabled = true
	b.frequency = frequency
}

// EnableSet enables every kind in s with the given frequency.
func (p *PrimitiveSet) EnableSet(s NodeTypeSet, frequency float64) {
	for _, k := range AllNodeTypes {
		if s.Contains(k) {
			p.Enable(k, frequency)
		}
	}
}

// Disable turns off kind without forgetting its configured bounds.
func (p *PrimitiveSet) Disable(kind NodeType) {
	if b, ok := p.bounds[kind]; ok {
		b.enabled = false
	}
}

// IsEnabled reports whether kind is currently enabled.
func (p *PrimitiveSet) IsEnabled(kind NodeType) bool {
	b, ok := p.bounds[kind]
	return ok && b.enabled
}

// Frequency returns kind's configured sampling weight, or 0 if disabled
// or never configured.
func (p *PrimitiveSet) Frequency(kind NodeType) float64 {
	if b, ok := p.bounds[kind]; ok && b.enabled {
		return b.frequency
	}
	return 0
}

// SetArity constrains kind's arity to [min, max]. Binary operator kinds
// (Add, Mul, Sub, Div) support n-ary arity per §4.E's n-ary dispatch
// rules, so their bounds may be widened beyond 2. Unary kinds and leaves
// have a fixed arity and return ErrArityMismatch.
func (p *PrimitiveSet) SetArity(kind NodeType, min, max int) error {
	if kind.IsUnary() || kind.IsLeaf() {
		return fmt.Errorf("%s has fixed arity %d: %w", kind, kind.DefaultArity(), ErrArityMismatch)
	}
	if min < 2 || max < min {
		return fmt.Errorf("invalid arity bounds [%d,%d] for %s: %w", min, max, kind, ErrArityMismatch)
	}
	b, ok := p.bounds[kind]
	if !ok {
		return fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}
	b.minArity = min
	b.maxArity = max
	return nil
}

// MinArity and MaxArity return kind's configured arity bounds. For kinds
// never configured, both return the kind's default arity.
func (p *PrimitiveSet) MinArity(kind NodeType) int {
	if b, ok := p.bounds[kind]; ok {
		return b.minArity
	}
	return kind.DefaultArity()
}

func (p *PrimitiveSet) MaxArity(kind NodeType) int {
	if b, ok := p.bounds[kind]; ok {
		return b.maxArity
	}
	return kind.DefaultArity()
}

// EnabledKinds returns every enabled kind, in AllNodeTypes order.
func (p *PrimitiveSet) EnabledKinds() []NodeType {
	out := make([]NodeType, 0, len(p.bounds))
	for _, k := range AllNodeTypes {
		if p.IsEnabled(k) {
			out = append(out, k)
		}
	}
	return out
}

var presetRegistry = map[string]func() *PrimitiveSet{}

// RegisterPreset adds a named PrimitiveSet constructor to the registry,
// mirroring the teacher's pool.Register.
func RegisterPreset(name string, constructor func() *PrimitiveSet) {
	presetRegistry[name] = constructor
}

// Preset returns a fresh PrimitiveSet built by the named constructor.
func Preset(name string) (*PrimitiveSet, error) {
	ctor, ok := presetRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown primitive set preset: %s", name)
	}
	return ctor(), nil
}

// PresetNames returns all registered preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presetRegistry))
	for k := range presetRegistry {
		names = append(names, k)
	}
	return names
}

func init() {
	RegisterPreset("arithmetic", func() *PrimitiveSet {
		p := NewPrimitiveSet("arithmetic")
		p.Enable(Add, 1)
		p.Enable(Sub, 1)
		p.Enable(Mul, 1)
		p.Enable(Div, 1)
		p.Enable(Constant, 1)
		p.Enable(Variable, 1)
		return p
	})
	RegisterPreset("transcendental", func() *PrimitiveSet {
		p := NewPrimitiveSet("transcendental")
		p.Enable(Add, 1)
		p.Enable(Sub, 1)
		p.Enable(Mul, 1)
		p.Enable(Div, 1)
		p.Enable(Log, 0.5)
		p.Enable(Exp, 0.5)
		p.Enable(Sin, 0.5)
		p.Enable(Cos, 0.5)
		p.Enable(Tan, 0.25)
		p.Enable(Sqrt, 0.5)
		p.Enable(Cbrt, 0.25)
		p.Enable(Constant, 1)
		p.Enable(Variable, 1)
		return p
	})
	RegisterPreset("full", func() *PrimitiveSet {
		p := NewPrimitiveSet("full")
		p.EnableSet(NewNodeTypeSet(AllNodeTypes...), 1)
		return p
	})
}
