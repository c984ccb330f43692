package expr

import "errors"

// ErrArityMismatch is returned when a PrimitiveSet is asked to constrain
// the arity of a kind whose arity is fixed by its grammar (any unary kind
// or any leaf), per §4.C: "Setting min/max arity on a unary kind or leaf
// is an error."
var ErrArityMismatch = errors.New("expr: arity mismatch")

// ErrUnknownKind is returned by PrimitiveSet.SetArity for a kind that was
// never enabled on that PrimitiveSet.
var ErrUnknownKind = errors.New("expr: unknown kind")
