package dataset

import "errors"

// ErrOutOfRange is returned when a requested Range or subslice falls
// outside a Dataset's row bounds (§4.D).
var ErrOutOfRange = errors.New("dataset: out of range")

// ErrMissingVariable is returned when a lookup by name or hash finds no
// matching column (§4.D, §4.E "Variable hash missing in dataset").
var ErrMissingVariable = errors.New("dataset: missing variable")

// ErrParseError is returned by the CSV loader when a cell cannot be
// parsed as a float64 (§4.D, §4.J).
var ErrParseError = errors.New("dataset: parse error")
