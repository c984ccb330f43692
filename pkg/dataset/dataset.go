// Package dataset implements the column-major tabular storage the
// evaluator reads from (§4.D), plus the CSV loader that builds one (§4.J).
package dataset

import (
	"fmt"
	"sort"
)

// Range is a half-open row interval [Start, End) into a Dataset.
type Range struct {
	Start int
	End   int
}

// Len returns the number of rows the range spans.
func (r Range) Len() int { return r.End - r.Start }

// Variable describes one dataset column: its name, the hash id the tree's
// Variable nodes reference it by, and its index into the column-major
// storage.
type Variable struct {
	Name  string
	Hash  uint64
	Index int
}

// Dataset is column-major tabular storage: one []float64 per variable,
// all of equal length. Variables are stored sorted by Hash ascending so
// column lookup by hash can binary-search (§3, "Go's sort.Search standing
// in for std::equal_range").
type Dataset struct {
	rows      int
	variables []Variable
	columns   [][]float64 // columns[i] corresponds to variables[i]
}

// NewDataset builds a Dataset from parallel columns and variables. Callers
// normally go through LoadCSV; this constructor is exposed for tests and
// for callers building datasets programmatically. variables must already
// be sorted by Hash ascending; columns[i] must have length rows for every
// i.
func NewDataset(variables []Variable, columns [][]float64, rows int) (*Dataset, error) {
	if len(variables) != len(columns) {
		return nil, fmt.Errorf("dataset: %d variables but %d columns", len(variables), len(columns))
	}
	for i, col := range columns {
		if len(col) != rows {
			return nil, fmt.Errorf("dataset: column %q has %d rows, want %d", variables[i].Name, len(col), rows)
		}
	}
	for i := 1; i < len(variables); i++ {
		if variables[i].Hash < variables[i-1].Hash {
			return nil, fmt.Errorf("dataset: variables not sorted by hash ascending at index %d", i)
		}
	}
	return &Dataset{rows: rows, variables: variables, columns: columns}, nil
}

// Rows returns the number of rows (N).
func (d *Dataset) Rows() int { return d.rows }

// Variables returns the dataset's variables in hash-sorted order.
func (d *Dataset) Variables() []Variable { return d.variables }

// FullRange returns the Range spanning every row.
func (d *Dataset) FullRange() Range { return Range{Start: 0, End: d.rows} }

// ColumnByHash returns the full column for the variable with the given
// hash id via binary search over the hash-sorted variable list.
func (d *Dataset) ColumnByHash(hash uint64) ([]float64, error) {
	i := sort.Search(len(d.variables), func(i int) bool { return d.variables[i].Hash >= hash })
	if i >= len(d.variables) || d.variables[i].Hash != hash {
		return nil, fmt.Errorf("hash %d: %w", hash, ErrMissingVariable)
	}
	return d.columns[i], nil
}

// ColumnByName returns the full column for the variable with the given
// name. Name lookup is linear; callers on the hot path should resolve a
// name to a hash once and call ColumnByHash thereafter.
func (d *Dataset) ColumnByName(name string) ([]float64, error) {
	for i, v := range d.variables {
		if v.Name == name {
			return d.columns[i], nil
		}
	}
	return nil, fmt.Errorf("name %q: %w", name, ErrMissingVariable)
}

// VariableByName returns the Variable descriptor for name.
func (d *Dataset) VariableByName(name string) (Variable, error) {
	for _, v := range d.variables {
		if v.Name == name {
			return v, nil
		}
	}
	return Variable{}, fmt.Errorf("name %q: %w", name, ErrMissingVariable)
}

// Subslice returns values[r.Start:r.End] for the column with the given
// hash, failing with ErrOutOfRange if r falls outside [0, Rows()).
func (d *Dataset) Subslice(hash uint64, r Range) ([]float64, error) {
	col, err := d.ColumnByHash(hash)
	if err != nil {
		return nil, err
	}
	if r.Start < 0 || r.End > len(col) || r.Start > r.End {
		return nil, fmt.Errorf("range [%d,%d) over %d rows: %w", r.Start, r.End, len(col), ErrOutOfRange)
	}
	return col[r.Start:r.End], nil
}
