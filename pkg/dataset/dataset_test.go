package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatasetRejectsUnsortedVariables(t *testing.T) {
	_, err := NewDataset(
		[]Variable{{Name: "b", Hash: 5}, {Name: "a", Hash: 1}},
		[][]float64{{1, 2}, {3, 4}},
		2,
	)
	assert.Error(t, err)
}

func TestColumnByHashAndName(t *testing.T) {
	ds, err := NewDataset(
		[]Variable{{Name: "x", Hash: 1}, {Name: "y", Hash: 2}},
		[][]float64{{1, 2, 3}, {4, 5, 6}},
		3,
	)
	require.NoError(t, err)

	col, err := ds.ColumnByHash(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, col)

	col, err = ds.ColumnByName("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, col)

	_, err = ds.ColumnByHash(99)
	assert.ErrorIs(t, err, ErrMissingVariable)
}

func TestSubsliceOutOfRange(t *testing.T) {
	ds, err := NewDataset([]Variable{{Name: "x", Hash: 1}}, [][]float64{{1, 2, 3}}, 3)
	require.NoError(t, err)

	_, err = ds.Subslice(1, Range{Start: 0, End: 2})
	assert.NoError(t, err)

	_, err = ds.Subslice(1, Range{Start: 0, End: 10})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCSVWithHeader(t *testing.T) {
	path := writeTempCSV(t, "y,x\n1.0,2.0\n3.0,4.0\n")

	ds, err := LoadCSV(path, true)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows())

	vars := ds.Variables()
	require.Len(t, vars, 2)
	// name-sorted ascending: "x" before "y"
	assert.Equal(t, "x", vars[0].Name)
	assert.Equal(t, "y", vars[1].Name)
	assert.True(t, vars[0].Hash < vars[1].Hash)

	xCol, err := ds.ColumnByName("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0, 4.0}, xCol)
}

func TestLoadCSVWithoutHeaderSynthesizesNames(t *testing.T) {
	path := writeTempCSV(t, "1.0,2.0\n3.0,4.0\n")

	ds, err := LoadCSV(path, false)
	require.NoError(t, err)

	names := make([]string, 0, 2)
	for _, v := range ds.Variables() {
		names = append(names, v.Name)
	}
	assert.ElementsMatch(t, []string{"X1", "X2"}, names)
}

func TestLoadCSVParseError(t *testing.T) {
	path := writeTempCSV(t, "x\nnot-a-number\n")

	_, err := LoadCSV(path, true)
	assert.ErrorIs(t, err, ErrParseError)
}
