package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
)

// LoadCSV reads a CSV file into a Dataset (§4.J). When hasHeader is true,
// the first row supplies column names; otherwise names are synthesized as
// X1..Xn, matching original_source/src/core/dataset.cpp's
// fmt::format("X{}", ++i) fallback.
//
// After ingest, columns are sorted by name and assigned strictly
// increasing 64-bit hash ids via a seeded PRNG, mirroring dataset.cpp's
// JsfRand-seeded-then-sorted hash assignment: the exact hash values are
// not semantically meaningful, only their sortedness is, since lookup
// uses that ordering for binary search.
func LoadCSV(path string, hasHeader bool) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()
	return loadCSV(f, hasHeader, path)
}

func loadCSV(r io.Reader, hasHeader bool, sourceName string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", sourceName, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: %s is empty: %w", sourceName, ErrParseError)
	}

	var names []string
	dataRows := records
	if hasHeader {
		names = records[0]
		dataRows = records[1:]
	} else {
		names = make([]string, len(records[0]))
		for i := range names {
			names[i] = fmt.Sprintf("X%d", i+1)
		}
	}

	numCols := len(names)
	columns := make([][]float64, numCols)
	for i := range columns {
		columns[i] = make([]float64, len(dataRows))
	}

	for rowIdx, row := range dataRows {
		if len(row) != numCols {
			return nil, fmt.Errorf("dataset: %s row %d has %d fields, want %d: %w", sourceName, rowIdx, len(row), numCols, ErrParseError)
		}
		for colIdx, field := range row {
			v, err := parseFloat(field)
			if err != nil {
				return nil, fmt.Errorf("dataset: %s row %d column %q: %w", sourceName, rowIdx, names[colIdx], err)
			}
			columns[colIdx][rowIdx] = v
		}
	}

	order := make([]int, numCols)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return names[order[i]] < names[order[j]] })

	hashes := assignHashes(numCols)

	variables := make([]Variable, numCols)
	sortedColumns := make([][]float64, numCols)
	for newIdx, oldIdx := range order {
		variables[newIdx] = Variable{Name: names[oldIdx], Hash: hashes[newIdx], Index: newIdx}
		sortedColumns[newIdx] = columns[oldIdx]
	}

	return NewDataset(variables, sortedColumns, len(dataRows))
}

func parseFloat(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as float: %w", field, ErrParseError)
	}
	return v, nil
}

// hashSeed fixes the PRNG seed used to assign column hash ids so loading
// the same file twice produces the same hashes, matching dataset.cpp's
// deterministic JsfRand seeding.
const hashSeed = 0xc0ffee

// assignHashes returns n strictly increasing uint64 values, seeded by a
// PRNG rather than by position, so hash values don't leak column order —
// only their relative ordering (ascending, matching name-sort order) is
// meaningful for binary search.
func assignHashes(n int) []uint64 {
	rng := rand.New(rand.NewSource(hashSeed))
	hashes := make([]uint64, n)
	prev := uint64(0)
	for i := range hashes {
		prev += 1 + rng.Uint64()%1000
		hashes[i] = prev
	}
	return hashes
}
