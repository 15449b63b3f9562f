package data

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when a column does not hold one value per sample.
var ErrShapeMismatch = errors.New("column length does not match sample count")

// Column holds one discretized value per sample
type Column []int

// Table is a read-only, column-major view over a discretized feature matrix and
// its label vector. Columns are addressed by feature index, independently of how
// the values were stored by the caller.
type Table struct {
	features []Column
	labels   Column
	samples  int
}

// NewTable builds a table from feature columns and a label column. Every feature
// column must have the same length as the label column.
func NewTable(features [][]int, labels []int) (*Table, error) {
	t := &Table{
		features: make([]Column, len(features)),
		labels:   labels,
		samples:  len(labels),
	}
	for i, f := range features {
		if len(f) != t.samples {
			return nil, fmt.Errorf("feature %d has %d values for %d samples: %w", i, len(f), t.samples, ErrShapeMismatch)
		}
		t.features[i] = f
	}
	return t, nil
}

// NewTableFromRows builds a table from row-major samples, as they are read from a
// data file.
func NewTableFromRows(rows [][]int, labels []int) (*Table, error) {
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("%d rows for %d labels: %w", len(rows), len(labels), ErrShapeMismatch)
	}
	numFeatures := 0
	if len(rows) > 0 {
		numFeatures = len(rows[0])
	}
	features := make([][]int, numFeatures)
	for i := range features {
		features[i] = make([]int, len(rows))
	}
	for r, row := range rows {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("row %d has %d features, expected %d: %w", r, len(row), numFeatures, ErrShapeMismatch)
		}
		for i, v := range row {
			features[i][r] = v
		}
	}
	return NewTable(features, labels)
}

func (t *Table) NumFeatures() int {
	return len(t.features)
}

func (t *Table) NumSamples() int {
	return t.samples
}

// Feature returns the column of feature i. The column must not be modified.
func (t *Table) Feature(i int) Column {
	return t.features[i]
}

func (t *Table) Labels() Column {
	return t.labels
}

// Subset returns a new table holding only the given rows, in the given order.
func (t *Table) Subset(rows []int) *Table {
	result := &Table{
		features: make([]Column, len(t.features)),
		labels:   make(Column, len(rows)),
		samples:  len(rows),
	}
	for i, f := range t.features {
		column := make(Column, len(rows))
		for r, row := range rows {
			column[r] = f[row]
		}
		result.features[i] = column
	}
	for r, row := range rows {
		result.labels[r] = t.labels[row]
	}
	return result
}

// SubsetWeights picks the weights of the given rows. A nil weight vector stays nil.
func SubsetWeights(weights []float64, rows []int) []float64 {
	if weights == nil {
		return nil
	}
	result := make([]float64, len(rows))
	for r, row := range rows {
		result[r] = weights[row]
	}
	return result
}
