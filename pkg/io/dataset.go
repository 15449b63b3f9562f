package io

import (
	"math/rand"

	"mifs/pkg/data"
)

// DataSet is a view over a subset of the rows of a table and its sample weights.
type DataSet struct {
	Data        *data.Table
	Weights     []float64
	Rand        *rand.Rand
	dataIndices []int
}

func (d *DataSet) Size() int {
	return len(d.dataIndices)
}

// Materialize copies the rows of the data set into a new table and weight vector.
func (d *DataSet) Materialize() (*data.Table, []float64) {
	return d.Data.Subset(d.dataIndices), data.SubsetWeights(d.Weights, d.dataIndices)
}

func NewDataSet(table *data.Table, weights []float64) *DataSet {
	dataIndices := make([]int, table.NumSamples())
	for i := range dataIndices {
		dataIndices[i] = i
	}
	return NewDataSetSplit(table, weights, dataIndices)
}

func NewDataSetSplit(table *data.Table, weights []float64, indices []int) *DataSet {
	return &DataSet{Data: table, Weights: weights, dataIndices: indices}
}

// RandomSplit shuffles the rows and partitions them into data sets of the given
// sizes. The sizes must not add up to more than Size().
func (d *DataSet) RandomSplit(sizes ...int) []*DataSet {
	indices := make([]int, len(d.dataIndices))
	copy(indices, d.dataIndices)
	d.Rand.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	splits := make([]*DataSet, len(sizes))
	idx := 0
	for i := range sizes {
		splitIndices := make([]int, sizes[i])
		for j := range splitIndices {
			splitIndices[j] = indices[idx]
			idx++
		}
		splits[i] = NewDataSetSplit(d.Data, d.Weights, splitIndices)
		splits[i].Rand = d.Rand
	}
	return splits
}
