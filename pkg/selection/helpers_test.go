package selection

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"mifs/pkg/data"
	"mifs/pkg/mi"
)

// scenarioTable has A = label, B independent of the label and C the complement of A.
func scenarioTable(t *testing.T) *data.Table {
	table, err := data.NewTable([][]int{
		{0, 0, 1, 1},
		{0, 1, 0, 1},
		{1, 1, 0, 0},
	}, []int{0, 0, 1, 1})
	require.NoError(t, err)
	return table
}

// randomTable builds features that copy the label with a per-feature noise level.
func randomTable(t *testing.T, seed int64, numFeatures, numSamples int) *data.Table {
	r := rand.New(rand.NewSource(seed))
	labels := make([]int, numSamples)
	for i := range labels {
		labels[i] = r.Intn(3)
	}
	features := make([][]int, numFeatures)
	for f := range features {
		states := 2 + r.Intn(3)
		noise := r.Float64()
		column := make([]int, numSamples)
		for i := range column {
			if r.Float64() < noise {
				column[i] = r.Intn(states)
			} else {
				column[i] = labels[i] % states
			}
		}
		features[f] = column
	}
	table, err := data.NewTable(features, labels)
	require.NoError(t, err)
	return table
}

func unitWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

type countingEstimator struct {
	mi.Discrete
	calls int
}

func (c *countingEstimator) MutualInformation(x, y []int) float64 {
	c.calls++
	return c.Discrete.MutualInformation(x, y)
}

func (c *countingEstimator) ConditionalMutualInformation(x, y, z []int) float64 {
	c.calls++
	return c.Discrete.ConditionalMutualInformation(x, y, z)
}

func (c *countingEstimator) JointEntropy(x, y []int) float64 {
	c.calls++
	return c.Discrete.JointEntropy(x, y)
}

// exhaustive runs a forward search scoring every candidate from scratch.
func exhaustive(table *data.Table, k int, score func(classMI float64, candidate int, selected []int) float64) *Result {
	labels := table.Labels()
	classMI := make([]float64, table.NumFeatures())
	best, bestScore := -1, math.Inf(-1)
	for i := range classMI {
		classMI[i] = mi.MutualInformation(table.Feature(i), labels)
		if classMI[i] > bestScore {
			best, bestScore = i, classMI[i]
		}
	}
	result := &Result{Features: []int{best}, Scores: []float64{bestScore}}
	chosen := map[int]bool{best: true}
	for len(result.Features) < k {
		best, bestScore = -1, math.Inf(-1)
		for j := 0; j < table.NumFeatures(); j++ {
			if chosen[j] {
				continue
			}
			if v := score(classMI[j], j, result.Features); v > bestScore {
				best, bestScore = j, v
			}
		}
		chosen[best] = true
		result.Features = append(result.Features, best)
		result.Scores = append(result.Scores, bestScore)
	}
	return result
}

// recordingEstimator records, for every conditional MI evaluation, the feature
// index of the candidate and of the conditioning feature.
type recordingEstimator struct {
	mi.Discrete
	table       *data.Table
	conditional [][2]int
}

func (r *recordingEstimator) ConditionalMutualInformation(x, y, z []int) float64 {
	r.conditional = append(r.conditional, [2]int{r.featureOf(x), r.featureOf(z)})
	return r.Discrete.ConditionalMutualInformation(x, y, z)
}

func (r *recordingEstimator) featureOf(column []int) int {
	for i := 0; i < r.table.NumFeatures(); i++ {
		if &r.table.Feature(i)[0] == &column[0] {
			return i
		}
	}
	return -1
}
