package mi

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Entropy returns H(X) in bits.
func Entropy(x []int) float64 {
	return entropy(x, nil)
}

// JointEntropy returns H(X,Y) in bits.
func JointEntropy(x, y []int) float64 {
	return jointEntropy(x, y, nil)
}

// ConditionalEntropy returns H(X|Y) in bits.
func ConditionalEntropy(x, y []int) float64 {
	return conditionalEntropy(x, y, nil)
}

// WeightedEntropy returns H(X) where the contribution of every state is scaled by
// the mean weight of the samples in that state.
func WeightedEntropy(x []int, weights []float64) float64 {
	return entropy(x, weights)
}

func WeightedJointEntropy(x, y []int, weights []float64) float64 {
	return jointEntropy(x, y, weights)
}

func WeightedConditionalEntropy(x, y []int, weights []float64) float64 {
	return conditionalEntropy(x, y, weights)
}

func entropy(x []int, weights []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return entropyOf(distributionOf(x), weights)
}

func jointEntropy(x, y []int, weights []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return entropyOf(jointDistribution(x, y), weights)
}

func entropyOf(d distribution, weights []float64) float64 {
	p := make([]float64, len(d.counts))
	copy(p, d.counts)
	floats.Scale(1/floats.Sum(p), p)

	if weights == nil {
		return stat.Entropy(p) / math.Ln2
	}

	means := d.meanWeights(weights)
	result := 0.0
	for s, v := range p {
		result -= means[s] * v * math.Log2(v)
	}
	return nonNegative(result)
}

func conditionalEntropy(x, y []int, weights []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	py := distributionOf(y)
	pxy := jointDistribution(x, y)
	means := pxy.meanWeights(weights)

	total := float64(len(x))
	result := 0.0
	for s, c := range pxy.counts {
		cy := py.countOf(pxy.first[s])
		result -= weightOf(means, s) * (c / total) * math.Log2(c/cy)
	}
	return nonNegative(result)
}
