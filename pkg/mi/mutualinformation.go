package mi

import "math"

// MutualInformation returns I(X;Y) in bits. Both vectors must have the same length.
// The value is computed from state counts, so samples that are exactly independent
// give exactly 0.
func MutualInformation(x, y []int) float64 {
	return mutualInformation(x, y, nil)
}

// ConditionalMutualInformation returns I(X;Y|Z) in bits. Z may be the merge of
// several columns.
func ConditionalMutualInformation(x, y, z []int) float64 {
	return conditionalMutualInformation(x, y, z, nil)
}

// WeightedMutualInformation returns I(X;Y) where the contribution of every joint
// state is scaled by the mean weight of the samples in that state. Unit weights give
// the same value as MutualInformation.
func WeightedMutualInformation(x, y []int, weights []float64) float64 {
	return mutualInformation(x, y, weights)
}

func WeightedConditionalMutualInformation(x, y, z []int, weights []float64) float64 {
	return conditionalMutualInformation(x, y, z, weights)
}

func mutualInformation(x, y []int, weights []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	px := distributionOf(x)
	py := distributionOf(y)
	pxy := jointDistribution(x, y)
	means := pxy.meanWeights(weights)

	total := float64(len(x))
	result := 0.0
	for s, c := range pxy.counts {
		sample := pxy.first[s]
		ratio := total * c / (px.countOf(sample) * py.countOf(sample))
		result += weightOf(means, s) * (c / total) * math.Log2(ratio)
	}
	return nonNegative(result)
}

func conditionalMutualInformation(x, y, z []int, weights []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	pz := distributionOf(z)
	xz, numXZ := merge(x, z)
	pxz := newDistribution(xz, numXZ)
	pyz := jointDistribution(y, z)
	pxyz := newDistribution(merge(xz, y))
	means := pxyz.meanWeights(weights)

	total := float64(len(x))
	result := 0.0
	for s, c := range pxyz.counts {
		sample := pxyz.first[s]
		ratio := pz.countOf(sample) * c / (pxz.countOf(sample) * pyz.countOf(sample))
		result += weightOf(means, s) * (c / total) * math.Log2(ratio)
	}
	return nonNegative(result)
}
