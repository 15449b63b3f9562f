package mi

// Normalise relabels x to dense state ids 0..s-1, numbered in order of first
// appearance, and returns the relabelled vector together with s.
func Normalise(x []int) ([]int, int) {
	ids := make([]int, len(x))
	index := make(map[int]int)
	for i, v := range x {
		id, ok := index[v]
		if !ok {
			id = len(index)
			index[v] = id
		}
		ids[i] = id
	}
	return ids, len(index)
}

// Merge joint-codes two vectors of equal length into one vector whose values
// identify the (x, y) pair of each sample. Ids are dense and numbered in order of
// first appearance.
func Merge(x, y []int) []int {
	ids, _ := merge(x, y)
	return ids
}

type pair struct {
	first, second int
}

func merge(x, y []int) ([]int, int) {
	ids := make([]int, len(x))
	index := make(map[pair]int)
	for i := range x {
		p := pair{x[i], y[i]}
		id, ok := index[p]
		if !ok {
			id = len(index)
			index[p] = id
		}
		ids[i] = id
	}
	return ids, len(index)
}

// distribution is the empirical distribution of a discrete vector: the state of
// every sample, the number of samples in each state and one sample observed in
// each state.
type distribution struct {
	states []int
	counts []float64
	first  []int
}

func newDistribution(states []int, numStates int) distribution {
	d := distribution{
		states: states,
		counts: make([]float64, numStates),
		first:  make([]int, numStates),
	}
	for i, s := range states {
		if d.counts[s] == 0 {
			d.first[s] = i
		}
		d.counts[s]++
	}
	return d
}

func distributionOf(x []int) distribution {
	return newDistribution(Normalise(x))
}

func jointDistribution(x, y []int) distribution {
	return newDistribution(merge(x, y))
}

// countOf returns the number of samples sharing the state that sample i has in d.
func (d distribution) countOf(i int) float64 {
	return d.counts[d.states[i]]
}

// meanWeights returns the mean sample weight of every state, or nil when there
// are no weights.
func (d distribution) meanWeights(weights []float64) []float64 {
	if weights == nil {
		return nil
	}
	means := make([]float64, len(d.counts))
	for i, s := range d.states {
		means[s] += weights[i]
	}
	for s := range means {
		means[s] /= d.counts[s]
	}
	return means
}

func weightOf(means []float64, state int) float64 {
	if means == nil {
		return 1
	}
	return means[state]
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
