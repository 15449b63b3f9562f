package selection

import "mifs/pkg/data"

// MIM ranks features by their mutual information with the label alone. The result is
// the k most relevant features in decreasing order, ties going to the lowest index.
func MIM(t *data.Table, k int, o Options) *Result {
	s := newState(t, k, o)
	return s.greedy(k, func(j int) float64 {
		return s.classMI[j]
	})
}
