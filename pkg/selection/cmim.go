package selection

import (
	"math"

	"mifs/pkg/data"
)

// CMIM is an implementation of the Conditional Mutual Information Maximisation
// criterion using the fast exact search from:
// "Fast Binary Feature Selection with Conditional Mutual Information" - F. Fleuret, JMLR 2004
//
// A candidate's score is min over selected s of I(X_j;Y|X_s). Every candidate keeps
// a partial score that only ever shrinks, and a count of the selected features
// already used to shrink it. The partial score is tightened only while it is still
// above the best score seen in the current step.
func CMIM(t *data.Table, k int, o Options) *Result {
	s := newState(t, k, o)
	labels := t.Labels()

	partial := make([]float64, t.NumFeatures())
	copy(partial, s.classMI)
	lastUsed := make([]int, t.NumFeatures())

	for s.step() < k {
		step := s.step()
		best, score := -1, math.Inf(-1)
		for j := range partial {
			if s.selected[j] {
				continue
			}
			for partial[j] > score && lastUsed[j] < step {
				conditional := s.est.ConditionalMutualInformation(t.Feature(j), labels, s.selectedAt(lastUsed[j]))
				if conditional < partial[j] {
					partial[j] = conditional
				}
				lastUsed[j]++
			}
			if partial[j] > score {
				best, score = j, partial[j]
			}
		}
		s.add(best, score)
	}
	return s.result
}
