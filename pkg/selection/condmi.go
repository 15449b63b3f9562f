package selection

import (
	"mifs/pkg/data"
	"mifs/pkg/mi"
)

// CondMI greedily maximises I(X_j;Y|S) where S is the joint state of every feature
// selected so far. The search stops early, returning fewer than k features, as soon
// as no unselected feature has positive conditional mutual information.
func CondMI(t *data.Table, k int, o Options) *Result {
	s := newState(t, k, o)
	labels := t.Labels()
	condition := []int(s.selectedAt(0))

	for s.step() < k {
		best, bestScore := -1, 0.0
		for j, selected := range s.selected {
			if selected {
				continue
			}
			if v := s.est.ConditionalMutualInformation(t.Feature(j), labels, condition); v > bestScore {
				best, bestScore = j, v
			}
		}
		if best == -1 {
			break
		}
		s.add(best, bestScore)
		condition = mi.Merge(t.Feature(best), condition)
	}
	return s.result
}
