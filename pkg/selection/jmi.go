package selection

import (
	"mifs/pkg/data"
	"mifs/pkg/mi"
)

// JMI is an implementation of the Joint Mutual Information criterion from:
// "Data Visualization and Feature Selection: New Algorithms for Nongaussian Data" - H. Yang and J. Moody, NIPS 1999
//
// score(j) = I(X_j;Y) + sum over selected s of I(X_s X_j;Y)
func JMI(t *data.Table, k int, o Options) *Result {
	s := newState(t, k, o)
	cache := newScoreCache(k, t.NumFeatures(), o.DisableCache)
	labels := t.Labels()

	return s.greedy(k, func(j int) float64 {
		return s.classMI[j] + s.pairwise(cache, j, func(selected, candidate data.Column) float64 {
			return s.est.MutualInformation(mi.Merge(selected, candidate), labels)
		})
	})
}

// DISR is an implementation of the Double Input Symmetrical Relevance criterion from:
// "On the Use of Variable Complementarity for Feature Selection in Cancer Classification" - P. Meyer and G. Bontempi, 2006
//
// score(j) = sum over selected s of I(X_s X_j;Y) / H(X_s X_j Y)
func DISR(t *data.Table, k int, o Options) *Result {
	s := newState(t, k, o)
	cache := newScoreCache(k, t.NumFeatures(), o.DisableCache)
	labels := t.Labels()

	return s.greedy(k, func(j int) float64 {
		return s.pairwise(cache, j, func(selected, candidate data.Column) float64 {
			merged := mi.Merge(selected, candidate)
			joint := s.est.JointEntropy(merged, labels)
			if joint == 0 {
				return 0
			}
			return s.est.MutualInformation(merged, labels) / joint
		})
	})
}
