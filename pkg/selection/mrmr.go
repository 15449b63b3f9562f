package selection

import "mifs/pkg/data"

// MRMRD implements the difference variant of minimum Redundancy Maximum Relevance from:
// "Feature Selection Based on Mutual Information: Criteria of Max-Dependency, Max-Relevance, and Min-Redundancy" - H. Peng et al., PAMI 2005
//
// score(j) = I(X_j;Y) - mean over selected s of I(X_s;X_j)
func MRMRD(t *data.Table, k int, o Options) *Result {
	s := newState(t, k, o)
	cache := newScoreCache(k, t.NumFeatures(), o.DisableCache)

	return s.greedy(k, func(j int) float64 {
		redundancy := s.pairwise(cache, j, func(selected, candidate data.Column) float64 {
			return s.est.MutualInformation(selected, candidate)
		})
		return s.classMI[j] - redundancy/float64(s.step())
	})
}
