package selection

import "mifs/pkg/data"

// ICAP implements Interaction Capping from:
// "Machine Learning Based on Attribute Interactions" - A. Jakulin, PhD Thesis 2005
//
// score(j) = I(X_j;Y) + sum over selected s of min(0, I(X_s;X_j|Y) - I(X_s;X_j))
func ICAP(t *data.Table, k int, o Options) *Result {
	s := newState(t, k, o)
	cache := newScoreCache(k, t.NumFeatures(), o.DisableCache)
	labels := t.Labels()

	return s.greedy(k, func(j int) float64 {
		return s.classMI[j] + s.pairwise(cache, j, func(selected, candidate data.Column) float64 {
			interaction := s.est.ConditionalMutualInformation(selected, candidate, labels) - s.est.MutualInformation(selected, candidate)
			if interaction < 0 {
				return interaction
			}
			return 0
		})
	})
}
