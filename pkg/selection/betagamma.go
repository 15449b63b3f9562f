package selection

import "mifs/pkg/data"

// BetaGamma searches the beta/gamma space of criteria described in:
// "Conditional Likelihood Maximisation: A Unifying Framework for Information Theoretic Feature Selection" - G. Brown et al., JMLR 2012
//
// score(j) = I(X_j;Y) - sum over selected s of [beta*I(X_s;X_j) - gamma*I(X_s;X_j|Y)]
func BetaGamma(t *data.Table, k int, beta, gamma float64, o Options) *Result {
	s := newState(t, k, o)
	cache := newScoreCache(k, t.NumFeatures(), o.DisableCache)
	labels := t.Labels()

	return s.greedy(k, func(j int) float64 {
		return s.classMI[j] - s.pairwise(cache, j, func(selected, candidate data.Column) float64 {
			redundancy := beta * s.est.MutualInformation(selected, candidate)
			return redundancy - gamma*s.est.ConditionalMutualInformation(selected, candidate, labels)
		})
	})
}

// MIFS is BetaGamma with beta=1, gamma=0:
// "Using Mutual Information for Selecting Features in Supervised Neural Net Learning" - R. Battiti, 1994
func MIFS(t *data.Table, k int, o Options) *Result {
	return BetaGamma(t, k, 1, 0, o)
}

// CIFE is BetaGamma with beta=1, gamma=1:
// "Conditional Infomax Learning: An Integrated Framework for Feature Extraction and Fusion" - D. Lin and X. Tang, ECCV 2006
func CIFE(t *data.Table, k int, o Options) *Result {
	return BetaGamma(t, k, 1, 1, o)
}

// CondRed is BetaGamma with beta=0, gamma=1.
func CondRed(t *data.Table, k int, o Options) *Result {
	return BetaGamma(t, k, 0, 1, o)
}
