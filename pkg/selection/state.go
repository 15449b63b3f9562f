package selection

import (
	"math"

	"mifs/pkg/data"
	"mifs/pkg/mi"
)

// Result holds the selected feature indices in selection order, and the score each
// feature had when it was chosen.
type Result struct {
	Features []int
	Scores   []float64
}

func (r *Result) Len() int {
	return len(r.Features)
}

// Options control how a selection estimates information and caches scores.
type Options struct {
	// Estimator computes the information quantities. Defaults to mi.Discrete.
	Estimator mi.Estimator

	// DisableCache recomputes every pairwise term each time it is read.
	DisableCache bool
}

func (o Options) estimator() mi.Estimator {
	if o.Estimator == nil {
		return mi.Discrete{}
	}
	return o.Estimator
}

// state is the mutable state of a single forward search. It is created by every
// call and never shared.
type state struct {
	table    *data.Table
	est      mi.Estimator
	selected []bool
	classMI  []float64
	result   *Result
}

// newState computes the class mutual information of every feature and selects the
// most relevant one as the first feature. Ties go to the lowest index.
func newState(t *data.Table, k int, o Options) *state {
	s := &state{
		table:    t,
		est:      o.estimator(),
		selected: make([]bool, t.NumFeatures()),
		classMI:  make([]float64, t.NumFeatures()),
		result: &Result{
			Features: make([]int, 0, k),
			Scores:   make([]float64, 0, k),
		},
	}

	labels := t.Labels()
	best, bestScore := -1, math.Inf(-1)
	for i := range s.classMI {
		s.classMI[i] = s.est.MutualInformation(t.Feature(i), labels)
		if s.classMI[i] > bestScore {
			best, bestScore = i, s.classMI[i]
		}
	}
	s.add(best, bestScore)
	return s
}

func (s *state) add(feature int, score float64) {
	s.selected[feature] = true
	s.result.Features = append(s.result.Features, feature)
	s.result.Scores = append(s.result.Scores, score)
}

// step is the number of features selected so far.
func (s *state) step() int {
	return len(s.result.Features)
}

func (s *state) selectedAt(step int) data.Column {
	return s.table.Feature(s.result.Features[step])
}

// greedy completes the forward search up to k features, choosing at every step the
// unselected candidate with the strictly highest score.
func (s *state) greedy(k int, score func(candidate int) float64) *Result {
	for s.step() < k {
		best, bestScore := -1, math.Inf(-1)
		for j, selected := range s.selected {
			if selected {
				continue
			}
			if v := score(j); v > bestScore {
				best, bestScore = j, v
			}
		}
		s.add(best, bestScore)
	}
	return s.result
}

// pairwise sums term over every selected feature paired with the candidate. The
// term for the feature chosen at step x is read through cache cell (x, candidate).
func (s *state) pairwise(c *scoreCache, candidate int, term func(selected, candidate data.Column) float64) float64 {
	total := 0.0
	column := s.table.Feature(candidate)
	for x, feature := range s.result.Features {
		selected := s.table.Feature(feature)
		total += c.get(x, candidate, func() float64 {
			return term(selected, column)
		})
	}
	return total
}
