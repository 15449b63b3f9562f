package selection

import "gonum.org/v1/gonum/mat"

// scoreCache memoizes the term contributed by the feature selected at a step to a
// candidate feature. Rows are selection steps, columns are feature indices.
type scoreCache struct {
	values   *mat.Dense
	known    []bool
	features int
	disabled bool
}

func newScoreCache(k, features int, disabled bool) *scoreCache {
	if disabled {
		return &scoreCache{disabled: true}
	}
	return &scoreCache{
		values:   mat.NewDense(k, features, nil),
		known:    make([]bool, k*features),
		features: features,
	}
}

// get returns cell (step, feature), calling compute the first time it is read.
func (c *scoreCache) get(step, feature int, compute func() float64) float64 {
	if c.disabled {
		return compute()
	}
	cell := step*c.features + feature
	if !c.known[cell] {
		c.values.Set(step, feature, compute())
		c.known[cell] = true
	}
	return c.values.At(step, feature)
}
