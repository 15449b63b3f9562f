package selection

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"mifs/pkg/data"
	"mifs/pkg/mi"
)

var (
	ErrUnknownAlgorithm   = errors.New("unknown selection algorithm")
	ErrInvalidK           = errors.New("number of features to select must be between 1 and the number of features")
	ErrInvalidWeights     = errors.New("weights must be finite and non-negative")
	ErrWeightsUnsupported = errors.New("algorithm has no weighted variant")
	ErrShapeMismatch      = data.ErrShapeMismatch
)

type Algorithm string

const (
	AlgorithmMIM       Algorithm = "mim"
	AlgorithmCMIM      Algorithm = "cmim"
	AlgorithmJMI       Algorithm = "jmi"
	AlgorithmDISR      Algorithm = "disr"
	AlgorithmMRMRD     Algorithm = "mrmr_d"
	AlgorithmBetaGamma Algorithm = "betagamma"
	AlgorithmMIFS      Algorithm = "mifs"
	AlgorithmCIFE      Algorithm = "cife"
	AlgorithmCondRed   Algorithm = "condred"
	AlgorithmICAP      Algorithm = "icap"
	AlgorithmCondMI    Algorithm = "condmi"
)

// Config describes one selection run.
type Config struct {
	Algorithm Algorithm

	// NumFeatures is the number of features to select
	NumFeatures int

	// Beta and Gamma are only used by AlgorithmBetaGamma
	Beta  float64
	Gamma float64

	// Weights holds optional per-sample weights. Only algorithms with a weighted
	// variant accept them.
	Weights []float64

	DisableCache bool
}

type criterion struct {
	weighted bool
	run      func(t *data.Table, c Config, o Options) *Result
}

func fixed(f func(t *data.Table, k int, o Options) *Result, weighted bool) criterion {
	return criterion{
		weighted: weighted,
		run: func(t *data.Table, c Config, o Options) *Result {
			return f(t, c.NumFeatures, o)
		},
	}
}

var criteria = map[Algorithm]criterion{
	AlgorithmMIM:   fixed(MIM, true),
	AlgorithmCMIM:  fixed(CMIM, true),
	AlgorithmJMI:   fixed(JMI, true),
	AlgorithmDISR:  fixed(DISR, true),
	AlgorithmMRMRD: fixed(MRMRD, false),
	AlgorithmBetaGamma: {
		run: func(t *data.Table, c Config, o Options) *Result {
			return BetaGamma(t, c.NumFeatures, c.Beta, c.Gamma, o)
		},
	},
	AlgorithmMIFS:    fixed(MIFS, false),
	AlgorithmCIFE:    fixed(CIFE, false),
	AlgorithmCondRed: fixed(CondRed, false),
	AlgorithmICAP:    fixed(ICAP, false),
	AlgorithmCondMI:  fixed(CondMI, true),
}

// Algorithms returns the names of all known algorithms, sorted.
func Algorithms() []string {
	result := make([]string, 0, len(criteria))
	for name := range criteria {
		result = append(result, string(name))
	}
	sort.Strings(result)
	return result
}

// ParseAlgorithm looks up an algorithm by name, ignoring case.
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := criteria[a]; !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
	}
	return a, nil
}

// SupportsWeights reports whether the algorithm has a weighted variant.
func SupportsWeights(a Algorithm) bool {
	return criteria[a].weighted
}

// Select validates the configuration against the table and runs the configured
// algorithm. When weights are given the weighted variant of the algorithm is used.
func Select(t *data.Table, c Config) (*Result, error) {
	crit, ok := criteria[c.Algorithm]
	if !ok {
		return nil, fmt.Errorf("%q: %w", c.Algorithm, ErrUnknownAlgorithm)
	}
	if c.NumFeatures < 1 || c.NumFeatures > t.NumFeatures() {
		return nil, fmt.Errorf("k=%d with %d features: %w", c.NumFeatures, t.NumFeatures(), ErrInvalidK)
	}

	options := Options{DisableCache: c.DisableCache}
	if c.Weights != nil {
		if !crit.weighted {
			return nil, fmt.Errorf("%s: %w", c.Algorithm, ErrWeightsUnsupported)
		}
		if err := checkWeights(c.Weights, t.NumSamples()); err != nil {
			return nil, err
		}
		options.Estimator = mi.Weighted{Weights: c.Weights}
	}

	return crit.run(t, c, options), nil
}

func checkWeights(weights []float64, samples int) error {
	if len(weights) != samples {
		return fmt.Errorf("%d weights for %d samples: %w", len(weights), samples, ErrShapeMismatch)
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weight %v at sample %d: %w", w, i, ErrInvalidWeights)
		}
	}
	return nil
}
