package selection

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"mifs/pkg/data"
	"mifs/pkg/mi"
)

const scoreDelta = 1e-12

var allAlgorithms = []Algorithm{
	AlgorithmMIM, AlgorithmCMIM, AlgorithmJMI, AlgorithmDISR, AlgorithmMRMRD,
	AlgorithmBetaGamma, AlgorithmMIFS, AlgorithmCIFE, AlgorithmCondRed,
	AlgorithmICAP, AlgorithmCondMI,
}

func TestScenarioRedundantPair(t *testing.T) {
	tests := []struct {
		algorithm Algorithm
		features  []int
		scores    []float64
	}{
		{AlgorithmMIM, []int{0, 2}, []float64{1, 1}},
		{AlgorithmCMIM, []int{0, 1}, []float64{1, 0}},
		{AlgorithmJMI, []int{0, 2}, []float64{1, 2}},
		{AlgorithmDISR, []int{0, 2}, []float64{1, 1}},
		{AlgorithmMRMRD, []int{0, 1}, []float64{1, 0}},
		{AlgorithmMIFS, []int{0, 1}, []float64{1, 0}},
		{AlgorithmCIFE, []int{0, 1}, []float64{1, 0}},
		{AlgorithmCondRed, []int{0, 2}, []float64{1, 1}},
		{AlgorithmICAP, []int{0, 1}, []float64{1, 0}},
		// nothing is left to explain once A is known
		{AlgorithmCondMI, []int{0}, []float64{1}},
	}

	table := scenarioTable(t)
	for _, tt := range tests {
		t.Run(string(tt.algorithm), func(t *testing.T) {
			result, err := Select(table, Config{Algorithm: tt.algorithm, NumFeatures: 2})
			require.NoError(t, err)
			require.Equal(t, tt.features, result.Features)
			require.InDeltaSlice(t, tt.scores, result.Scores, scoreDelta)
		})
	}
}

func TestMIMRanking(t *testing.T) {
	labels := []int{0, 0, 0, 0, 1, 1, 1, 1}
	table, err := data.NewTable([][]int{
		{0, 1, 0, 1, 0, 1, 0, 1}, // independent
		{0, 0, 0, 0, 1, 1, 1, 1}, // copy of the label
		{0, 0, 0, 1, 1, 1, 1, 1}, // mostly the label
		{1, 1, 1, 1, 0, 0, 0, 0}, // complement of the label
		{0, 0, 1, 1, 0, 0, 1, 1}, // independent
	}, labels)
	require.NoError(t, err)

	result := MIM(table, 5, Options{})
	require.Equal(t, []int{1, 3, 2, 0, 4}, result.Features)
	require.InDeltaSlice(t, []float64{1, 1, 0.5487949406953985, 0, 0}, result.Scores, scoreDelta)

	result = MIM(table, 2, Options{})
	require.Equal(t, []int{1, 3}, result.Features)
}

func TestCondMIStopsEarly(t *testing.T) {
	// the label is 2*F0 + F1, the other three features carry nothing about it
	table, err := data.NewTable([][]int{
		{0, 0, 1, 1, 0, 0, 1, 1},
		{0, 1, 0, 1, 0, 1, 0, 1},
		{0, 0, 0, 0, 1, 1, 1, 1},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 0, 0, 0, 0},
	}, []int{0, 1, 2, 3, 0, 1, 2, 3})
	require.NoError(t, err)

	result := CondMI(table, 5, Options{})
	require.Equal(t, []int{0, 1}, result.Features)
	require.Equal(t, []float64{1, 1}, result.Scores)

	weighted := CondMI(table, 5, Options{Estimator: mi.Weighted{Weights: unitWeights(8)}})
	require.Equal(t, result, weighted)
}

func TestSelectionProperties(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		table := randomTable(t, seed, 12, 60)
		labels := table.Labels()

		best, bestMI := -1, math.Inf(-1)
		for i := 0; i < table.NumFeatures(); i++ {
			if v := mi.MutualInformation(table.Feature(i), labels); v > bestMI {
				best, bestMI = i, v
			}
		}

		for _, algorithm := range allAlgorithms {
			config := Config{Algorithm: algorithm, NumFeatures: 6, Beta: 0.5, Gamma: 0.25}
			first, err := Select(table, config)
			require.NoError(t, err)
			second, err := Select(table, config)
			require.NoError(t, err)

			require.Equal(t, first, second, "%s is not deterministic", algorithm)
			require.Equal(t, best, first.Features[0], "%s did not start with the most relevant feature", algorithm)
			require.Equal(t, bestMI, first.Scores[0])
			require.Equal(t, len(first.Features), len(first.Scores))

			seen := map[int]bool{}
			for i, f := range first.Features {
				require.False(t, seen[f], "%s selected feature %d twice", algorithm, f)
				seen[f] = true
				require.False(t, math.IsNaN(first.Scores[i]) || math.IsInf(first.Scores[i], 0))
			}

			if algorithm == AlgorithmCondMI {
				require.True(t, first.Len() <= 6)
				for _, score := range first.Scores {
					require.True(t, score > 0)
				}
			} else {
				require.Equal(t, 6, first.Len())
			}
		}
	}
}

func TestBetaGammaEquivalences(t *testing.T) {
	table := randomTable(t, 11, 10, 80)
	labels := table.Labels()
	k := 7

	mifs := exhaustive(table, k, func(classMI float64, j int, selected []int) float64 {
		total := 0.0
		for _, s := range selected {
			total += mi.MutualInformation(table.Feature(s), table.Feature(j))
		}
		return classMI - total
	})
	cife := exhaustive(table, k, func(classMI float64, j int, selected []int) float64 {
		total := 0.0
		for _, s := range selected {
			total += mi.MutualInformation(table.Feature(s), table.Feature(j)) -
				mi.ConditionalMutualInformation(table.Feature(s), table.Feature(j), labels)
		}
		return classMI - total
	})
	condRed := exhaustive(table, k, func(classMI float64, j int, selected []int) float64 {
		total := 0.0
		for _, s := range selected {
			total += mi.ConditionalMutualInformation(table.Feature(s), table.Feature(j), labels)
		}
		return classMI + total
	})

	tests := []struct {
		name        string
		beta, gamma float64
		named       func(t *data.Table, k int, o Options) *Result
		want        *Result
	}{
		{"mifs", 1, 0, MIFS, mifs},
		{"cife", 1, 1, CIFE, cife},
		{"condred", 0, 1, CondRed, condRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BetaGamma(table, k, tt.beta, tt.gamma, Options{})
			require.Equal(t, tt.want.Features, got.Features)
			require.InDeltaSlice(t, tt.want.Scores, got.Scores, scoreDelta)
			require.Equal(t, got, tt.named(table, k, Options{}))
		})
	}
}

func TestCMIMMatchesExhaustiveSearch(t *testing.T) {
	for seed := int64(20); seed < 25; seed++ {
		table := randomTable(t, seed, 15, 50)
		labels := table.Labels()
		want := exhaustive(table, 8, func(classMI float64, j int, selected []int) float64 {
			score := classMI
			for _, s := range selected {
				if v := mi.ConditionalMutualInformation(table.Feature(j), labels, table.Feature(s)); v < score {
					score = v
				}
			}
			return score
		})
		require.Equal(t, want, CMIM(table, 8, Options{}))
	}
}

func TestCMIMPrunesConditionalTerms(t *testing.T) {
	// The label encodes the pair (a, b). Features a and b carry one bit each and
	// are independent, while c is barely informative.
	a := []int{0, 0, 1, 1, 0, 0, 1, 1}
	b := []int{0, 1, 0, 1, 0, 1, 0, 1}
	c := []int{0, 0, 0, 0, 0, 0, 0, 1}
	labels := []int{0, 1, 2, 3, 0, 1, 2, 3}
	table, err := data.NewTable([][]int{a, b, c}, labels)
	require.NoError(t, err)

	tests := []struct {
		k           int
		features    []int
		conditional [][2]int
	}{
		// c's bound I(c;Y) is already below I(b;Y|a) = 1, so it is never tightened.
		{2, []int{0, 1}, [][2]int{{1, 0}}},
		// with only c left it is tightened against every selected feature in order
		{3, []int{0, 1, 2}, [][2]int{{1, 0}, {2, 0}, {2, 1}}},
	}
	for _, tt := range tests {
		est := &recordingEstimator{table: table}
		result := CMIM(table, tt.k, Options{Estimator: est})
		require.Equal(t, tt.features, result.Features)
		require.Equal(t, tt.conditional, est.conditional)
		require.Equal(t, 1.0, result.Scores[1])
	}

	est := &countingEstimator{}
	CMIM(table, 2, Options{Estimator: est})
	require.Equal(t, 3+1, est.calls)
}

func TestCacheDoesNotChangeScores(t *testing.T) {
	table := randomTable(t, 5, 14, 70)
	runs := map[string]func(o Options) *Result{
		"jmi":       func(o Options) *Result { return JMI(table, 8, o) },
		"disr":      func(o Options) *Result { return DISR(table, 8, o) },
		"mrmr_d":    func(o Options) *Result { return MRMRD(table, 8, o) },
		"icap":      func(o Options) *Result { return ICAP(table, 8, o) },
		"betagamma": func(o Options) *Result { return BetaGamma(table, 8, 0.7, 0.4, o) },
	}

	for name, run := range runs {
		t.Run(name, func(t *testing.T) {
			cachedCalls := &countingEstimator{}
			cached := run(Options{Estimator: cachedCalls})
			uncachedCalls := &countingEstimator{}
			uncached := run(Options{Estimator: uncachedCalls, DisableCache: true})

			require.Equal(t, uncached, cached)
			require.True(t, cachedCalls.calls < uncachedCalls.calls)
		})
	}
}

func TestWeightedWithUnitWeights(t *testing.T) {
	table := randomTable(t, 8, 10, 40)
	weighted := Options{Estimator: mi.Weighted{Weights: unitWeights(40)}}

	exact := map[string]func(t *data.Table, k int, o Options) *Result{
		"mim":    MIM,
		"cmim":   CMIM,
		"jmi":    JMI,
		"condmi": CondMI,
	}
	for name, run := range exact {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, run(table, 5, Options{}), run(table, 5, weighted))
		})
	}

	plain := DISR(table, 5, Options{})
	got := DISR(table, 5, weighted)
	require.InDeltaSlice(t, plain.Scores, got.Scores, 1e-9)
}

func TestWeightsChangeTheSelection(t *testing.T) {
	// left agrees with the label on all samples but the last one, right only on
	// the second half. Weighting the second half up makes right the better one.
	left := []int{0, 1, 0, 1, 0, 1, 0, 0}
	right := []int{0, 0, 0, 0, 0, 1, 0, 1}
	labels := []int{0, 1, 0, 1, 0, 1, 0, 1}
	weights := []float64{1, 1, 1, 1, 3, 3, 3, 3}
	table, err := data.NewTable([][]int{left, right}, labels)
	require.NoError(t, err)

	leftMI := mi.WeightedMutualInformation(left, labels, weights)
	rightMI := mi.WeightedMutualInformation(right, labels, weights)
	require.InDelta(t, 0.8073, leftMI, 1e-4)
	require.InDelta(t, 1.0188, rightMI, 1e-4)
	require.InDelta(t, 0.5488, mi.MutualInformation(left, labels), 1e-4)
	require.InDelta(t, 0.3113, mi.MutualInformation(right, labels), 1e-4)

	for _, algorithm := range []Algorithm{AlgorithmMIM, AlgorithmCMIM, AlgorithmJMI, AlgorithmDISR, AlgorithmCondMI} {
		t.Run(string(algorithm), func(t *testing.T) {
			plain, err := Select(table, Config{Algorithm: algorithm, NumFeatures: 1})
			require.NoError(t, err)
			require.Equal(t, []int{0}, plain.Features)

			weighted, err := Select(table, Config{Algorithm: algorithm, NumFeatures: 1, Weights: weights})
			require.NoError(t, err)
			require.Equal(t, []int{1}, weighted.Features)
			require.Equal(t, rightMI, weighted.Scores[0])
		})
	}

	result, err := Select(table, Config{Algorithm: AlgorithmMIM, NumFeatures: 2, Weights: weights})
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, result.Features)
	require.Equal(t, []float64{rightMI, leftMI}, result.Scores)
}

func TestUniformWeightsScaleScores(t *testing.T) {
	table := randomTable(t, 11, 8, 40)
	twos := make([]float64, 40)
	for i := range twos {
		twos[i] = 2
	}

	for _, algorithm := range []Algorithm{AlgorithmMIM, AlgorithmCMIM, AlgorithmJMI, AlgorithmCondMI} {
		t.Run(string(algorithm), func(t *testing.T) {
			plain, err := Select(table, Config{Algorithm: algorithm, NumFeatures: 5})
			require.NoError(t, err)
			weighted, err := Select(table, Config{Algorithm: algorithm, NumFeatures: 5, Weights: twos})
			require.NoError(t, err)

			require.Equal(t, plain.Features, weighted.Features)
			for i := range plain.Scores {
				require.Equal(t, 2*plain.Scores[i], weighted.Scores[i])
			}
		})
	}
}

func TestDegenerateLabel(t *testing.T) {
	table, err := data.NewTable([][]int{
		{0, 1, 0, 1},
		{1, 1, 0, 0},
		{2, 0, 1, 2},
	}, []int{1, 1, 1, 1})
	require.NoError(t, err)

	for _, algorithm := range allAlgorithms {
		result, err := Select(table, Config{Algorithm: algorithm, NumFeatures: 3, Beta: 1, Gamma: 1})
		require.NoError(t, err)
		require.Equal(t, 0, result.Features[0])
		require.Equal(t, 0.0, result.Scores[0])
		for _, score := range result.Scores {
			require.False(t, math.IsNaN(score) || math.IsInf(score, 0))
		}
		if algorithm == AlgorithmCondMI {
			require.Equal(t, []int{0}, result.Features)
		} else {
			require.Equal(t, 3, result.Len())
		}
	}
}

func TestSelectValidation(t *testing.T) {
	table := scenarioTable(t)
	tests := []struct {
		name   string
		config Config
		err    error
	}{
		{"unknown algorithm", Config{Algorithm: "lasso", NumFeatures: 1}, ErrUnknownAlgorithm},
		{"k too small", Config{Algorithm: AlgorithmMIM, NumFeatures: 0}, ErrInvalidK},
		{"k too large", Config{Algorithm: AlgorithmMIM, NumFeatures: 4}, ErrInvalidK},
		{"no weighted variant", Config{Algorithm: AlgorithmMRMRD, NumFeatures: 2, Weights: unitWeights(4)}, ErrWeightsUnsupported},
		{"weight count", Config{Algorithm: AlgorithmJMI, NumFeatures: 2, Weights: unitWeights(3)}, ErrShapeMismatch},
		{"negative weight", Config{Algorithm: AlgorithmCMIM, NumFeatures: 2, Weights: []float64{1, -1, 1, 1}}, ErrInvalidWeights},
		{"nan weight", Config{Algorithm: AlgorithmMIM, NumFeatures: 2, Weights: []float64{1, math.NaN(), 1, 1}}, ErrInvalidWeights},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Select(table, tt.config)
			require.Nil(t, result)
			require.True(t, errors.Is(err, tt.err), "unexpected error %v", err)
		})
	}

	result, err := Select(table, Config{Algorithm: AlgorithmJMI, NumFeatures: 3, Weights: unitWeights(4)})
	require.NoError(t, err)
	require.Equal(t, JMI(table, 3, Options{}), result)
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm(" mRMR_D ")
	require.NoError(t, err)
	require.Equal(t, AlgorithmMRMRD, a)

	_, err = ParseAlgorithm("relief")
	require.True(t, errors.Is(err, ErrUnknownAlgorithm))

	require.Len(t, Algorithms(), len(allAlgorithms))
	require.True(t, SupportsWeights(AlgorithmDISR))
	require.False(t, SupportsWeights(AlgorithmICAP))
}
