package pkg

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"mifs/pkg/data"
	"mifs/pkg/io"
	"mifs/pkg/selection"
)

type StabilityParameters struct {
	SelectionParameters
	Repeats        int
	SampleFraction float64
	RndSeed        int64
}

// FeatureStability summarises how a feature behaved over repeated selections.
type FeatureStability struct {
	Index     int
	Frequency float64
	MeanScore float64
	StdScore  float64
}

// Stability repeats the selection on random subsamples of the input rows and logs
// how often, and with which scores, every feature was selected.
func Stability(inputFileName string, params StabilityParameters) error {
	metaData, table, weights, err := loadTable(params.dataParameters(inputFileName))
	if err != nil {
		return err
	}

	result, err := stabilityInternal(table, weights, params)
	if err != nil {
		return err
	}
	for _, f := range result {
		log.Info().Int("Index", f.Index).
			Str("Name", metaData.FeatureName(f.Index)).
			Float64("Frequency", f.Frequency).
			Float64("MeanScore", f.MeanScore).
			Float64("StdScore", f.StdScore).
			Msg("")
	}
	return nil
}

// stabilityInternal returns the features selected at least once, most frequent first.
func stabilityInternal(table *data.Table, weights []float64, params StabilityParameters) ([]FeatureStability, error) {
	if params.Repeats < 1 {
		return nil, fmt.Errorf("number of repeats must be positive, got %d", params.Repeats)
	}
	if params.SampleFraction <= 0 || params.SampleFraction > 1 {
		return nil, fmt.Errorf("sample fraction must be in (0, 1], got %v", params.SampleFraction)
	}
	algorithm, err := selection.ParseAlgorithm(params.Algorithm)
	if err != nil {
		return nil, err
	}

	ds := io.NewDataSet(table, weights)
	ds.Rand = rand.New(rand.NewSource(params.RndSeed))
	sampleSize := int(params.SampleFraction * float64(ds.Size()))
	if sampleSize < 1 {
		sampleSize = 1
	}

	scores := map[int][]float64{}
	for repeat := 0; repeat < params.Repeats; repeat++ {
		sample, sampleWeights := ds.RandomSplit(sampleSize)[0].Materialize()
		result, err := runSelection(sample, sampleWeights, algorithm, params.SelectionParameters)
		if err != nil {
			return nil, fmt.Errorf("repeat %d: %w", repeat, err)
		}
		log.Debug().Int("Repeat", repeat).Ints("Features", result.Features).Msg("")
		for i, feature := range result.Features {
			scores[feature] = append(scores[feature], result.Scores[i])
		}
	}

	stability := make([]FeatureStability, 0, len(scores))
	for feature, s := range scores {
		f := FeatureStability{
			Index:     feature,
			Frequency: float64(len(s)) / float64(params.Repeats),
		}
		if len(s) > 1 {
			mean, variance := stat.MeanVariance(s, nil)
			f.MeanScore, f.StdScore = mean, math.Sqrt(math.Max(variance, 0))
		} else {
			f.MeanScore = s[0]
		}
		stability = append(stability, f)
	}
	sort.Slice(stability, func(i, j int) bool {
		if stability[i].Frequency != stability[j].Frequency {
			return stability[i].Frequency > stability[j].Frequency
		}
		return stability[i].Index < stability[j].Index
	})
	return stability, nil
}
