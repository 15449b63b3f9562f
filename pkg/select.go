package pkg

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"mifs/pkg/data"
	"mifs/pkg/io"
	"mifs/pkg/mi"
	"mifs/pkg/model"
	"mifs/pkg/selection"
)

// Labels with less entropy than this carry no information to select features for.
const labelEntropyThreshold = 1e-7

type SelectionParameters struct {
	Algorithm    string
	NumFeatures  int
	Beta         float64
	Gamma        float64
	TargetColumn string
	WeightColumn string
	DisableCache bool
}

func (p SelectionParameters) dataParameters(inputFileName string) io.DataParameters {
	return io.DataParameters{
		DataFile:     inputFileName,
		TargetColumn: p.TargetColumn,
		WeightColumn: p.WeightColumn,
	}
}

// Select runs feature selection on the input file and saves the selection to
// outputFileName. When reportFileName is set the ranking is written there as CSV
// first, so a failing report leaves no selection file behind.
func Select(inputFileName, outputFileName, reportFileName string, params SelectionParameters) error {
	metaData, table, weights, err := loadTable(params.dataParameters(inputFileName))
	if err != nil {
		return err
	}

	s, err := selectInternal(metaData, table, weights, params)
	if err != nil {
		return err
	}
	logSelection(s)

	if reportFileName != "" {
		if err := writeReport(s, reportFileName); err != nil {
			return err
		}
	}

	outputFile, err := os.Create(outputFileName)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", outputFileName, err)
	}
	defer outputFile.Close()

	if err := io.SaveSelection(s, outputFile); err != nil {
		return fmt.Errorf("error saving selection to %s: %w", outputFileName, err)
	}
	return nil
}

func loadTable(p io.DataParameters) (*model.Metadata, *data.Table, []float64, error) {
	metaData, table, weights, dataErrors, err := io.LoadData(p)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading data from %s: %w", p.DataFile, err)
	}
	printDataErrors(dataErrors)
	if table.NumSamples() == 0 {
		return nil, nil, nil, fmt.Errorf("no data to select features from in %s", p.DataFile)
	}
	return metaData, table, weights, nil
}

func selectInternal(metaData *model.Metadata, table *data.Table, weights []float64, params SelectionParameters) (*model.Selection, error) {
	algorithm, err := selection.ParseAlgorithm(params.Algorithm)
	if err != nil {
		return nil, err
	}
	result, err := runSelection(table, weights, algorithm, params)
	if err != nil {
		return nil, err
	}
	return &model.Selection{
		MetaData:  metaData,
		Algorithm: string(algorithm),
		Beta:      params.Beta,
		Gamma:     params.Gamma,
		Weighted:  weights != nil,
		Features:  result.Features,
		Scores:    result.Scores,
		Remaining: remainingEntropy(table, weights, result.Features),
	}, nil
}

// remainingEntropy returns, for every rank, the entropy of the label given all
// features selected up to that rank.
func remainingEntropy(table *data.Table, weights []float64, features []int) []float64 {
	remaining := make([]float64, len(features))
	var joint []int
	for i, feature := range features {
		if joint == nil {
			joint = table.Feature(feature)
		} else {
			joint = mi.Merge(joint, table.Feature(feature))
		}
		if weights != nil {
			remaining[i] = mi.WeightedConditionalEntropy(table.Labels(), joint, weights)
		} else {
			remaining[i] = mi.ConditionalEntropy(table.Labels(), joint)
		}
	}
	return remaining
}

func runSelection(table *data.Table, weights []float64, algorithm selection.Algorithm, params SelectionParameters) (*selection.Result, error) {
	if h := labelEntropy(table.Labels(), weights); h < labelEntropyThreshold {
		log.Warn().Float64("Entropy", h).Msg("Label has no entropy, no features selected")
		return &selection.Result{}, nil
	}
	result, err := selection.Select(table, selection.Config{
		Algorithm:    algorithm,
		NumFeatures:  params.NumFeatures,
		Beta:         params.Beta,
		Gamma:        params.Gamma,
		Weights:      weights,
		DisableCache: params.DisableCache,
	})
	if err != nil {
		return nil, fmt.Errorf("error selecting features: %w", err)
	}
	return result, nil
}

func labelEntropy(labels []int, weights []float64) float64 {
	if weights != nil {
		return mi.WeightedEntropy(labels, weights)
	}
	return mi.Entropy(labels)
}

func logSelection(s *model.Selection) {
	names := s.FeatureNames()
	for i, feature := range s.Features {
		event := log.Info().Int("Rank", i+1).
			Int("Index", feature).
			Str("Name", names[i]).
			Float64("Score", s.Scores[i])
		if i < len(s.Remaining) {
			event = event.Float64("Remaining", s.Remaining[i])
		}
		event.Msg("")
	}
	log.Info().Str("Algorithm", s.Algorithm).Int("Selected", len(s.Features)).Msg("Selection finished")
}
