package io

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strconv"

	"mifs/pkg/data"
	"mifs/pkg/model"
)

type DataParameters struct {
	DataFile     string
	TargetColumn string

	// WeightColumn is optional. When set the column holds per-sample weights and
	// is not treated as a feature.
	WeightColumn string
}

type DataError struct {
	Line  int
	Error string
}

// LoadData reads a CSV file with a header line into a discretized table. Every
// column but the target and weight columns is a feature; each distinct value of
// a column is mapped to a category code in order of appearance. Weights are nil
// when no weight column is configured.
func LoadData(p DataParameters) (*model.Metadata, *data.Table, []float64, []DataError, error) {
	inputFile, err := os.Open(p.DataFile)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error opening file: %w", err)
	}
	defer inputFile.Close()
	return ReadData(p, inputFile)
}

// ReadData is LoadData over an already opened input.
func ReadData(p DataParameters, input io.Reader) (*model.Metadata, *data.Table, []float64, []DataError, error) {
	var errors []DataError

	reader := csv.NewReader(input)
	reader.Comma = ','
	reader.FieldsPerRecord = -1

	//First line is expected to be a header
	record, err := reader.Read()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error reading data header: %w", err)
	}

	metaData := model.NewMetadata()
	metaData.Columns = record
	if err := setTargetColumn(p, metaData); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := setWeightColumn(p, metaData); err != nil {
		return nil, nil, nil, nil, err
	}
	buildFeatureIndex(metaData)
	if metaData.FeatureCount() == 0 {
		return nil, nil, nil, nil, fmt.Errorf("no feature columns in data header")
	}

	var rows [][]int
	var labels []int
	var weights []float64

	currentLine := 0
	for {
		record, err = reader.Read()
		if err == io.EOF {
			break
		}
		currentLine++
		if err != nil {
			errors = append(errors, DataError{
				Line:  currentLine,
				Error: err.Error(),
			})
			continue
		}
		if len(record) != len(metaData.Columns) {
			errors = append(errors, DataError{
				Line:  currentLine,
				Error: fmt.Sprintf("expected %d fields, found %d", len(metaData.Columns), len(record)),
			})
			continue
		}

		if metaData.WeightColumn != model.NoColumn {
			weight, err := parseWeight(metaData, record)
			if err != nil {
				errors = append(errors, DataError{
					Line:  currentLine,
					Error: err.Error(),
				})
				continue
			}
			weights = append(weights, weight)
		}

		labels = append(labels, metaData.ParseOrAddCategoricalTarget(record[metaData.TargetColumn]))
		rows = append(rows, parseFeatures(metaData, record))
	}

	table, err := data.NewTableFromRows(rows, labels)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error building data table: %w", err)
	}
	return metaData, table, weights, errors, nil
}

func parseFeatures(metaData *model.Metadata, record []string) []int {
	features := make([]int, metaData.FeatureCount())
	for column, index := range metaData.FeaturesMap.ColumnToIndex {
		features[index] = metaData.ParseOrAddCategory(index, record[column])
	}
	return features
}

func parseWeight(metaData *model.Metadata, record []string) (float64, error) {
	value, err := strconv.ParseFloat(record[metaData.WeightColumn], 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing weight %s: %w", metaData.Columns[metaData.WeightColumn], err)
	}
	return value, nil
}

func buildFeatureIndex(metaData *model.Metadata) {
	featureIndex := 0
	for i := range metaData.Columns {
		if i != metaData.TargetColumn && i != metaData.WeightColumn {
			metaData.FeaturesMap.Set(i, featureIndex)
			featureIndex++
		}
	}
}

func setTargetColumn(p DataParameters, metaData *model.Metadata) error {
	column, ok := findColumn(metaData.Columns, p.TargetColumn)
	if !ok {
		return fmt.Errorf("target column %s not found in data header", p.TargetColumn)
	}
	metaData.TargetColumn = column
	return nil
}

func setWeightColumn(p DataParameters, metaData *model.Metadata) error {
	if p.WeightColumn == "" {
		return nil
	}
	column, ok := findColumn(metaData.Columns, p.WeightColumn)
	if !ok {
		return fmt.Errorf("weight column %s not found in data header", p.WeightColumn)
	}
	if column == metaData.TargetColumn {
		return fmt.Errorf("weight column %s is also the target column", p.WeightColumn)
	}
	metaData.WeightColumn = column
	return nil
}

func findColumn(columns []string, name string) (int, bool) {
	for i, col := range columns {
		if col == name {
			return i, true
		}
	}
	return model.NoColumn, false
}

func SaveSelection(selection *model.Selection, writer io.Writer) error {
	encoder := gob.NewEncoder(writer)
	err := encoder.Encode(selection)
	if err != nil {
		return fmt.Errorf("error encoding selection: %w", err)
	}
	return nil
}

func LoadSelection(input io.Reader) (*model.Selection, error) {
	decoder := gob.NewDecoder(input)
	selection := model.Selection{}
	err := decoder.Decode(&selection)
	if err != nil {
		return nil, fmt.Errorf("error decoding selection: %w", err)
	}
	return &selection, nil
}

// WriteReport writes the ranking of a selection as CSV, one line per selected feature.
func WriteReport(selection *model.Selection, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"rank", "index", "name", "score"}); err != nil {
		return fmt.Errorf("error writing report header: %w", err)
	}
	names := selection.FeatureNames()
	for i, feature := range selection.Features {
		err := w.Write([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(feature),
			names[i],
			strconv.FormatFloat(selection.Scores[i], 'f', 6, 64),
		})
		if err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
