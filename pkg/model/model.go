package model

// Selection is the stored outcome of a feature selection run.
type Selection struct {
	MetaData *Metadata

	Algorithm string
	Beta      float64
	Gamma     float64
	Weighted  bool

	// Features holds the selected feature indices in selection order
	Features []int

	// Scores holds the score of each feature when it was selected
	Scores []float64

	// Remaining holds the label entropy left once the features up to each rank are known
	Remaining []float64
}

func (s *Selection) FeatureNames() []string {
	names := make([]string, len(s.Features))
	for i, f := range s.Features {
		names[i] = s.MetaData.FeatureName(f)
	}
	return names
}
