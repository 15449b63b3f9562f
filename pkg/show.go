package pkg

import (
	"fmt"
	gio "io"
	"os"

	"github.com/rs/zerolog/log"

	"mifs/pkg/io"
	"mifs/pkg/model"
)

type NoopWriter struct{}

func (x NoopWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// Show logs a stored selection and optionally writes its ranking as CSV.
func Show(selectionFileName, outputFileName string) error {
	selectionFile, err := os.Open(selectionFileName)
	if err != nil {
		return fmt.Errorf("error opening selection file %s: %w", selectionFileName, err)
	}
	defer selectionFile.Close()

	s, err := io.LoadSelection(selectionFile)
	if err != nil {
		return fmt.Errorf("error loading selection from file %s: %w", selectionFileName, err)
	}

	log.Info().Str("Target", s.MetaData.TargetName()).
		Int("Features", s.MetaData.FeatureCount()).
		Bool("Weighted", s.Weighted).
		Msg("")
	logSelection(s)

	var outputWriter gio.Writer
	if outputFileName != "" {
		outputFile, err := os.Create(outputFileName)
		if err != nil {
			return fmt.Errorf("error opening output file %s: %w", outputFileName, err)
		}
		defer outputFile.Close()
		outputWriter = outputFile
	} else {
		outputWriter = NoopWriter{}
	}
	return io.WriteReport(s, outputWriter)
}

func writeReport(s *model.Selection, reportFileName string) error {
	reportFile, err := os.Create(reportFileName)
	if err != nil {
		return fmt.Errorf("error opening report file %s: %w", reportFileName, err)
	}
	defer reportFile.Close()
	if err := io.WriteReport(s, reportFile); err != nil {
		return fmt.Errorf("error writing report to %s: %w", reportFileName, err)
	}
	return nil
}
