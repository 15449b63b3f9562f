package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mifs/pkg"
	"mifs/pkg/selection"
)

func bindSelectionFlags(cmd *cobra.Command, params *pkg.SelectionParameters) {
	cmd.Flags().StringVarP(&params.Algorithm, "algorithm", "a", "mim", "selection criterion, one of: "+strings.Join(selection.Algorithms(), ", "))
	cmd.Flags().IntVarP(&params.NumFeatures, "num-features", "k", 10, "number of features to select")
	cmd.Flags().Float64VarP(&params.Beta, "beta", "", 1.0, "weight of the redundancy term (betagamma only)")
	cmd.Flags().Float64VarP(&params.Gamma, "gamma", "", 1.0, "weight of the conditional redundancy term (betagamma only)")
	cmd.Flags().StringVarP(&params.TargetColumn, "target-column", "t", "", "target column")
	cmd.Flags().StringVarP(&params.WeightColumn, "weight-column", "w", "", "column holding per-sample weights (optional), supported by: "+strings.Join(weightedAlgorithms(), ", "))
	cmd.Flags().BoolVarP(&params.DisableCache, "disable-cache", "", false, "recompute every score instead of caching per step")

	_ = cmd.MarkFlagRequired("target-column")
}

func weightedAlgorithms() []string {
	var names []string
	for _, name := range selection.Algorithms() {
		if selection.SupportsWeights(selection.Algorithm(name)) {
			names = append(names, name)
		}
	}
	return names
}

func SelectCommand() *cobra.Command {
	var inputFile string
	var outputFile string
	var reportFile string
	var params pkg.SelectionParameters

	var cmd = &cobra.Command{
		Use:   "select -i data -o outputFile -t target",
		Short: "Selects features from the provided discretized data and saves the selection",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.Select(inputFile, outputFile, reportFile, params)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "name of data file")
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "name of the file to save the selection to")
	cmd.Flags().StringVarP(&reportFile, "report", "r", "", "name of CSV ranking report file (optional, written before the selection file)")
	bindSelectionFlags(cmd, &params)

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output-file")

	return cmd
}

func ShowCommand() *cobra.Command {
	var selectionFile string
	var outputFile string

	var cmd = &cobra.Command{
		Use:   "show -s selectionFile [-o outputFile]",
		Short: "Prints a saved selection and optionally writes its ranking as CSV",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.Show(selectionFile, outputFile)
		},
	}

	cmd.Flags().StringVarP(&selectionFile, "selection", "s", "", "name of selection file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "name of output file (optional)")

	_ = cmd.MarkFlagRequired("selection")

	return cmd
}

func StabilityCommand() *cobra.Command {
	var inputFile string
	var params pkg.StabilityParameters

	var cmd = &cobra.Command{
		Use:   "stability -i data -t target",
		Short: "Repeats the selection on random subsamples and reports how often each feature is selected",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.Stability(inputFile, params)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "name of data file")
	cmd.Flags().IntVarP(&params.Repeats, "repeats", "n", 10, "number of subsamples")
	cmd.Flags().Float64VarP(&params.SampleFraction, "sample-fraction", "f", 0.8, "fraction of rows in every subsample")
	cmd.Flags().Int64VarP(&params.RndSeed, "random-seed", "x", 42, "random seed")
	bindSelectionFlags(cmd, &params.SelectionParameters)

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

var logLevel string
var logFormat string

func main() {

	Main := &cobra.Command{Use: "mifs", PersistentPreRun: setupLogging}

	Main.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	Main.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")

	Main.AddCommand(SelectCommand())
	Main.AddCommand(ShowCommand())
	Main.AddCommand(StabilityCommand())

	if err := Main.Execute(); err != nil {
		panic(err)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {

	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		panic("Invalid logging level specified")
	}

	switch logFormat {
	case "pretty":
		setupPrettyLogging()
	case "json":
	default:
		panic("Invalid log format specified")

	}

}

func setupPrettyLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	writer.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case json.Number:
			val, _ := v.Float64()
			return fmt.Sprintf("%.3f", val)
		default:
			return fmt.Sprintf("%s", i)
		}

	}
	log.Logger = log.Output(writer)

}
