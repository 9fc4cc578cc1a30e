// =============================================================================
// Seller Analytics - Validate Command
// =============================================================================
//
// This file defines the 'validate' command.
//
// COMMAND USAGE:
//   salesanalyzer validate              # Validate the configuration only
//   salesanalyzer validate --file path  # Also validate a dataset
//
// A dataset is valid when the analysis succeeds. Inspection issues are
// printed either way; only analysis failures make the command fail.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/seller-analytics/internal/analytics"
	"github.com/ginjaninja78/seller-analytics/internal/dataset"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and, optionally, a dataset",
	Long: `The validate command loads and checks the configuration. With --file it
also loads the dataset, runs the analysis without writing a report and
lists every issue found in the data.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to a dataset to validate")
}

func runValidate(out io.Writer) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Configuration is valid (%s)\n", cfgFile)

	if validateFile == "" {
		return nil
	}

	ds, err := dataset.Load(validateFile, cfg.InputFormat, cfg.CSVSettings)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	issues := dataset.Inspect(ds)
	fmt.Fprintln(out, dataset.FormatIssues(issues))

	analyzer, err := analytics.New(analytics.Options{Logger: &logger})
	if err != nil {
		return err
	}
	result, err := analyzer.Run(ds)
	if err != nil {
		return fmt.Errorf("dataset is invalid: %w", err)
	}

	fmt.Fprintf(out, "Dataset is valid: %d seller(s) ranked, %d receipt(s) and %d item(s) skipped\n",
		result.Stats.SellersRanked, result.Stats.ReceiptsSkipped, result.Stats.ItemsSkipped)
	return nil
}
