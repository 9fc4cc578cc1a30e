// =============================================================================
// Seller Analytics - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which runs the analysis for one
// dataset or for every dataset in the input directory.
//
// COMMAND USAGE:
//   salesanalyzer analyze [flags]
//
// FLAGS:
//   --file     : Analyze a single dataset instead of scanning input_dir
//   --format   : Override output_format (json, yaml, xml, xlsx)
//   --dry-run  : Load and analyze without writing reports or archiving
//   --stdout   : Print reports to standard output instead of output_dir
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover datasets in the input directory (or use --file)
//   3. Analyze datasets concurrently, at most max_concurrency at a time
//   4. Collect results and print a summary
//   5. Write the processing summary to output_dir
//
// =============================================================================

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/seller-analytics/internal/config"
	"github.com/ginjaninja78/seller-analytics/internal/report"
	"github.com/ginjaninja78/seller-analytics/internal/runner"
	"github.com/ginjaninja78/seller-analytics/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	analyzeFile   string
	analyzeFormat string
	dryRun        bool
	toStdout      bool
)

// =============================================================================
// ANALYZE COMMAND DEFINITION
// =============================================================================

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze datasets and write seller reports",
	Long: `The analyze command loads each dataset, ranks its sellers by profit and
writes one report per dataset.

Datasets in the input directory are analyzed concurrently. A failure in one
dataset does not affect the others unless stop_on_error is set.

On success:
  - The report is placed in the output directory
  - The dataset is moved to the input archive when archive_inputs is set

On error:
  - The dataset remains in the input directory
  - The error is listed in the processing summary`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeFormat != "" && !slices.Contains(report.Formats, analyzeFormat) {
			return fmt.Errorf("unsupported output format: %s", analyzeFormat)
		}
		return runAnalyze(cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Path to a single dataset to analyze")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Output format: json, yaml, xml or xlsx (overrides output_format)")
	analyzeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze without writing reports or archiving datasets")
	analyzeCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print reports to standard output instead of the output directory")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// outcome is a runner result plus the report bytes captured for --stdout.
type outcome struct {
	runner.Result
	output []byte
}

// runAnalyze orchestrates the analysis of all selected datasets. Progress is
// written to stderr when reports go to stdout.
func runAnalyze(stdout, stderr io.Writer) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	logger = logger.With().Str("run_id", runID).Logger()

	progress := stdout
	if toStdout {
		progress = stderr
	}

	// =========================================================================
	// STEP 2: DISCOVER DATASETS
	// =========================================================================

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)

	var datasets []string
	if analyzeFile != "" {
		datasets = []string{analyzeFile}
	} else {
		if err := files.EnsureDirectories(); err != nil {
			return err
		}
		datasets, err = files.DiscoverDatasets()
		if err != nil {
			return fmt.Errorf("failed to discover datasets: %w", err)
		}
	}

	if len(datasets) == 0 {
		fmt.Fprintf(progress, "No datasets found in %s\n", cfg.InputDir)
		return nil
	}

	logger.Info().Int("datasets", len(datasets)).Msg("starting analysis")

	// =========================================================================
	// STEP 3: PROCESS DATASETS CONCURRENTLY
	// =========================================================================

	opts := runner.Options{Format: analyzeFormat, DryRun: dryRun}
	outcomes := processDatasets(datasets, cfg, logger, opts, toStdout)

	// =========================================================================
	// STEP 4: COLLECT RESULTS AND PRINT SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{
		RunID:         runID,
		StartTime:     startTime,
		TotalDatasets: len(datasets),
	}

	for _, o := range outcomes {
		name := filepath.Base(o.FilePath)
		if !o.Success {
			summary.FailedDatasets++
			summary.FailedDatasetsList = append(summary.FailedDatasetsList, utils.FailedDatasetInfo{
				InputPath:    o.FilePath,
				ErrorMessage: o.Error.Error(),
			})
			fmt.Fprintf(progress, "  ✗ %s: %v\n", name, o.Error)
			continue
		}

		summary.SuccessfulDatasets++
		summary.TotalReceipts += o.Stats.Receipts
		summary.TotalLineItems += o.Stats.LineItems
		summary.TotalSellers += o.Stats.SellersRanked
		summary.ProcessedDatasets = append(summary.ProcessedDatasets, utils.ProcessedDatasetInfo{
			InputPath:   o.FilePath,
			OutputFile:  o.OutputFile,
			ArchivePath: o.ArchivePath,
			Receipts:    o.Stats.Receipts,
			LineItems:   o.Stats.LineItems,
			Sellers:     o.Stats.SellersRanked,
			ProcessTime: o.Stats.ProcessingTime,
		})

		target := o.OutputFile
		if target == "" {
			target = "(not written)"
		}
		fmt.Fprintf(progress, "  ✓ %s -> %s\n", name, target)
		fmt.Fprintf(progress, "    %s\n", report.Summary(o.Reports))

		if toStdout {
			stdout.Write(o.output)
		}
	}

	summary.EndTime = time.Now()

	fmt.Fprintln(progress, "\n=== Analysis Complete ===")
	fmt.Fprintf(progress, "Total datasets:  %d\n", summary.TotalDatasets)
	fmt.Fprintf(progress, "Successful:      %d\n", summary.SuccessfulDatasets)
	fmt.Fprintf(progress, "Errors:          %d\n", summary.FailedDatasets)
	fmt.Fprintf(progress, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	// =========================================================================
	// STEP 5: WRITE PROCESSING SUMMARY
	// =========================================================================

	if !dryRun && !toStdout {
		path, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to write processing summary")
		} else {
			logger.Debug().Str("path", path).Msg("wrote processing summary")
		}
	}

	if summary.FailedDatasets > 0 {
		return fmt.Errorf("%d of %d dataset(s) failed", summary.FailedDatasets, summary.TotalDatasets)
	}
	return nil
}

// processDatasets runs one runner per dataset, at most cfg.MaxConcurrency at
// a time, and returns the outcomes in dataset order. With StopOnError set,
// datasets not yet started after a failure are reported as skipped. When
// capture is set each report is buffered instead of written to a file.
func processDatasets(datasets []string, cfg *config.MainConfig, logger zerolog.Logger, opts runner.Options, capture bool) []outcome {
	limit := cfg.MaxConcurrency
	if limit < 1 {
		limit = 1
	}

	type indexed struct {
		index int
		outcome
	}

	var wg sync.WaitGroup
	var failed atomic.Bool
	semaphore := make(chan struct{}, limit)
	results := make(chan indexed, len(datasets))

	for i, path := range datasets {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if cfg.StopOnError && failed.Load() {
				results <- indexed{i, outcome{Result: runner.Result{
					FilePath: path,
					Error:    fmt.Errorf("skipped after an earlier failure"),
				}}}
				return
			}

			runOpts := opts
			var buf bytes.Buffer
			if capture {
				runOpts.Output = &buf
			}

			result := runner.New(path, cfg, logger, runOpts).Run()
			if !result.Success {
				failed.Store(true)
				logger.Error().Err(result.Error).Str("path", path).Msg("dataset failed")
			}
			results <- indexed{i, outcome{Result: result, output: buf.Bytes()}}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]outcome, len(datasets))
	for r := range results {
		outcomes[r.index] = r.outcome
	}
	return outcomes
}
