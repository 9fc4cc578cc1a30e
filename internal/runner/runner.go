// =============================================================================
// Seller Analytics - Runner Module
// =============================================================================
//
// This module orchestrates the analysis of a single dataset, from loading to
// report output.
//
// PROCESSING PIPELINE:
//   1. Load the dataset (JSON file, CSV directory or XLSX workbook)
//   2. Inspect the dataset and log the issues found
//   3. Analyze the dataset into ranked seller reports
//   4. Write the report (file in output_dir, or the configured writer)
//   5. Archive the dataset when archive_inputs is set
//
// CONCURRENCY:
//   A Runner handles exactly one dataset and shares no state with other
//   runners, so the analyze command runs one per goroutine.
//
// =============================================================================

package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/seller-analytics/internal/analytics"
	"github.com/ginjaninja78/seller-analytics/internal/config"
	"github.com/ginjaninja78/seller-analytics/internal/dataset"
	"github.com/ginjaninja78/seller-analytics/internal/report"
	"github.com/ginjaninja78/seller-analytics/internal/types"
	"github.com/ginjaninja78/seller-analytics/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of analyzing a single dataset.
type Result struct {
	// FilePath is the path to the dataset that was analyzed.
	FilePath string

	// Dataset is the dataset name used in logs and file names.
	Dataset string

	// OutputFile is the path to the generated report.
	// Empty on failure, in dry-run mode, or when writing to Options.Output.
	OutputFile string

	// ArchivePath is where the dataset was moved, if it was archived.
	ArchivePath string

	// Reports holds the seller reports on success.
	Reports []types.SellerReport

	// Success indicates whether the run was successful.
	Success bool

	// Error contains the error if the run failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	Sellers   int
	Products  int
	Receipts  int
	LineItems int

	// ReceiptsSkipped counts receipts for unknown sellers.
	ReceiptsSkipped int

	// ItemsSkipped counts line items for unknown SKUs.
	ItemsSkipped int

	// SellersRanked is the number of sellers in the report.
	SellersRanked int

	// Issues is the number of problems Inspect found.
	Issues int

	// ProcessingTime is the time taken to process the dataset.
	ProcessingTime time.Duration
}

// =============================================================================
// RUNNER STRUCTURE
// =============================================================================

// Options adjusts a single run.
type Options struct {
	// Format overrides the configured output format when set.
	Format string

	// DryRun loads and analyzes but writes and archives nothing.
	DryRun bool

	// Output receives the report instead of a file in output_dir.
	// Archival is skipped when Output is set.
	Output io.Writer
}

// Runner analyzes a single dataset.
type Runner struct {
	path    string
	config  *config.MainConfig
	options Options
	logger  zerolog.Logger
	files   *utils.FileManager
}

// New creates a new Runner.
//
// PARAMETERS:
//   - path: The dataset to analyze.
//   - cfg: The main application configuration.
//   - logger: The logger; the dataset name is attached to every event.
//   - opts: Per-run adjustments.
func New(path string, cfg *config.MainConfig, logger zerolog.Logger, opts Options) *Runner {
	if opts.Format == "" {
		opts.Format = cfg.OutputFormat
	}
	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	files.UseTimestampSubdirs = cfg.ArchiveTimestampSubdirs

	return &Runner{
		path:    path,
		config:  cfg,
		options: opts,
		logger:  logger.With().Str("dataset", dataset.Name(path)).Logger(),
		files:   files,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the dataset. Failures are reported in the
// Result, never panicked.
func (r *Runner) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		FilePath: r.path,
		Dataset:  dataset.Name(r.path),
	}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEP 1: LOAD DATASET
	// =========================================================================

	r.logger.Info().Str("path", r.path).Msg("processing dataset")

	ds, err := dataset.Load(r.path, r.config.InputFormat, r.config.CSVSettings)
	if err != nil {
		result.Error = fmt.Errorf("failed to load dataset: %w", err)
		return result
	}

	result.Stats.Sellers = len(ds.Sellers)
	result.Stats.Products = len(ds.Products)
	result.Stats.Receipts = len(ds.PurchaseRecords)
	result.Stats.LineItems = ds.LineItemCount()
	r.logger.Debug().
		Int("sellers", result.Stats.Sellers).
		Int("products", result.Stats.Products).
		Int("receipts", result.Stats.Receipts).
		Int("line_items", result.Stats.LineItems).
		Msg("loaded dataset")

	// =========================================================================
	// STEP 2: INSPECT DATASET
	// =========================================================================
	// Issues are advisory; the analyzer decides what is fatal.

	issues := dataset.Inspect(ds)
	result.Stats.Issues = len(issues)
	for _, issue := range issues {
		r.logger.Debug().Str("issue", issue.String()).Msg("dataset issue")
	}
	if len(issues) > 0 {
		errorCount, warningCount := dataset.CountIssues(issues)
		r.logger.Warn().Int("errors", errorCount).Int("warnings", warningCount).Msg("dataset has issues")
	}

	// =========================================================================
	// STEP 3: ANALYZE
	// =========================================================================

	analyzer, err := analytics.New(analytics.Options{Logger: &r.logger})
	if err != nil {
		result.Error = fmt.Errorf("failed to create analyzer: %w", err)
		return result
	}

	analysis, err := analyzer.Run(ds)
	if err != nil {
		result.Error = fmt.Errorf("failed to analyze dataset: %w", err)
		return result
	}

	result.Reports = analysis.Reports
	result.Stats.ReceiptsSkipped = analysis.Stats.ReceiptsSkipped
	result.Stats.ItemsSkipped = analysis.Stats.ItemsSkipped
	result.Stats.SellersRanked = analysis.Stats.SellersRanked
	r.logger.Debug().
		Int("sellers_ranked", analysis.Stats.SellersRanked).
		Int("receipts_skipped", analysis.Stats.ReceiptsSkipped).
		Int("items_skipped", analysis.Stats.ItemsSkipped).
		Msg("analysis complete")

	if r.options.DryRun {
		r.logger.Info().Msg("dry run, no report written")
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 4: WRITE REPORT
	// =========================================================================

	if r.options.Output != nil {
		if err := report.Write(r.options.Output, analysis.Reports, r.options.Format); err != nil {
			result.Error = fmt.Errorf("failed to write report: %w", err)
			return result
		}
		result.Success = true
		return result
	}

	outputPath, err := r.writeOutput(analysis.Reports)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	r.logger.Info().Str("output", outputPath).Msg("wrote report")

	// =========================================================================
	// STEP 5: ARCHIVE DATASET
	// =========================================================================

	if r.config.ArchiveInputs {
		archivePath, err := r.files.ArchiveInput(r.path)
		if err != nil {
			// The report exists, so the run still counts as successful.
			r.logger.Warn().Err(err).Msg("failed to archive dataset")
		} else {
			result.ArchivePath = archivePath
			r.logger.Debug().Str("archive", archivePath).Msg("archived dataset")
		}
	}

	result.Success = true
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeOutput writes the report to a new file in the output directory.
// A partially written file is removed on failure.
func (r *Runner) writeOutput(reports []types.SellerReport) (string, error) {
	if err := os.MkdirAll(r.config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	fileName := utils.GenerateOutputFileName(
		r.config.ReportFileFormat,
		report.Extension(r.options.Format),
		map[string]string{"dataset": dataset.Name(r.path)},
	)
	outputPath := filepath.Join(r.config.OutputDir, fileName)

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	if err := report.Write(file, reports, r.options.Format); err != nil {
		file.Close()
		os.Remove(outputPath)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("failed to close report file: %w", err)
	}

	return outputPath, nil
}
