// =============================================================================
// Seller Analytics - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the analyzer, including:
//   - Dataset discovery in the input directory
//   - Dataset archival (moving analyzed inputs)
//   - Report file naming
//   - Run summary generation
//   - Directory management
//
// DATASET DISCOVERY:
//   A dataset is any of the following directly inside the input directory:
//     - a *.json file
//     - a *.xlsx file
//     - a subdirectory containing sellers.csv
//   Hidden entries (starting with ".") are ignored.
//
// ARCHIVAL STRATEGY:
//   - Datasets are moved to input_archive after a successful run
//   - Failed datasets remain in their original location
//   - Name clashes in the archive get a timestamp suffix
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the layout of {timestamp} in generated file names.
const TimestampLayout = "20060102_150405"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the analyzer.
type FileManager struct {
	// InputDir is the directory where datasets are placed.
	InputDir string

	// OutputDir is the directory where reports are written.
	OutputDir string

	// InputArchiveDir is the directory for archived datasets.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2024/01/15/march.json
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all configured directories if they don't exist.
// Empty paths are skipped.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.InputArchiveDir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// DATASET DISCOVERY
// =============================================================================

// DiscoverDatasets scans the input directory for datasets.
//
// RETURNS:
//   - The dataset paths, sorted by name.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverDatasets() ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var result []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(fm.InputDir, name)

		if entry.IsDir() {
			if FileExists(filepath.Join(path, "sellers.csv")) {
				result = append(result, path)
			}
			continue
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case ".json", ".xlsx":
			result = append(result, path)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// DATASET ARCHIVAL
// =============================================================================

// ArchiveInput moves a dataset file or directory to the archive directory.
//
// PARAMETERS:
//   - path: The dataset to archive.
//
// RETURNS:
//   - The path of the archived dataset.
//   - An error if archival fails.
func (fm *FileManager) ArchiveInput(path string) (string, error) {
	archivePath := fm.getArchivePath(path)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(path, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyPath(path, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy dataset to archive: %w", err)
		}
		if err := os.RemoveAll(path); err != nil {
			return "", fmt.Errorf("failed to remove original dataset: %w", err)
		}
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a dataset.
func (fm *FileManager) getArchivePath(path string) string {
	name := filepath.Base(filepath.Clean(path))
	dir := fm.InputArchiveDir

	if fm.UseTimestampSubdirs {
		now := time.Now()
		dir = filepath.Join(
			dir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
		)
	}

	archivePath := filepath.Join(dir, name)
	if FileExists(archivePath) {
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		archivePath = filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, time.Now().Format(TimestampLayout), ext))
	}
	return archivePath
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique report file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     Any key of params, e.g. {dataset}.
//   - extension: The extension to append when the name lacks it, e.g. ".json".
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//
//	format: "{dataset}_report_{timestamp}"
//	params: {"dataset": "march"}
//	output: "march_report_20240115_143022.json"
func GenerateOutputFileName(format, extension string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format(TimestampLayout),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if extension != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(extension)) {
		result += extension
	}

	return result
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about an analyze run.
type ProcessingSummary struct {
	RunID              string
	StartTime          time.Time
	EndTime            time.Time
	TotalDatasets      int
	SuccessfulDatasets int
	FailedDatasets     int
	TotalReceipts      int
	TotalLineItems     int
	TotalSellers       int
	ProcessedDatasets  []ProcessedDatasetInfo
	FailedDatasetsList []FailedDatasetInfo
}

// ProcessedDatasetInfo contains information about a successfully analyzed dataset.
type ProcessedDatasetInfo struct {
	InputPath   string
	OutputFile  string
	ArchivePath string
	Receipts    int
	LineItems   int
	Sellers     int
	ProcessTime time.Duration
}

// FailedDatasetInfo contains information about a failed dataset.
type FailedDatasetInfo struct {
	InputPath    string
	ErrorMessage string
}

// WriteSummaryLog writes a processing summary to a text file in outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	summaryFileName := fmt.Sprintf("processing_summary_%s.txt", summary.StartTime.Format(TimestampLayout))
	summaryPath := filepath.Join(outputDir, summaryFileName)

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	WriteSummary(writer, summary)

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// WriteSummary formats a processing summary to w.
func WriteSummary(w io.Writer, summary ProcessingSummary) {
	rule := strings.Repeat("=", 80)
	dash := strings.Repeat("-", 80)

	fmt.Fprintf(w, "Seller Analytics - Processing Summary\n%s\n\n", rule)
	fmt.Fprintf(w, "Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String())
	fmt.Fprintf(w, "Statistics:\n"+
		"  Total Datasets:   %d\n"+
		"  Successful:       %d\n"+
		"  Failed:           %d\n"+
		"  Total Receipts:   %d\n"+
		"  Total Line Items: %d\n"+
		"  Total Sellers:    %d\n\n",
		summary.TotalDatasets,
		summary.SuccessfulDatasets,
		summary.FailedDatasets,
		summary.TotalReceipts,
		summary.TotalLineItems,
		summary.TotalSellers)

	if len(summary.ProcessedDatasets) > 0 {
		fmt.Fprintf(w, "Successful Datasets:\n%s\n", dash)
		for _, pd := range summary.ProcessedDatasets {
			fmt.Fprintf(w, "  Input:        %s\n", pd.InputPath)
			fmt.Fprintf(w, "  Output:       %s\n", pd.OutputFile)
			if pd.ArchivePath != "" {
				fmt.Fprintf(w, "  Archived To:  %s\n", pd.ArchivePath)
			}
			fmt.Fprintf(w, "  Receipts:     %d\n", pd.Receipts)
			fmt.Fprintf(w, "  Line Items:   %d\n", pd.LineItems)
			fmt.Fprintf(w, "  Sellers:      %d\n", pd.Sellers)
			fmt.Fprintf(w, "  Process Time: %s\n\n", pd.ProcessTime.String())
		}
	}

	if len(summary.FailedDatasetsList) > 0 {
		fmt.Fprintf(w, "Failed Datasets:\n%s\n", dash)
		for _, fd := range summary.FailedDatasetsList {
			fmt.Fprintf(w, "  Input: %s\n", fd.InputPath)
			fmt.Fprintf(w, "  Error: %s\n\n", fd.ErrorMessage)
		}
	}

	fmt.Fprintf(w, "%s\nEnd of Summary\n", rule)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyPath copies a file or a directory tree from src to dst.
func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dst)
	}

	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file or directory exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
